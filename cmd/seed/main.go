package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"go-approvals/internal/config"
	"go-approvals/internal/database"
	"go-approvals/internal/features/queue"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var projects = []struct {
	ID      string
	Name    string
	Manager string
	MgrID   string
	Budget  float64
	Spent   float64
}{
	{"proj-001", "Harbor Bridge Retrofit", "Dana Whitfield", "mgr-001", 500000, 320000},
	{"proj-002", "Riverside Office Fit-out", "Sam Okafor", "mgr-002", 180000, 175000},
	{"proj-003", "North Depot Expansion", "Priya Raman", "mgr-003", 750000, 410000},
	{"proj-004", "Fleet Telematics Rollout", "Dana Whitfield", "mgr-001", 95000, 96000},
	{"proj-005", "Warehouse Solar Array", "Chris Leung", "mgr-004", 260000, 140000},
}

var descriptions = []string{
	"Structural steel and fixings",
	"Electrical second fix, levels 2-4",
	"HVAC ductwork variation",
	"Site hoarding and signage",
	"Geotechnical survey package",
	"Temporary works design",
	"Landscaping and drainage",
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal(err)
	}
	defer client.Disconnect(context.Background())

	db := &database.MongodbDB{DB: client.Database(cfg.DBName)}
	col := db.DB.Collection("quotations")

	fmt.Println("Seeding demo quotations...")

	if _, err := col.DeleteMany(ctx, bson.M{"quotation_id": bson.M{"$regex": "^demo-"}}); err != nil {
		log.Fatalf("failed to clear previous demo data: %v", err)
	}

	now := time.Now()
	statuses := []queue.Status{
		queue.StatusPending, queue.StatusPending, queue.StatusPending,
		queue.StatusUnderReview, queue.StatusApproved, queue.StatusRejected,
	}

	var docs []interface{}
	for i := 0; i < 60; i++ {
		p := projects[rand.Intn(len(projects))]
		// Spread submissions over four weeks so every urgency band shows up
		age := time.Duration(rand.Intn(28*24)) * time.Hour

		item := queue.ApprovalItem{
			QuotationID:     fmt.Sprintf("demo-%04d", i),
			QuotationNumber: fmt.Sprintf("Q-2025-%04d", 1000+i),
			ProjectID:       p.ID,
			ProjectName:     p.Name,
			ManagerID:       p.MgrID,
			ManagerName:     p.Manager,
			Description:     descriptions[rand.Intn(len(descriptions))],
			LineItemCount:   1 + rand.Intn(12),
			HasDocuments:    rand.Intn(3) > 0,
			TotalAmount:     float64(500+rand.Intn(40000)) + 0.5*float64(rand.Intn(2)),
			Currency:        "USD",
			SubmissionDate:  now.Add(-age),
			LastUpdated:     now.Add(-age / 2),
			Status:          statuses[rand.Intn(len(statuses))],
			ProjectBudget:   p.Budget,
			SpentAmount:     p.Spent,
		}
		docs = append(docs, item)
	}

	res, err := col.InsertMany(ctx, docs)
	if err != nil {
		log.Fatalf("failed to insert demo quotations: %v", err)
	}
	fmt.Printf("Inserted %d demo quotations into %s\n", len(res.InsertedIDs), cfg.DBName)
}
