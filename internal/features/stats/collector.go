package stats

import (
	"context"
	"time"

	"go-approvals/internal/classify"
	"go-approvals/internal/database"
	"go-approvals/internal/features/queue"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Collector computes one queue snapshot from the backing store
type Collector interface {
	Collect(ctx context.Context) (Snapshot, error)
}

type MongoCollector struct {
	collection *mongo.Collection
	now        func() time.Time
}

func NewCollector(db *database.MongodbDB) *MongoCollector {
	return &MongoCollector{
		collection: db.DB.Collection("quotations"),
		now:        time.Now,
	}
}

func (c *MongoCollector) Collect(ctx context.Context) (Snapshot, error) {
	now := c.now()
	actionable := bson.M{"status": bson.M{"$in": []queue.Status{
		queue.StatusPending, queue.StatusUnderReview,
	}}}

	pending, err := c.collection.CountDocuments(ctx, actionable)
	if err != nil {
		return Snapshot{}, err
	}

	urgentCutoff := now.AddDate(0, 0, -classify.HighAfterDays)
	urgent, err := c.collection.CountDocuments(ctx, bson.M{
		"$and": []bson.M{actionable, {"submission_date": bson.M{"$lte": urgentCutoff}}},
	})
	if err != nil {
		return Snapshot{}, err
	}

	criticalCutoff := now.AddDate(0, 0, -classify.CriticalAfterDays)
	critical, err := c.collection.CountDocuments(ctx, bson.M{
		"$and": []bson.M{actionable, {"submission_date": bson.M{"$lte": criticalCutoff}}},
	})
	if err != nil {
		return Snapshot{}, err
	}

	snap := Snapshot{
		PendingCount:  pending,
		UrgentCount:   urgent,
		CriticalCount: critical,
		GeneratedAt:   now,
	}

	// One pass for the money total and the oldest submission
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: actionable}},
		{{Key: "$group", Value: bson.M{
			"_id":    nil,
			"total":  bson.M{"$sum": "$total_amount"},
			"oldest": bson.M{"$min": "$submission_date"},
		}}},
	}
	cursor, err := c.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return Snapshot{}, err
	}
	defer cursor.Close(ctx)

	var agg []struct {
		Total  float64   `bson:"total"`
		Oldest time.Time `bson:"oldest"`
	}
	if err = cursor.All(ctx, &agg); err != nil {
		return Snapshot{}, err
	}
	if len(agg) > 0 {
		snap.TotalPendingAmount = agg[0].Total
		snap.OldestWaitingDays = classify.DaysWaiting(agg[0].Oldest, now)
	}
	return snap, nil
}
