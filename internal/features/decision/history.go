package decision

import (
	"context"

	"go-approvals/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type HistoryRepository struct {
	collection *mongo.Collection
}

func NewHistoryRepository(db *database.MongodbDB) HistorySource {
	return &HistoryRepository{
		collection: db.DB.Collection("approval_history"),
	}
}

// FetchHistory returns the quotation's audit trail, newest first
func (r *HistoryRepository) FetchHistory(ctx context.Context, quotationID string) ([]HistoryEntry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"quotation_id": quotationID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []HistoryEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []HistoryEntry{}
	}
	return entries, nil
}
