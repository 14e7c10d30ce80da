package bulkops

import (
	"context"
	"time"

	"go-approvals/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// OperationRepository persists finished bulk runs for the audit listing
type OperationRepository interface {
	Save(ctx context.Context, op *BulkOperation) error
	FindByReviewer(ctx context.Context, reviewerID string, limit int) ([]BulkOperation, error)
}

type OperationRepositoryImpl struct {
	collection *mongo.Collection
}

func NewOperationRepository(db *database.MongodbDB) OperationRepository {
	return &OperationRepositoryImpl{
		collection: db.DB.Collection("bulk_operations"),
	}
}

func (r *OperationRepositoryImpl) Save(ctx context.Context, op *BulkOperation) error {
	if op.ID.IsZero() {
		op.ID = primitive.NewObjectID()
	}
	now := time.Now()
	op.CompletedAt = &now

	_, err := r.collection.InsertOne(ctx, op)
	return err
}

func (r *OperationRepositoryImpl) FindByReviewer(ctx context.Context, reviewerID string, limit int) ([]BulkOperation, error) {
	opts := options.Find().SetLimit(int64(limit)).SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"reviewer_id": reviewerID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var ops []BulkOperation
	if err = cursor.All(ctx, &ops); err != nil {
		return nil, err
	}
	if ops == nil {
		ops = []BulkOperation{}
	}
	return ops, nil
}
