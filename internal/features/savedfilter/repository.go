package savedfilter

import (
	"context"
	"time"

	"go-approvals/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type PresetRepository interface {
	Create(ctx context.Context, preset *Preset) error
	Get(ctx context.Context, id string) (*Preset, error)
	Update(ctx context.Context, preset *Preset) error
	Delete(ctx context.Context, id string) error
	FindByReviewer(ctx context.Context, reviewerID string) ([]Preset, error)
	ClearDefault(ctx context.Context, reviewerID string) error
}

type PresetRepositoryImpl struct {
	collection *mongo.Collection
}

func NewPresetRepository(db *database.MongodbDB) PresetRepository {
	return &PresetRepositoryImpl{
		collection: db.DB.Collection("filter_presets"),
	}
}

func (r *PresetRepositoryImpl) Create(ctx context.Context, preset *Preset) error {
	if preset.ID.IsZero() {
		preset.ID = primitive.NewObjectID()
	}
	preset.CreatedAt = time.Now()
	preset.UpdatedAt = preset.CreatedAt

	_, err := r.collection.InsertOne(ctx, preset)
	return err
}

func (r *PresetRepositoryImpl) Get(ctx context.Context, id string) (*Preset, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var preset Preset
	if err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&preset); err != nil {
		return nil, err
	}
	return &preset, nil
}

func (r *PresetRepositoryImpl) Update(ctx context.Context, preset *Preset) error {
	existing, err := r.Get(ctx, preset.ID.Hex())
	if err != nil {
		return err
	}

	// Owner and creation time never change
	preset.ReviewerID = existing.ReviewerID
	preset.CreatedAt = existing.CreatedAt
	preset.UpdatedAt = time.Now()

	_, err = r.collection.ReplaceOne(ctx, bson.M{"_id": preset.ID}, preset)
	return err
}

func (r *PresetRepositoryImpl) Delete(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	_, err = r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	return err
}

func (r *PresetRepositoryImpl) FindByReviewer(ctx context.Context, reviewerID string) ([]Preset, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"reviewer_id": reviewerID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var presets []Preset
	if err = cursor.All(ctx, &presets); err != nil {
		return nil, err
	}
	if presets == nil {
		presets = []Preset{}
	}
	return presets, nil
}

func (r *PresetRepositoryImpl) ClearDefault(ctx context.Context, reviewerID string) error {
	_, err := r.collection.UpdateMany(ctx,
		bson.M{"reviewer_id": reviewerID, "is_default": true},
		bson.M{"$set": bson.M{"is_default": false}})
	return err
}
