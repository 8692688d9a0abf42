package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/MohamedTawfiq30/dmorder/app/models"
	"github.com/MohamedTawfiq30/dmorder/pkg/database"
)

type SettingsRepository struct {
	col *mongo.Collection
}

func NewSettingsRepository() *SettingsRepository {
	return &SettingsRepository{col: database.Collection("settings")}
}

// Find returns the seller's settings, or a zero-value record keyed by
// ownerID when none have been saved yet.
func (r *SettingsRepository) Find(ctx context.Context, ownerID string) (models.Settings, error) {
	var s models.Settings
	err := r.col.FindOne(ctx, bson.M{"_id": ownerID}).Decode(&s)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Settings{OwnerID: ownerID}, nil
	}
	if err != nil {
		return models.Settings{}, fmt.Errorf("settings: find: %w", err)
	}
	return s, nil
}

// Upsert merges the given fields into the seller's record. Only keys
// present in fields are written; everything else keeps its stored value.
func (r *SettingsRepository) Upsert(ctx context.Context, ownerID string, fields bson.M) error {
	fields["updatedAt"] = time.Now().UTC()
	_, err := r.col.UpdateOne(ctx,
		bson.M{"_id": ownerID},
		bson.M{"$set": fields},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("settings: upsert: %w", err)
	}
	return nil
}
