package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/MohamedTawfiq30/dmorder/app/models"
	"github.com/MohamedTawfiq30/dmorder/pkg/database"
)

type SellerRepository struct {
	col *mongo.Collection
}

func NewSellerRepository() *SellerRepository {
	return &SellerRepository{col: database.Collection("sellers")}
}

// Create inserts a new seller. The unique index on email turns races into
// ErrEmailTaken rather than duplicates.
func (r *SellerRepository) Create(ctx context.Context, s models.Seller) (models.Seller, error) {
	s.CreatedAt = time.Now().UTC()
	res, err := r.col.InsertOne(ctx, s)
	if mongo.IsDuplicateKeyError(err) {
		return models.Seller{}, models.ErrEmailTaken
	}
	if err != nil {
		return models.Seller{}, fmt.Errorf("sellers: insert: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		s.ID = oid
	}
	return s, nil
}

func (r *SellerRepository) FindByEmail(ctx context.Context, email string) (models.Seller, error) {
	var s models.Seller
	err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&s)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Seller{}, models.ErrNotFound
	}
	if err != nil {
		return models.Seller{}, fmt.Errorf("sellers: find by email: %w", err)
	}
	return s, nil
}

func (r *SellerRepository) FindByID(ctx context.Context, id primitive.ObjectID) (models.Seller, error) {
	var s models.Seller
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&s)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Seller{}, models.ErrNotFound
	}
	if err != nil {
		return models.Seller{}, fmt.Errorf("sellers: find by id: %w", err)
	}
	return s, nil
}
