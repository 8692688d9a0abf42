package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/MohamedTawfiq30/dmorder/app/models"
	"github.com/MohamedTawfiq30/dmorder/pkg/database"
)

// ProductRepository handles the products collection. All seller-facing
// reads and writes are owner-scoped; FindBySlug is the one public lookup,
// serving the buyer storefront.
type ProductRepository struct {
	col *mongo.Collection
}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{col: database.Collection("products")}
}

func (r *ProductRepository) Create(ctx context.Context, p models.Product) (models.Product, error) {
	p.CreatedAt = time.Now().UTC()
	res, err := r.col.InsertOne(ctx, p)
	if err != nil {
		return models.Product{}, fmt.Errorf("products: insert: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		p.ID = oid
	}
	return p, nil
}

func (r *ProductRepository) AllByOwner(ctx context.Context, ownerID string) ([]models.Product, error) {
	cur, err := r.col.Find(ctx,
		bson.M{"ownerId": ownerID},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("products: find by owner: %w", err)
	}
	var products []models.Product
	if err := cur.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("products: decode: %w", err)
	}
	return products, nil
}

func (r *ProductRepository) FindByID(ctx context.Context, ownerID string, id primitive.ObjectID) (models.Product, error) {
	var p models.Product
	err := r.col.FindOne(ctx, bson.M{"_id": id, "ownerId": ownerID}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Product{}, models.ErrProductNotFound
	}
	if err != nil {
		return models.Product{}, fmt.Errorf("products: find by id: %w", err)
	}
	return p, nil
}

// FindBySlug resolves a Smart Order Link slug. Unscoped on purpose: buyers
// carry no identity.
func (r *ProductRepository) FindBySlug(ctx context.Context, slug string) (models.Product, error) {
	var p models.Product
	err := r.col.FindOne(ctx, bson.M{"productId": slug}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Product{}, models.ErrProductNotFound
	}
	if err != nil {
		return models.Product{}, fmt.Errorf("products: find by slug: %w", err)
	}
	return p, nil
}

// Update replaces the mutable fields of an owned product. Stock counts are
// included; sellers restock by writing the sizes map outright.
func (r *ProductRepository) Update(ctx context.Context, ownerID string, id primitive.ObjectID, p models.Product) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id, "ownerId": ownerID},
		bson.M{"$set": bson.M{
			"name":      p.Name,
			"price":     p.Price,
			"sizes":     p.Sizes,
			"colors":    p.Colors,
			"updatedAt": time.Now().UTC(),
		}},
	)
	if err != nil {
		return fmt.Errorf("products: update: %w", err)
	}
	if res.MatchedCount == 0 {
		return models.ErrProductNotFound
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, ownerID string, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id, "ownerId": ownerID})
	if err != nil {
		return fmt.Errorf("products: delete: %w", err)
	}
	if res.DeletedCount == 0 {
		return models.ErrProductNotFound
	}
	return nil
}
