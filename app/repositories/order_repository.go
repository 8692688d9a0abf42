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

// OrderRepository handles the orders collection, including the placement
// transaction against the products collection.
type OrderRepository struct {
	orders   *mongo.Collection
	products *mongo.Collection
	client   *mongo.Client
}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{
		orders:   database.Collection("orders"),
		products: database.Collection("products"),
		client:   database.Client(),
	}
}

// Place runs the atomic decrement-and-insert at the heart of order
// placement. Inside one transaction it re-reads the product (never trusting
// the copy the buyer's page rendered from), verifies the selected size still
// has stock, decrements it by one, and inserts the order with denormalized
// product fields and a server-assigned timestamp.
//
// The session serializes against concurrent placements on the same product:
// of two buyers contending for the last unit, exactly one commit observes
// stock > 0. Transient conflicts are retried by the driver's own policy;
// exhaustion surfaces as a plain error.
func (r *OrderRepository) Place(ctx context.Context, productDocID primitive.ObjectID, size string, order models.Order) (models.Order, error) {
	session, err := r.client.StartSession()
	if err != nil {
		return models.Order{}, fmt.Errorf("orders: start session: %w", err)
	}
	defer session.EndSession(ctx)

	result, err := session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		var product models.Product
		err := r.products.FindOne(sc, bson.M{"_id": productDocID}).Decode(&product)
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrProductNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("orders: read product: %w", err)
		}

		if product.Sizes[size] <= 0 {
			return nil, models.ErrOutOfStock
		}

		_, err = r.products.UpdateOne(sc,
			bson.M{"_id": productDocID},
			bson.M{
				"$inc": bson.M{"sizes." + size: -1},
				"$set": bson.M{"updatedAt": time.Now().UTC()},
			},
		)
		if err != nil {
			return nil, fmt.Errorf("orders: decrement stock: %w", err)
		}

		// Denormalize from the transactional read, not from caller input.
		order.OwnerID = product.OwnerID
		order.ProductID = product.ProductID
		order.ProductName = product.Name
		order.Price = product.Price
		order.Size = size
		order.Quantity = 1
		order.Status = models.OrderPending
		order.CreatedAt = time.Now().UTC()

		ins, err := r.orders.InsertOne(sc, order)
		if err != nil {
			return nil, fmt.Errorf("orders: insert: %w", err)
		}
		if oid, ok := ins.InsertedID.(primitive.ObjectID); ok {
			order.ID = oid
		}
		return order, nil
	})
	if err != nil {
		return models.Order{}, err
	}

	return result.(models.Order), nil
}

// AllByOwner returns every order belonging to ownerID, newest first.
func (r *OrderRepository) AllByOwner(ctx context.Context, ownerID string) ([]models.Order, error) {
	cur, err := r.orders.Find(ctx,
		bson.M{"ownerId": ownerID},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("orders: find by owner: %w", err)
	}

	var orders []models.Order
	if err := cur.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("orders: decode: %w", err)
	}
	return orders, nil
}

// MarkCompleted flips an order's status to completed. Owner-scoped so a
// seller can only touch their own orders. Re-invoking on an already
// completed order is a redundant but harmless write.
func (r *OrderRepository) MarkCompleted(ctx context.Context, ownerID string, orderID primitive.ObjectID) error {
	res, err := r.orders.UpdateOne(ctx,
		bson.M{"_id": orderID, "ownerId": ownerID},
		bson.M{"$set": bson.M{"status": models.OrderCompleted}},
	)
	if err != nil {
		return fmt.Errorf("orders: mark completed: %w", err)
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

// Watch opens a change stream restricted to one owner's orders. Every
// insert or update event is a cue for the caller to re-query the full set;
// the stream itself carries no snapshot.
func (r *OrderRepository) Watch(ctx context.Context, ownerID string) (*mongo.ChangeStream, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{
			{Key: "fullDocument.ownerId", Value: ownerID},
		}}},
	}
	cs, err := r.orders.Watch(ctx, pipeline,
		options.ChangeStream().SetFullDocument(options.UpdateLookup),
	)
	if err != nil {
		return nil, fmt.Errorf("orders: watch: %w", err)
	}
	return cs, nil
}
