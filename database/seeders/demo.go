package seeders

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/MohamedTawfiq30/dmorder/app/models"
	"github.com/MohamedTawfiq30/dmorder/pkg/auth"
)

func init() {
	Register("demo", SeedDemo)
}

// SeedDemo creates a demo seller with one product, for local development.
// Re-running is safe; the seller is upserted by email.
func SeedDemo(ctx context.Context, db *mongo.Database) error {
	hash, err := auth.HashPassword("password123")
	if err != nil {
		return err
	}

	res, err := db.Collection("sellers").UpdateOne(ctx,
		bson.M{"email": "demo@dmorder.test"},
		bson.M{"$setOnInsert": models.Seller{
			Email:        "demo@dmorder.test",
			Password:     hash,
			BusinessName: "Demo Boutique",
			CreatedAt:    time.Now().UTC(),
		}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return err
	}

	ownerID := ""
	if oid, ok := res.UpsertedID.(interface{ Hex() string }); ok {
		ownerID = oid.Hex()
	} else {
		var seller models.Seller
		if err := db.Collection("sellers").FindOne(ctx, bson.M{"email": "demo@dmorder.test"}).Decode(&seller); err != nil {
			return err
		}
		ownerID = seller.ID.Hex()
	}

	_, err = db.Collection("products").UpdateOne(ctx,
		bson.M{"ownerId": ownerID, "productId": "summer-kurti"},
		bson.M{"$setOnInsert": models.Product{
			OwnerID:   ownerID,
			ProductID: "summer-kurti",
			Name:      "Summer Kurti",
			Price:     799,
			Sizes:     map[string]int{"S": 5, "M": 5, "L": 3},
			Colors:    []string{"teal", "maroon"},
			CreatedAt: time.Now().UTC(),
		}},
		options.Update().SetUpsert(true),
	)
	return err
}
