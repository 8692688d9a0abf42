package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Seller is the authenticated owner of products, orders, and one settings
// record. Its hex document id is the ownerId stamped on every owned record.
type Seller struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string             `bson:"email"         json:"email"`
	Password     string             `bson:"password"      json:"-"` // bcrypt hash, never serialised
	BusinessName string             `bson:"businessName,omitempty" json:"businessName,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt"     json:"createdAt"`
}
