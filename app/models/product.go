package models

import (
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is a seller's catalogue entry. Stock is tracked per size label;
// a size whose count reaches zero stays in the document but is hidden from
// buyers.
type Product struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OwnerID   string             `bson:"ownerId"       json:"ownerId"`
	ProductID string             `bson:"productId"     json:"productId"` // seller-chosen slug for the Smart Order Link
	Name      string             `bson:"name"          json:"name"`
	Price     float64            `bson:"price"         json:"price"`
	Sizes     map[string]int     `bson:"sizes"         json:"sizes"`
	Colors    []string           `bson:"colors"        json:"colors"`
	CreatedAt time.Time          `bson:"createdAt"     json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// SelectableSizes returns the size labels a buyer may order, i.e. those
// with stock remaining, in stable sorted order.
func (p Product) SelectableSizes() []string {
	out := make([]string, 0, len(p.Sizes))
	for label, stock := range p.Sizes {
		if stock > 0 {
			out = append(out, label)
		}
	}
	sort.Strings(out)
	return out
}

// InStock reports whether the given size can still be ordered.
func (p Product) InStock(size string) bool {
	return p.Sizes[size] > 0
}
