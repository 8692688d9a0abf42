package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order status values. The only legal transition is pending → completed.
const (
	OrderPending   = "pending"
	OrderCompleted = "completed"
)

// Order is one buyer purchase, created atomically with the stock decrement.
// Product fields are denormalized snapshots taken at the transactional read,
// not at page-load time.
type Order struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OwnerID     string             `bson:"ownerId"       json:"ownerId"`
	ProductID   string             `bson:"productId"     json:"productId"`
	ProductName string             `bson:"productName"   json:"productName"`
	Size        string             `bson:"size"          json:"size"`
	Color       string             `bson:"color"         json:"color"`
	Quantity    int                `bson:"quantity"      json:"quantity"`
	Price       float64            `bson:"price"         json:"price"`

	CustomerName string `bson:"customerName" json:"customerName"`
	Phone        string `bson:"phone"        json:"phone"`
	Address      string `bson:"address"      json:"address"`

	PaymentScreenshotURL string    `bson:"paymentScreenshotUrl" json:"paymentScreenshotUrl"`
	Status               string    `bson:"status"               json:"status"`
	CreatedAt            time.Time `bson:"createdAt"            json:"createdAt"`
}

// Pending reports whether the order still awaits seller action.
func (o Order) Pending() bool { return o.Status == OrderPending }

// Completed reports whether the seller has marked the order done.
func (o Order) Completed() bool { return o.Status == OrderCompleted }
