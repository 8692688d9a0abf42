package services

import (
	"context"
	"io"
	"path"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/MohamedTawfiq30/dmorder/app/models"
	"github.com/MohamedTawfiq30/dmorder/pkg/cache"
	"github.com/MohamedTawfiq30/dmorder/pkg/logger"
	"github.com/MohamedTawfiq30/dmorder/pkg/metrics"
)

// OrderPlacer is the slice of the order repository the service needs.
type OrderPlacer interface {
	Place(ctx context.Context, productDocID primitive.ObjectID, size string, order models.Order) (models.Order, error)
	AllByOwner(ctx context.Context, ownerID string) ([]models.Order, error)
	MarkCompleted(ctx context.Context, ownerID string, orderID primitive.ObjectID) error
}

// SlugResolver looks up a product by its Smart Order Link slug.
type SlugResolver interface {
	FindBySlug(ctx context.Context, slug string) (models.Product, error)
}

// Uploader is the slice of the blob store used for payment screenshots.
type Uploader interface {
	PutStream(path string, r io.Reader) error
	URL(path string) string
}

type OrderService struct {
	orders   OrderPlacer
	products SlugResolver
	uploads  Uploader
}

func NewOrderService(orders OrderPlacer, products SlugResolver, uploads Uploader) *OrderService {
	return &OrderService{orders: orders, products: products, uploads: uploads}
}

// PlaceInput is the buyer's form. The screenshot arrives separately as a
// multipart file.
type PlaceInput struct {
	Size         string
	Color        string
	CustomerName string
	Phone        string
	Address      string
}

// ValidationError reports per-field failures from the buyer form.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string { return "order input invalid" }

// validatePlace checks the buyer form field by field. Every required field
// is reported at once rather than first-failure-wins.
func validatePlace(in PlaceInput, proof io.Reader) *ValidationError {
	fields := map[string]string{}
	if strings.TrimSpace(in.Size) == "" {
		fields["size"] = "size is required"
	}
	if strings.TrimSpace(in.Color) == "" {
		fields["color"] = "color is required"
	}
	if strings.TrimSpace(in.CustomerName) == "" {
		fields["customerName"] = "name is required"
	}
	if strings.TrimSpace(in.Phone) == "" {
		fields["phone"] = "phone is required"
	}
	if strings.TrimSpace(in.Address) == "" {
		fields["address"] = "address is required"
	}
	if proof == nil {
		fields["paymentScreenshot"] = "payment screenshot is required"
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// Place runs the full buyer placement flow: validate the form, upload the
// payment screenshot, then commit the stock decrement and order insert in
// one transaction.
//
// The upload happens first and is the gate: no screenshot on record, no
// order. If the transaction then fails the uploaded blob is orphaned; that
// is accepted, a stray image is cheaper than an order without proof.
func (s *OrderService) Place(ctx context.Context, slug string, in PlaceInput, proof io.Reader, proofName string) (models.Order, error) {
	if verr := validatePlace(in, proof); verr != nil {
		return models.Order{}, verr
	}

	product, err := s.products.FindBySlug(ctx, slug)
	if err != nil {
		return models.Order{}, err
	}

	proofPath := proofStoragePath(proofName)
	if err := s.uploads.PutStream(proofPath, proof); err != nil {
		metrics.ProofUploads.WithLabelValues("failed").Inc()
		logger.WithCtx(ctx).Error("payment proof upload failed", "slug", slug, "error", err)
		return models.Order{}, models.ErrUploadFailed
	}
	metrics.ProofUploads.WithLabelValues("ok").Inc()

	order, err := s.orders.Place(ctx, product.ID, strings.TrimSpace(in.Size), models.Order{
		Color:                strings.TrimSpace(in.Color),
		CustomerName:         strings.TrimSpace(in.CustomerName),
		Phone:                strings.TrimSpace(in.Phone),
		Address:              strings.TrimSpace(in.Address),
		PaymentScreenshotURL: s.uploads.URL(proofPath),
	})
	if err != nil {
		if err == models.ErrOutOfStock {
			metrics.OrdersOutOfStock.Inc()
		}
		return models.Order{}, err
	}

	metrics.OrdersPlaced.Inc()
	_ = cache.Del("storefront:" + slug)

	logger.WithCtx(ctx).Info("order placed",
		"orderId", order.ID.Hex(), "ownerId", order.OwnerID,
		"productId", order.ProductID, "size", order.Size)
	return order, nil
}

// List returns the seller's orders, newest first.
func (s *OrderService) List(ctx context.Context, ownerID string) ([]models.Order, error) {
	return s.orders.AllByOwner(ctx, ownerID)
}

// Complete marks an order done. Idempotent from the seller's point of view.
func (s *OrderService) Complete(ctx context.Context, ownerID, orderID string) error {
	oid, err := primitive.ObjectIDFromHex(orderID)
	if err != nil {
		return models.ErrNotFound
	}
	return s.orders.MarkCompleted(ctx, ownerID, oid)
}

// proofStoragePath yields a collision-free key for an uploaded screenshot,
// keeping the original extension when it looks like an image.
func proofStoragePath(filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	switch ext {
	case ".png", ".jpg", ".jpeg", ".webp":
	default:
		ext = ".png"
	}
	return "payment_proofs/" + primitive.NewObjectID().Hex() + ext
}
