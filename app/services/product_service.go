package services

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/MohamedTawfiq30/dmorder/app/models"
	"github.com/MohamedTawfiq30/dmorder/config"
	"github.com/MohamedTawfiq30/dmorder/pkg/cache"
)

// ProductCatalog is the slice of the product repository the service needs.
type ProductCatalog interface {
	Create(ctx context.Context, p models.Product) (models.Product, error)
	AllByOwner(ctx context.Context, ownerID string) ([]models.Product, error)
	FindByID(ctx context.Context, ownerID string, id primitive.ObjectID) (models.Product, error)
	FindBySlug(ctx context.Context, slug string) (models.Product, error)
	Update(ctx context.Context, ownerID string, id primitive.ObjectID, p models.Product) error
	Delete(ctx context.Context, ownerID string, id primitive.ObjectID) error
}

type ProductService struct {
	products ProductCatalog
	settings SettingsStore
}

func NewProductService(products ProductCatalog, settings SettingsStore) *ProductService {
	return &ProductService{products: products, settings: settings}
}

type ProductInput struct {
	ProductID string         `json:"productId" validate:"required,max=64"`
	Name      string         `json:"name" validate:"required,max=200"`
	Price     float64        `json:"price" validate:"required,numeric,gt=0"`
	Sizes     map[string]int `json:"sizes" validate:"required"`
	Colors    []string       `json:"colors" validate:"nullable"`
}

// ProductView is a product as the seller dashboard sees it, with the Smart
// Order Link attached.
type ProductView struct {
	models.Product
	OrderLink string `json:"orderLink"`
}

// OrderLink builds the shareable buyer URL for a product slug.
func OrderLink(slug string) string {
	return strings.TrimRight(config.AppBaseURL(), "/") + "/o/" + slug
}

func view(p models.Product) ProductView {
	return ProductView{Product: p, OrderLink: OrderLink(p.ProductID)}
}

func (s *ProductService) Create(ctx context.Context, ownerID string, in ProductInput) (ProductView, error) {
	p, err := s.products.Create(ctx, models.Product{
		OwnerID:   ownerID,
		ProductID: slugify(in.ProductID),
		Name:      in.Name,
		Price:     in.Price,
		Sizes:     in.Sizes,
		Colors:    in.Colors,
	})
	if err != nil {
		return ProductView{}, err
	}
	return view(p), nil
}

func (s *ProductService) List(ctx context.Context, ownerID string) ([]ProductView, error) {
	products, err := s.products.AllByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	views := make([]ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, view(p))
	}
	return views, nil
}

func (s *ProductService) Get(ctx context.Context, ownerID, id string) (ProductView, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ProductView{}, models.ErrProductNotFound
	}
	p, err := s.products.FindByID(ctx, ownerID, oid)
	if err != nil {
		return ProductView{}, err
	}
	return view(p), nil
}

func (s *ProductService) Update(ctx context.Context, ownerID, id string, in ProductInput) (ProductView, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ProductView{}, models.ErrProductNotFound
	}

	current, err := s.products.FindByID(ctx, ownerID, oid)
	if err != nil {
		return ProductView{}, err
	}

	current.Name = in.Name
	current.Price = in.Price
	current.Sizes = in.Sizes
	current.Colors = in.Colors
	if err := s.products.Update(ctx, ownerID, oid, current); err != nil {
		return ProductView{}, err
	}

	// The buyer page caches by slug; invalidate so restocks show promptly.
	_ = cache.Del("storefront:" + current.ProductID)

	return view(current), nil
}

func (s *ProductService) Delete(ctx context.Context, ownerID, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.ErrProductNotFound
	}
	p, err := s.products.FindByID(ctx, ownerID, oid)
	if err != nil {
		return err
	}
	if err := s.products.Delete(ctx, ownerID, oid); err != nil {
		return err
	}
	_ = cache.Del("storefront:" + p.ProductID)
	return nil
}

// StorefrontView is the buyer-facing projection of a product. Only sizes
// with stock are offered, internal ids stay hidden, and the seller's
// payment details ride along so the buyer can pay before placing.
type StorefrontView struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Price     float64         `json:"price"`
	Sizes     []string        `json:"sizes"`
	Colors    []string        `json:"colors"`
	SoldOut   bool            `json:"soldOut"`
	Payment   StorefrontOwner `json:"payment"`
}

// StorefrontOwner is the public slice of the seller's settings.
type StorefrontOwner struct {
	BusinessName string `json:"businessName,omitempty"`
	WhatsApp     string `json:"whatsapp,omitempty"`
	UPIID        string `json:"upiId,omitempty"`
	QRUrl        string `json:"qrUrl,omitempty"`
}

// Storefront resolves a Smart Order Link slug into the buyer page payload.
// Served through a short cache; staleness is bounded and the placement
// transaction re-checks stock anyway.
func (s *ProductService) Storefront(ctx context.Context, slug string) (StorefrontView, error) {
	key := "storefront:" + slug

	var v StorefrontView
	if cache.Get(key, &v) {
		return v, nil
	}

	p, err := s.products.FindBySlug(ctx, slug)
	if err != nil {
		return StorefrontView{}, err
	}

	settings, err := s.settings.Find(ctx, p.OwnerID)
	if err != nil {
		return StorefrontView{}, err
	}

	sizes := p.SelectableSizes()
	v = StorefrontView{
		ProductID: p.ProductID,
		Name:      p.Name,
		Price:     p.Price,
		Sizes:     sizes,
		Colors:    p.Colors,
		SoldOut:   len(sizes) == 0,
		Payment: StorefrontOwner{
			BusinessName: settings.BusinessName,
			WhatsApp:     settings.WhatsApp,
			UPIID:        settings.UPIID,
			QRUrl:        settings.QRUrl,
		},
	}
	_ = cache.Set(key, v, 30*time.Second)
	return v, nil
}

// slugify normalizes a seller-chosen product id into a URL-safe slug.
func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteByte('-')
		}
	}
	return b.String()
}
