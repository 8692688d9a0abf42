package services_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/MohamedTawfiq30/dmorder/app/models"
	"github.com/MohamedTawfiq30/dmorder/app/services"
)

// fakePlacer emulates the repository's transactional behaviour: stock check
// against the given product, then denormalization from that product.
type fakePlacer struct {
	product models.Product
	placed  []models.Order
	err     error
}

func (f *fakePlacer) Place(_ context.Context, _ primitive.ObjectID, size string, order models.Order) (models.Order, error) {
	if f.err != nil {
		return models.Order{}, f.err
	}
	if f.product.Sizes[size] <= 0 {
		return models.Order{}, models.ErrOutOfStock
	}
	order.ID = primitive.NewObjectID()
	order.OwnerID = f.product.OwnerID
	order.ProductID = f.product.ProductID
	order.ProductName = f.product.Name
	order.Price = f.product.Price
	order.Size = size
	order.Quantity = 1
	order.Status = models.OrderPending
	order.CreatedAt = time.Now().UTC()
	f.placed = append(f.placed, order)
	return order, nil
}

func (f *fakePlacer) AllByOwner(context.Context, string) ([]models.Order, error) { return nil, nil }

func (f *fakePlacer) MarkCompleted(context.Context, string, primitive.ObjectID) error { return nil }

type fakeResolver struct {
	product models.Product
	err     error
}

func (f *fakeResolver) FindBySlug(context.Context, string) (models.Product, error) {
	return f.product, f.err
}

type fakeUploader struct {
	paths []string
	err   error
}

func (f *fakeUploader) PutStream(path string, _ io.Reader) error {
	if f.err != nil {
		return f.err
	}
	f.paths = append(f.paths, path)
	return nil
}

func (f *fakeUploader) URL(path string) string { return "https://cdn.test/" + path }

func testProduct() models.Product {
	return models.Product{
		ID:        primitive.NewObjectID(),
		OwnerID:   "seller-1",
		ProductID: "summer-kurti",
		Name:      "Summer Kurti",
		Price:     799,
		Sizes:     map[string]int{"S": 2, "M": 0},
	}
}

func validInput() services.PlaceInput {
	return services.PlaceInput{
		Size:         "S",
		Color:        "teal",
		CustomerName: "Asha",
		Phone:        "9999999999",
		Address:      "12 Lake Road",
	}
}

func proofFile() io.Reader { return strings.NewReader("png-bytes") }

func TestPlaceHappyPath(t *testing.T) {
	placer := &fakePlacer{product: testProduct()}
	uploader := &fakeUploader{}
	svc := services.NewOrderService(placer, &fakeResolver{product: placer.product}, uploader)

	order, err := svc.Place(context.Background(), "summer-kurti", validInput(), proofFile(), "proof.jpg")
	require.NoError(t, err)

	assert.Equal(t, "seller-1", order.OwnerID)
	assert.Equal(t, "summer-kurti", order.ProductID)
	assert.Equal(t, "Summer Kurti", order.ProductName)
	assert.Equal(t, 799.0, order.Price)
	assert.Equal(t, "S", order.Size)
	assert.Equal(t, 1, order.Quantity)
	assert.Equal(t, models.OrderPending, order.Status)
	assert.False(t, order.CreatedAt.IsZero())

	require.Len(t, uploader.paths, 1)
	assert.True(t, strings.HasPrefix(uploader.paths[0], "payment_proofs/"))
	assert.True(t, strings.HasSuffix(uploader.paths[0], ".jpg"))
	assert.Equal(t, "https://cdn.test/"+uploader.paths[0], order.PaymentScreenshotURL)
}

func TestPlaceValidationReportsAllFields(t *testing.T) {
	svc := services.NewOrderService(&fakePlacer{}, &fakeResolver{}, &fakeUploader{})

	_, err := svc.Place(context.Background(), "summer-kurti", services.PlaceInput{}, nil, "")

	var verr *services.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "size")
	assert.Contains(t, verr.Fields, "color")
	assert.Contains(t, verr.Fields, "customerName")
	assert.Contains(t, verr.Fields, "phone")
	assert.Contains(t, verr.Fields, "address")
	assert.Contains(t, verr.Fields, "paymentScreenshot")
}

func TestPlaceRejectsMissingColor(t *testing.T) {
	placer := &fakePlacer{product: testProduct()}
	uploader := &fakeUploader{}
	svc := services.NewOrderService(placer, &fakeResolver{product: placer.product}, uploader)

	in := validInput()
	in.Color = ""

	_, err := svc.Place(context.Background(), "summer-kurti", in, proofFile(), "proof.png")

	var verr *services.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "color")
	assert.Empty(t, uploader.paths, "no proof upload on a rejected form")
	assert.Empty(t, placer.placed, "no order placed on a rejected form")
}

func TestPlaceUploadFailureAbortsBeforeTransaction(t *testing.T) {
	placer := &fakePlacer{product: testProduct()}
	uploader := &fakeUploader{err: errors.New("bucket gone")}
	svc := services.NewOrderService(placer, &fakeResolver{product: placer.product}, uploader)

	_, err := svc.Place(context.Background(), "summer-kurti", validInput(), proofFile(), "proof.png")

	assert.ErrorIs(t, err, models.ErrUploadFailed)
	assert.Empty(t, placer.placed, "transaction must not run when the proof upload fails")
}

func TestPlaceOutOfStock(t *testing.T) {
	placer := &fakePlacer{product: testProduct()}
	svc := services.NewOrderService(placer, &fakeResolver{product: placer.product}, &fakeUploader{})

	in := validInput()
	in.Size = "M" // zero stock

	_, err := svc.Place(context.Background(), "summer-kurti", in, proofFile(), "proof.png")
	assert.ErrorIs(t, err, models.ErrOutOfStock)
}

func TestPlaceUnknownSlug(t *testing.T) {
	svc := services.NewOrderService(&fakePlacer{},
		&fakeResolver{err: models.ErrProductNotFound}, &fakeUploader{})

	_, err := svc.Place(context.Background(), "gone", validInput(), proofFile(), "proof.png")
	assert.ErrorIs(t, err, models.ErrProductNotFound)
}

func TestPlaceNormalizesProofExtension(t *testing.T) {
	placer := &fakePlacer{product: testProduct()}
	uploader := &fakeUploader{}
	svc := services.NewOrderService(placer, &fakeResolver{product: placer.product}, uploader)

	_, err := svc.Place(context.Background(), "summer-kurti", validInput(), proofFile(), "proof.exe")
	require.NoError(t, err)

	require.Len(t, uploader.paths, 1)
	assert.True(t, strings.HasSuffix(uploader.paths[0], ".png"))
}

// fakeCompleter mirrors the repository's completion write: an owner-scoped
// $set to completed, recorded per order so tests can watch the status.
type fakeCompleter struct {
	fakePlacer
	ownerID string
	status  map[primitive.ObjectID]string
	writes  int
}

func (f *fakeCompleter) MarkCompleted(_ context.Context, ownerID string, orderID primitive.ObjectID) error {
	if ownerID != f.ownerID {
		return models.ErrNotFound
	}
	if _, ok := f.status[orderID]; !ok {
		return models.ErrNotFound
	}
	f.status[orderID] = models.OrderCompleted
	f.writes++
	return nil
}

func TestCompleteIsIdempotent(t *testing.T) {
	orderID := primitive.NewObjectID()
	store := &fakeCompleter{
		ownerID: "seller-1",
		status:  map[primitive.ObjectID]string{orderID: models.OrderPending},
	}
	svc := services.NewOrderService(store, &fakeResolver{}, &fakeUploader{})

	require.NoError(t, svc.Complete(context.Background(), "seller-1", orderID.Hex()))
	assert.Equal(t, models.OrderCompleted, store.status[orderID])

	// Completing again succeeds and leaves the status where it was.
	require.NoError(t, svc.Complete(context.Background(), "seller-1", orderID.Hex()))
	assert.Equal(t, models.OrderCompleted, store.status[orderID])
	assert.Equal(t, 2, store.writes, "repeated completion is a redundant write, not an error")
}

func TestCompleteForeignOrderNotFound(t *testing.T) {
	orderID := primitive.NewObjectID()
	store := &fakeCompleter{
		ownerID: "seller-1",
		status:  map[primitive.ObjectID]string{orderID: models.OrderPending},
	}
	svc := services.NewOrderService(store, &fakeResolver{}, &fakeUploader{})

	err := svc.Complete(context.Background(), "seller-2", orderID.Hex())
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.Equal(t, models.OrderPending, store.status[orderID], "foreign seller must not flip the status")
}

func TestCompleteRejectsMalformedID(t *testing.T) {
	svc := services.NewOrderService(&fakePlacer{}, &fakeResolver{}, &fakeUploader{})

	err := svc.Complete(context.Background(), "seller-1", "not-an-objectid")
	assert.ErrorIs(t, err, models.ErrNotFound)
}
