package services_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/MohamedTawfiq30/dmorder/app/models"
	"github.com/MohamedTawfiq30/dmorder/app/services"
)

type fakeSettingsStore struct {
	stored models.Settings
	sets   []bson.M
}

func (f *fakeSettingsStore) Find(_ context.Context, ownerID string) (models.Settings, error) {
	if f.stored.OwnerID == "" {
		return models.Settings{OwnerID: ownerID}, nil
	}
	return f.stored, nil
}

func (f *fakeSettingsStore) Upsert(_ context.Context, _ string, fields bson.M) error {
	f.sets = append(f.sets, fields)
	return nil
}

func strptr(s string) *string { return &s }

func TestSaveWritesOnlyProvidedFields(t *testing.T) {
	store := &fakeSettingsStore{}
	svc := services.NewSettingsService(store, &fakeUploader{})

	_, err := svc.Save(context.Background(), "seller-1", services.SettingsInput{
		WhatsApp: strptr("+919999999999"),
		UPIID:    strptr("demo@upi"),
	}, nil)
	require.NoError(t, err)

	require.Len(t, store.sets, 1)
	fields := store.sets[0]
	assert.Equal(t, "+919999999999", fields["whatsapp"])
	assert.Equal(t, "demo@upi", fields["upiId"])
	assert.NotContains(t, fields, "businessName", "absent fields stay untouched")
	assert.NotContains(t, fields, "address")
}

func TestSaveEmptyStringClearsField(t *testing.T) {
	store := &fakeSettingsStore{}
	svc := services.NewSettingsService(store, &fakeUploader{})

	_, err := svc.Save(context.Background(), "seller-1", services.SettingsInput{
		Address: strptr(""),
	}, nil)
	require.NoError(t, err)

	require.Len(t, store.sets, 1)
	assert.Equal(t, "", store.sets[0]["address"])
}

func TestSaveUploadsQRToDeterministicKey(t *testing.T) {
	store := &fakeSettingsStore{}
	uploader := &fakeUploader{}
	svc := services.NewSettingsService(store, uploader)

	_, err := svc.Save(context.Background(), "seller-1", services.SettingsInput{}, strings.NewReader("qr-bytes"))
	require.NoError(t, err)

	require.Len(t, uploader.paths, 1)
	assert.Equal(t, "upi_qr/seller-1.png", uploader.paths[0])

	require.Len(t, store.sets, 1)
	assert.Equal(t, "https://cdn.test/upi_qr/seller-1.png", store.sets[0]["qrUrl"])
}

func TestSaveQRFailureDoesNotFailSave(t *testing.T) {
	store := &fakeSettingsStore{}
	uploader := &fakeUploader{err: errors.New("bucket gone")}
	svc := services.NewSettingsService(store, uploader)

	_, err := svc.Save(context.Background(), "seller-1", services.SettingsInput{
		BusinessName: strptr("Demo Boutique"),
	}, strings.NewReader("qr-bytes"))
	require.NoError(t, err)

	require.Len(t, store.sets, 1)
	assert.Equal(t, "Demo Boutique", store.sets[0]["businessName"])
	assert.NotContains(t, store.sets[0], "qrUrl")
}

func TestSaveNothingProvidedSkipsWrite(t *testing.T) {
	store := &fakeSettingsStore{}
	svc := services.NewSettingsService(store, &fakeUploader{})

	s, err := svc.Save(context.Background(), "seller-1", services.SettingsInput{}, nil)
	require.NoError(t, err)

	assert.Empty(t, store.sets)
	assert.Equal(t, "seller-1", s.OwnerID)
}
