package services

import (
	"context"
	"io"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/MohamedTawfiq30/dmorder/app/models"
	"github.com/MohamedTawfiq30/dmorder/pkg/logger"
)

// SettingsStore is the slice of the settings repository the service needs.
type SettingsStore interface {
	Find(ctx context.Context, ownerID string) (models.Settings, error)
	Upsert(ctx context.Context, ownerID string, fields bson.M) error
}

type SettingsService struct {
	settings SettingsStore
	uploads  Uploader
}

func NewSettingsService(settings SettingsStore, uploads Uploader) *SettingsService {
	return &SettingsService{settings: settings, uploads: uploads}
}

// SettingsInput carries a partial update. Nil pointers mean "leave this
// field as it is"; empty strings are deliberate clears.
type SettingsInput struct {
	BusinessName *string `json:"businessName"`
	WhatsApp     *string `json:"whatsapp"`
	Address      *string `json:"address"`
	UPIID        *string `json:"upiId"`
}

func (s *SettingsService) Get(ctx context.Context, ownerID string) (models.Settings, error) {
	return s.settings.Find(ctx, ownerID)
}

// Save merges the provided fields into the seller's settings. A QR image,
// when supplied, goes to a deterministic per-seller key so re-uploads
// overwrite in place. QR upload failure does not fail the save; the text
// fields land and the seller retries the image.
func (s *SettingsService) Save(ctx context.Context, ownerID string, in SettingsInput, qr io.Reader) (models.Settings, error) {
	fields := bson.M{}
	if in.BusinessName != nil {
		fields["businessName"] = *in.BusinessName
	}
	if in.WhatsApp != nil {
		fields["whatsapp"] = *in.WhatsApp
	}
	if in.Address != nil {
		fields["address"] = *in.Address
	}
	if in.UPIID != nil {
		fields["upiId"] = *in.UPIID
	}

	if qr != nil {
		qrPath := "upi_qr/" + ownerID + ".png"
		if err := s.uploads.PutStream(qrPath, qr); err != nil {
			logger.WithCtx(ctx).Warn("qr upload failed, settings saved without it",
				"ownerId", ownerID, "error", err)
		} else {
			fields["qrUrl"] = s.uploads.URL(qrPath)
		}
	}

	if len(fields) > 0 {
		if err := s.settings.Upsert(ctx, ownerID, fields); err != nil {
			return models.Settings{}, err
		}
	}

	return s.settings.Find(ctx, ownerID)
}
