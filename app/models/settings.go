package models

import "time"

// Settings holds a seller's payment and contact details, keyed by the
// seller's subject identifier (one record per seller). Saves merge: fields
// absent from an update keep their stored value.
type Settings struct {
	OwnerID      string    `bson:"_id"                    json:"ownerId"`
	BusinessName string    `bson:"businessName,omitempty" json:"businessName,omitempty"`
	WhatsApp     string    `bson:"whatsapp,omitempty"     json:"whatsapp,omitempty"`
	Address      string    `bson:"address,omitempty"      json:"address,omitempty"`
	UPIID        string    `bson:"upiId,omitempty"        json:"upiId,omitempty"`
	QRUrl        string    `bson:"qrUrl,omitempty"        json:"qrUrl,omitempty"`
	UpdatedAt    time.Time `bson:"updatedAt"              json:"updatedAt"`
}
