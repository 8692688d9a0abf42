package controllers

import (
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/MohamedTawfiq30/dmorder/app/services"
	"github.com/MohamedTawfiq30/dmorder/pkg/auth"
	"github.com/MohamedTawfiq30/dmorder/pkg/bind"
	"github.com/MohamedTawfiq30/dmorder/pkg/response"
)

type SettingsController struct {
	settings *services.SettingsService
}

func NewSettingsController(settings *services.SettingsService) *SettingsController {
	return &SettingsController{settings: settings}
}

// Show handles GET /api/settings.
func (c *SettingsController) Show(w http.ResponseWriter, r *http.Request) {
	s, err := c.settings.Get(r.Context(), auth.OwnerID(r.Context()))
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, s)
}

// Save handles PUT /api/settings. Accepts plain JSON, or multipart form
// data when a UPI QR image rides along under "qr".
func (c *SettingsController) Save(w http.ResponseWriter, r *http.Request) {
	ownerID := auth.OwnerID(r.Context())

	var in services.SettingsInput
	var qr io.Reader

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if strings.HasPrefix(mediaType, "multipart/") {
		if err := r.ParseMultipartForm(8 << 20); err != nil {
			response.Error(w, http.StatusBadRequest, "invalid form data")
			return
		}
		in = formSettings(r)
		if file, _, err := r.FormFile("qr"); err == nil {
			defer file.Close()
			qr = file
		}
	} else {
		if _, err := bind.JSON(r, &in); err != nil {
			response.Error(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	s, err := c.settings.Save(r.Context(), ownerID, in, qr)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, s)
}

// formSettings lifts only the fields present in the form, preserving the
// absent-means-unchanged contract that JSON bodies get from nil pointers.
func formSettings(r *http.Request) services.SettingsInput {
	var in services.SettingsInput
	if v, ok := formValue(r, "businessName"); ok {
		in.BusinessName = &v
	}
	if v, ok := formValue(r, "whatsapp"); ok {
		in.WhatsApp = &v
	}
	if v, ok := formValue(r, "address"); ok {
		in.Address = &v
	}
	if v, ok := formValue(r, "upiId"); ok {
		in.UPIID = &v
	}
	return in
}

func formValue(r *http.Request, key string) (string, bool) {
	vs, ok := r.MultipartForm.Value[key]
	if !ok || len(vs) == 0 {
		return "", false
	}
	return vs[0], true
}
