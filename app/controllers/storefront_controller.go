package controllers

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MohamedTawfiq30/dmorder/app/services"
	"github.com/MohamedTawfiq30/dmorder/pkg/response"
)

// StorefrontController serves the buyer side of a Smart Order Link. No
// authentication; the slug in the URL is the only credential a buyer has.
type StorefrontController struct {
	products *services.ProductService
	orders   *services.OrderService
}

func NewStorefrontController(products *services.ProductService, orders *services.OrderService) *StorefrontController {
	return &StorefrontController{products: products, orders: orders}
}

// Show handles GET /o/{slug}: the buyer's product page payload.
func (c *StorefrontController) Show(w http.ResponseWriter, r *http.Request) {
	view, err := c.products.Storefront(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, view)
}

// Place handles POST /o/{slug}/orders. The buyer form arrives as multipart
// form data with the payment screenshot under "paymentScreenshot".
func (c *StorefrontController) Place(w http.ResponseWriter, r *http.Request) {
	// 8 MB: form fields plus one phone screenshot.
	if err := r.ParseMultipartForm(8 << 20); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid form data")
		return
	}

	in := services.PlaceInput{
		Size:         r.FormValue("size"),
		Color:        r.FormValue("color"),
		CustomerName: r.FormValue("customerName"),
		Phone:        r.FormValue("phone"),
		Address:      r.FormValue("address"),
	}

	var proof io.Reader
	var proofName string
	if file, header, err := r.FormFile("paymentScreenshot"); err == nil {
		defer file.Close()
		proof = file
		proofName = header.Filename
	}

	order, err := c.orders.Place(r.Context(), chi.URLParam(r, "slug"), in, proof, proofName)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Created(w, order)
}
