package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MohamedTawfiq30/dmorder/app/services"
	"github.com/MohamedTawfiq30/dmorder/pkg/auth"
	"github.com/MohamedTawfiq30/dmorder/pkg/bind"
	"github.com/MohamedTawfiq30/dmorder/pkg/response"
)

type ProductController struct {
	products *services.ProductService
}

func NewProductController(products *services.ProductService) *ProductController {
	return &ProductController{products: products}
}

// Index handles GET /api/products.
func (c *ProductController) Index(w http.ResponseWriter, r *http.Request) {
	views, err := c.products.List(r.Context(), auth.OwnerID(r.Context()))
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, views)
}

// Store handles POST /api/products.
func (c *ProductController) Store(w http.ResponseWriter, r *http.Request) {
	var in services.ProductInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	view, err := c.products.Create(r.Context(), auth.OwnerID(r.Context()), in)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Created(w, view)
}

// Show handles GET /api/products/{id}.
func (c *ProductController) Show(w http.ResponseWriter, r *http.Request) {
	view, err := c.products.Get(r.Context(), auth.OwnerID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, view)
}

// Update handles PUT /api/products/{id}.
func (c *ProductController) Update(w http.ResponseWriter, r *http.Request) {
	var in services.ProductInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	view, err := c.products.Update(r.Context(), auth.OwnerID(r.Context()), chi.URLParam(r, "id"), in)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, view)
}

// Destroy handles DELETE /api/products/{id}.
func (c *ProductController) Destroy(w http.ResponseWriter, r *http.Request) {
	if err := c.products.Delete(r.Context(), auth.OwnerID(r.Context()), chi.URLParam(r, "id")); err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, nil)
}
