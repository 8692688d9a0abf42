package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MohamedTawfiq30/dmorder/app/services"
	"github.com/MohamedTawfiq30/dmorder/pkg/auth"
	"github.com/MohamedTawfiq30/dmorder/pkg/response"
)

type OrderController struct {
	orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{orders: orders}
}

// Index handles GET /api/orders: the seller's orders, newest first.
func (c *OrderController) Index(w http.ResponseWriter, r *http.Request) {
	orders, err := c.orders.List(r.Context(), auth.OwnerID(r.Context()))
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, orders)
}

// Complete handles PATCH /api/orders/{id}/complete.
func (c *OrderController) Complete(w http.ResponseWriter, r *http.Request) {
	err := c.orders.Complete(r.Context(), auth.OwnerID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, nil)
}
