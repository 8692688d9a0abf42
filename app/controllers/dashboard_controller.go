package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/MohamedTawfiq30/dmorder/app/services"
	"github.com/MohamedTawfiq30/dmorder/pkg/auth"
	"github.com/MohamedTawfiq30/dmorder/pkg/logger"
	"github.com/MohamedTawfiq30/dmorder/pkg/response"
	"github.com/MohamedTawfiq30/dmorder/pkg/sse"
	"github.com/MohamedTawfiq30/dmorder/pkg/ws"
)

// DashboardController serves the seller's derived dashboard, one-shot and
// live. Both live transports carry the same payload: a freshly rebuilt
// dashboard per change, never a delta.
type DashboardController struct {
	orders *services.OrderService
	live   *services.LiveService
}

func NewDashboardController(orders *services.OrderService, live *services.LiveService) *DashboardController {
	return &DashboardController{orders: orders, live: live}
}

// Show handles GET /api/dashboard: a single snapshot.
func (c *DashboardController) Show(w http.ResponseWriter, r *http.Request) {
	orders, err := c.orders.List(r.Context(), auth.OwnerID(r.Context()))
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, services.BuildDashboard(orders, time.Now()))
}

// Stream handles GET /api/dashboard/stream: dashboard snapshots over SSE.
// The subscription ends when the client disconnects.
func (c *DashboardController) Stream(w http.ResponseWriter, r *http.Request) {
	ownerID := auth.OwnerID(r.Context())

	snapshots, err := c.live.Subscribe(r.Context(), ownerID)
	if err != nil {
		fail(w, r, err)
		return
	}

	stream := sse.New(w, r)
	if stream == nil {
		// New already reported the failure to the client.
		return
	}

	heartbeat := time.NewTicker(25 * time.Second)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-heartbeat.C:
			stream.Comment("keep-alive")
		case orders, ok := <-snapshots:
			if !ok {
				return
			}
			if err := stream.Send("dashboard", services.BuildDashboard(orders, time.Now())); err != nil {
				return
			}
		}
	}
}

// Socket handles GET /api/dashboard/ws: the same snapshots over WebSocket,
// for clients behind proxies that buffer SSE.
func (c *DashboardController) Socket(w http.ResponseWriter, r *http.Request) {
	ownerID := auth.OwnerID(r.Context())

	conn, err := ws.Upgrade(w, r)
	if err != nil {
		// Upgrade already wrote the handshake error.
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	snapshots, err := c.live.Subscribe(ctx, ownerID)
	if err != nil {
		logger.WithCtx(ctx).Error("live subscribe failed", "ownerId", ownerID, "error", err)
		return
	}

	for {
		select {
		case <-conn.Done():
			return
		case <-ctx.Done():
			return
		case orders, ok := <-snapshots:
			if !ok {
				return
			}
			if err := conn.WriteJSON(services.BuildDashboard(orders, time.Now())); err != nil {
				return
			}
		}
	}
}
