package services

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/MohamedTawfiq30/dmorder/app/models"
	"github.com/MohamedTawfiq30/dmorder/pkg/logger"
	"github.com/MohamedTawfiq30/dmorder/pkg/metrics"
)

// ChangeFeed is satisfied by *mongo.ChangeStream. Events only signal that
// something changed; the snapshot comes from a re-query.
type ChangeFeed interface {
	Next(ctx context.Context) bool
	Close(ctx context.Context) error
}

// OrderFeed is the slice of the order repository the live view needs.
type OrderFeed interface {
	AllByOwner(ctx context.Context, ownerID string) ([]models.Order, error)
	Watch(ctx context.Context, ownerID string) (*mongo.ChangeStream, error)
}

type LiveService struct {
	orders OrderFeed
}

func NewLiveService(orders OrderFeed) *LiveService {
	return &LiveService{orders: orders}
}

// Subscribe streams full order snapshots for one seller. The first element
// arrives immediately; after that, every change event in the seller's
// orders triggers a fresh re-query and a replacement snapshot (never a
// delta). The channel closes when ctx is cancelled or the feed dies.
//
// A slow consumer drops intermediate snapshots rather than blocking the
// feed; only the latest state matters.
func (s *LiveService) Subscribe(ctx context.Context, ownerID string) (<-chan []models.Order, error) {
	feed, err := s.orders.Watch(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	out := make(chan []models.Order, 1)
	metrics.LiveSubscriptions.Inc()

	go s.pump(ctx, ownerID, feed, out)
	return out, nil
}

func (s *LiveService) pump(ctx context.Context, ownerID string, feed ChangeFeed, out chan []models.Order) {
	defer func() {
		_ = feed.Close(context.Background())
		close(out)
		metrics.LiveSubscriptions.Dec()
	}()

	if !s.push(ctx, ownerID, out) {
		return
	}

	// Next blocks until an event arrives or ctx is cancelled.
	for feed.Next(ctx) {
		if !s.push(ctx, ownerID, out) {
			return
		}
	}
}

// push re-queries and delivers a snapshot, replacing any undelivered one.
// Returns false when the subscription should end.
func (s *LiveService) push(ctx context.Context, ownerID string, out chan []models.Order) bool {
	orders, err := s.orders.AllByOwner(ctx, ownerID)
	if err != nil {
		if ctx.Err() == nil {
			logger.WithCtx(ctx).Error("live snapshot query failed", "ownerId", ownerID, "error", err)
		}
		return false
	}

	// Buffer holds one snapshot; evict any undelivered one so the
	// consumer always gets the latest state.
	select {
	case <-out:
	default:
	}

	select {
	case <-ctx.Done():
		return false
	case out <- orders:
		return true
	}
}
