package services

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/MohamedTawfiq30/dmorder/app/models"
)

// feedScript yields true once per scripted event, then blocks until the
// context ends, like a change stream with no further activity.
type feedScript struct {
	events   chan struct{} // one receive per change event
	idle     chan struct{} // closed once every scripted event has been consumed
	idleOnce sync.Once
	closed   bool
}

func newFeedScript(events int) *feedScript {
	f := &feedScript{events: make(chan struct{}, events+8), idle: make(chan struct{})}
	for i := 0; i < events; i++ {
		f.events <- struct{}{}
	}
	return f
}

// fire releases one more change event into the feed.
func (f *feedScript) fire() { f.events <- struct{}{} }

func (f *feedScript) Next(ctx context.Context) bool {
	select {
	case <-f.events:
		return true
	default:
	}
	f.idleOnce.Do(func() { close(f.idle) })
	select {
	case <-f.events:
		return true
	case <-ctx.Done():
		return false
	}
}

func (f *feedScript) Close(context.Context) error {
	f.closed = true
	return nil
}

type snapshotStore struct {
	snapshots [][]models.Order
	calls     atomic.Int32
}

func (s *snapshotStore) AllByOwner(context.Context, string) ([]models.Order, error) {
	i := int(s.calls.Add(1)) - 1
	if i >= len(s.snapshots) {
		i = len(s.snapshots) - 1
	}
	return s.snapshots[i], nil
}

func (s *snapshotStore) Watch(context.Context, string) (*mongo.ChangeStream, error) {
	return nil, nil
}

func collect(t *testing.T, ch <-chan []models.Order, n int) [][]models.Order {
	t.Helper()
	var got [][]models.Order
	for len(got) < n {
		select {
		case snap, ok := <-ch:
			if !ok {
				t.Fatalf("channel closed after %d snapshots, want %d", len(got), n)
			}
			got = append(got, snap)
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out after %d snapshots, want %d", len(got), n)
		}
	}
	return got
}

func TestPumpSendsInitialAndPerEventSnapshots(t *testing.T) {
	store := &snapshotStore{snapshots: [][]models.Order{
		{{ProductName: "first"}},
		{{ProductName: "first"}, {ProductName: "second"}},
	}}
	svc := NewLiveService(store)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	feed := newFeedScript(0)
	out := make(chan []models.Order, 1)
	go svc.pump(ctx, "seller-1", feed, out)

	first := collect(t, out, 1)
	require.Len(t, first[0], 1)
	assert.Equal(t, "first", first[0][0].ProductName)

	feed.fire()
	second := collect(t, out, 1)
	require.Len(t, second[0], 2)
	assert.Equal(t, "second", second[0][1].ProductName)
}

func TestPumpClosesOnCancel(t *testing.T) {
	store := &snapshotStore{snapshots: [][]models.Order{{}}}
	svc := NewLiveService(store)

	ctx, cancel := context.WithCancel(context.Background())
	feed := newFeedScript(0)
	out := make(chan []models.Order, 1)
	go svc.pump(ctx, "seller-1", feed, out)

	collect(t, out, 1)
	cancel()

	select {
	case _, ok := <-out:
		assert.False(t, ok, "channel should close after cancel")
	case <-time.After(2 * time.Second):
		t.Fatal("channel did not close after cancel")
	}
	assert.True(t, feed.closed, "feed must be closed on teardown")
}

func TestPumpReplacesUndeliveredSnapshot(t *testing.T) {
	store := &snapshotStore{snapshots: [][]models.Order{
		{{ProductName: "stale"}},
		{{ProductName: "fresh"}},
	}}
	svc := NewLiveService(store)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	feed := newFeedScript(1)
	out := make(chan []models.Order, 1)
	go svc.pump(ctx, "seller-1", feed, out)

	// Wait for the feed to go idle: both pushes have landed and the second
	// has evicted the first.
	select {
	case <-feed.idle:
	case <-time.After(2 * time.Second):
		t.Fatal("feed never went idle")
	}

	got := collect(t, out, 1)
	assert.Equal(t, "fresh", got[0][0].ProductName)
}
