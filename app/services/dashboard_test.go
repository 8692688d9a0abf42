package services_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MohamedTawfiq30/dmorder/app/models"
	"github.com/MohamedTawfiq30/dmorder/app/services"
)

// fixed reference point, mid-afternoon so "one hour ago" stays on the same
// calendar day.
var now = time.Date(2025, 6, 15, 15, 0, 0, 0, time.Local)

func order(id int, status string, createdAt time.Time) models.Order {
	return models.Order{
		ProductName: fmt.Sprintf("product-%d", id),
		Status:      status,
		CreatedAt:   createdAt,
	}
}

func TestBuildDashboardBuckets(t *testing.T) {
	orders := []models.Order{
		order(1, models.OrderPending, now.Add(-1*time.Hour)),    // today, within 24h
		order(2, models.OrderCompleted, now.Add(-30*time.Hour)), // yesterday, outside 24h
		order(3, models.OrderCompleted, now),                    // today, within 24h
	}

	d := services.BuildDashboard(orders, now)

	assert.Equal(t, 2, d.TodayCount, "orders created today")
	assert.Equal(t, 1, d.Pending24h)
	assert.Equal(t, 1, d.Completed24h)

	require.Len(t, d.RecentPending, 1)
	assert.Equal(t, "product-1", d.RecentPending[0].ProductName)

	require.Len(t, d.CompletedToday, 1)
	assert.Equal(t, "product-3", d.CompletedToday[0].ProductName)

	require.Len(t, d.PreviousCompleted, 1)
	assert.Equal(t, now.Add(-30*time.Hour).Format("Mon Jan 02 2006"), d.PreviousCompleted[0].Date)
	require.Len(t, d.PreviousCompleted[0].Orders, 1)
	assert.Equal(t, "product-2", d.PreviousCompleted[0].Orders[0].ProductName)
}

func TestBuildDashboardGroupsOlderCompletedByDay(t *testing.T) {
	dayMinus1 := now.Add(-26 * time.Hour)
	dayMinus2 := now.Add(-50 * time.Hour)

	orders := []models.Order{
		order(1, models.OrderCompleted, dayMinus2),
		order(2, models.OrderCompleted, dayMinus1),
		order(3, models.OrderCompleted, dayMinus1.Add(-time.Hour)),
	}

	d := services.BuildDashboard(orders, now)

	require.Len(t, d.PreviousCompleted, 2)
	// most recent day first
	assert.Equal(t, dayMinus1.Format("Mon Jan 02 2006"), d.PreviousCompleted[0].Date)
	assert.Len(t, d.PreviousCompleted[0].Orders, 2)
	assert.Equal(t, dayMinus2.Format("Mon Jan 02 2006"), d.PreviousCompleted[1].Date)
	assert.Len(t, d.PreviousCompleted[1].Orders, 1)
}

func TestBuildDashboardRecentPendingCap(t *testing.T) {
	var orders []models.Order
	for i := 0; i < 15; i++ {
		orders = append(orders, order(i, models.OrderPending, now.Add(-time.Duration(i)*time.Minute)))
	}

	d := services.BuildDashboard(orders, now)

	require.Len(t, d.RecentPending, 10)
	// newest first
	assert.Equal(t, "product-0", d.RecentPending[0].ProductName)
	assert.Equal(t, "product-9", d.RecentPending[9].ProductName)
}

func TestBuildDashboardZeroTimestamps(t *testing.T) {
	orders := []models.Order{
		order(1, models.OrderPending, time.Time{}), // legacy record, no timestamp
		order(2, models.OrderPending, now),
		order(3, models.OrderCompleted, time.Time{}),
	}

	d := services.BuildDashboard(orders, now)

	// Untimestamped orders stay out of every bucket...
	assert.Equal(t, 1, d.TodayCount)
	assert.Equal(t, 1, d.Pending24h)
	assert.Equal(t, 0, d.Completed24h)
	assert.Empty(t, d.CompletedToday)
	assert.Empty(t, d.PreviousCompleted)

	// ...but pending ones still appear in the list, after dated orders.
	require.Len(t, d.RecentPending, 2)
	assert.Equal(t, "product-2", d.RecentPending[0].ProductName)
	assert.Equal(t, "product-1", d.RecentPending[1].ProductName)
}

func TestBuildDashboardEmpty(t *testing.T) {
	d := services.BuildDashboard(nil, now)

	assert.Zero(t, d.TodayCount)
	assert.NotNil(t, d.RecentPending)
	assert.NotNil(t, d.CompletedToday)
	assert.NotNil(t, d.PreviousCompleted)
}
