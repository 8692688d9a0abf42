package services

import (
	"sort"
	"time"

	"github.com/MohamedTawfiq30/dmorder/app/models"
)

const recentPendingLimit = 10

// Dashboard is the derived view behind the seller's home screen. It is a
// pure function of the order set and the clock; every live update rebuilds
// it from a fresh snapshot.
type Dashboard struct {
	TodayCount     int            `json:"todayCount"`
	Pending24h     int            `json:"pending24h"`
	Completed24h   int            `json:"completed24h"`
	RecentPending  []models.Order `json:"recentPending"`
	CompletedToday []models.Order `json:"completedToday"`

	// PreviousCompleted groups older completed orders by calendar day,
	// most recent group first.
	PreviousCompleted []DayGroup `json:"previousCompleted"`
}

// DayGroup is one calendar day's worth of completed orders.
type DayGroup struct {
	Date   string         `json:"date"`
	Orders []models.Order `json:"orders"`
}

// BuildDashboard derives the dashboard from a full order snapshot. Orders
// with a zero CreatedAt (legacy records missing the server timestamp) are
// kept in the lists but excluded from every time bucket.
func BuildDashboard(orders []models.Order, now time.Time) Dashboard {
	sorted := make([]models.Order, len(orders))
	copy(sorted, orders)

	// Newest first; zero timestamps sink to the bottom.
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})

	cutoff24 := now.Add(-24 * time.Hour)
	d := Dashboard{
		RecentPending:     []models.Order{},
		CompletedToday:    []models.Order{},
		PreviousCompleted: []DayGroup{},
	}

	groupIdx := map[string]int{}

	for _, o := range sorted {
		timestamped := !o.CreatedAt.IsZero()

		if timestamped && sameLocalDay(o.CreatedAt, now) {
			d.TodayCount++
		}

		switch {
		case o.Pending():
			if timestamped && !o.CreatedAt.Before(cutoff24) {
				d.Pending24h++
			}
			if len(d.RecentPending) < recentPendingLimit {
				d.RecentPending = append(d.RecentPending, o)
			}

		case o.Completed():
			if timestamped && !o.CreatedAt.Before(cutoff24) {
				d.Completed24h++
			}
			if !timestamped {
				continue
			}
			if sameLocalDay(o.CreatedAt, now) {
				d.CompletedToday = append(d.CompletedToday, o)
				continue
			}
			key := o.CreatedAt.Local().Format("Mon Jan 02 2006")
			idx, ok := groupIdx[key]
			if !ok {
				idx = len(d.PreviousCompleted)
				groupIdx[key] = idx
				d.PreviousCompleted = append(d.PreviousCompleted, DayGroup{Date: key})
			}
			d.PreviousCompleted[idx].Orders = append(d.PreviousCompleted[idx].Orders, o)
		}
	}

	return d
}

// sameLocalDay reports whether a and b fall on the same local calendar day.
func sameLocalDay(a, b time.Time) bool {
	ay, am, ad := a.Local().Date()
	by, bm, bd := b.Local().Date()
	return ay == by && am == bm && ad == bd
}
