package dashboard

import (
	"database/sql"
	"testing"
	"time"

	"github.com/churrasapp/churrasapp-api/internal/domain/booking"
)

func completedBooking(price float64, eventDate time.Time, title string) *booking.BookingWithDetails {
	return &booking.BookingWithDetails{
		Booking: booking.Booking{
			Status:     booking.StatusCompleted,
			TotalPrice: price,
			EventDate:  eventDate,
		},
		ServiceTitle: sql.NullString{String: title, Valid: title != ""},
	}
}

func TestComputeEmpty(t *testing.T) {
	now := time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)
	stats := Compute(nil, now)

	if stats.TotalBookings != 0 || stats.TotalRevenue != 0 {
		t.Fatalf("empty input: totals = %d / %.2f, want zeros", stats.TotalBookings, stats.TotalRevenue)
	}
	if stats.CompletionRate != 0 {
		t.Fatalf("empty input: completion rate = %.2f, want 0", stats.CompletionRate)
	}
	if len(stats.MonthlyRevenue) != 6 {
		t.Fatalf("monthly buckets = %d, want 6", len(stats.MonthlyRevenue))
	}
	if len(stats.TopServices) != 0 {
		t.Fatalf("top services = %d, want 0", len(stats.TopServices))
	}
}

func TestComputeAggregation(t *testing.T) {
	now := time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)

	bookings := []*booking.BookingWithDetails{
		completedBooking(500, time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC), "Churrasco Premium"),
		completedBooking(200, time.Date(2026, 6, 5, 0, 0, 0, 0, time.UTC), "Churrasco Premium"),
		{Booking: booking.Booking{Status: booking.StatusCancelled, TotalPrice: 900}},
	}

	stats := Compute(bookings, now)

	if stats.TotalBookings != 3 {
		t.Fatalf("total bookings = %d, want 3", stats.TotalBookings)
	}
	if stats.TotalRevenue != 700 {
		t.Fatalf("total revenue = %.2f, want 700 (cancelled bookings never count)", stats.TotalRevenue)
	}
	if stats.CompletionRate != 66.67 {
		t.Fatalf("completion rate = %.2f, want 66.67", stats.CompletionRate)
	}

	// Oldest first: index 5 is the current month, index 3 two months back
	if got := stats.MonthlyRevenue[5].Revenue; got != 500 {
		t.Fatalf("current month revenue = %.2f, want 500", got)
	}
	if got := stats.MonthlyRevenue[3].Revenue; got != 200 {
		t.Fatalf("two months back revenue = %.2f, want 200", got)
	}
	if got := stats.MonthlyRevenue[5].Month; got != "2026-08" {
		t.Fatalf("current bucket month = %s, want 2026-08", got)
	}
	if got := stats.MonthlyRevenue[0].Month; got != "2026-03" {
		t.Fatalf("oldest bucket month = %s, want 2026-03", got)
	}

	if len(stats.TopServices) != 1 {
		t.Fatalf("top services = %d, want 1", len(stats.TopServices))
	}
	if stats.TopServices[0].Bookings != 2 || stats.TopServices[0].Revenue != 700 {
		t.Fatalf("top service = %+v, want 2 bookings / 700 revenue", stats.TopServices[0])
	}
}

func TestComputeOldRevenueOutsideWindow(t *testing.T) {
	now := time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)

	bookings := []*booking.BookingWithDetails{
		completedBooking(300, time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC), "Churrasco Classic"),
	}

	stats := Compute(bookings, now)

	if stats.TotalRevenue != 300 {
		t.Fatalf("total revenue = %.2f, want 300 (window only limits the series)", stats.TotalRevenue)
	}
	for i, b := range stats.MonthlyRevenue {
		if b.Revenue != 0 {
			t.Fatalf("bucket %d revenue = %.2f, want 0 for events older than 6 months", i, b.Revenue)
		}
	}
}

func TestComputeTopServicesRankingAndFallback(t *testing.T) {
	now := time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)
	evt := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	bookings := []*booking.BookingWithDetails{
		completedBooking(100, evt, "A"),
		completedBooking(300, evt, "B"),
		completedBooking(100, evt, ""),
		completedBooking(200, evt, "C"),
		completedBooking(200, evt, "D"),
		completedBooking(50, evt, "E"),
		completedBooking(40, evt, "F"),
	}

	stats := Compute(bookings, now)

	if len(stats.TopServices) != topServicesLimit {
		t.Fatalf("top services = %d, want %d", len(stats.TopServices), topServicesLimit)
	}
	if stats.TopServices[0].Title != "B" {
		t.Fatalf("first = %s, want B", stats.TopServices[0].Title)
	}
	// Ties keep first-seen order: C before D at 200, A before the fallback at 100
	if stats.TopServices[1].Title != "C" || stats.TopServices[2].Title != "D" {
		t.Fatalf("tie order = %s, %s, want C, D", stats.TopServices[1].Title, stats.TopServices[2].Title)
	}
	if stats.TopServices[3].Title != "A" || stats.TopServices[4].Title != fallbackServiceTitle {
		t.Fatalf("ranks 4-5 = %s, %s, want A, %s", stats.TopServices[3].Title, stats.TopServices[4].Title, fallbackServiceTitle)
	}
}

func TestComputeCompletionRateRounding(t *testing.T) {
	now := time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)
	evt := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	bookings := []*booking.BookingWithDetails{
		completedBooking(100, evt, "A"),
		{Booking: booking.Booking{Status: booking.StatusPending}},
		{Booking: booking.Booking{Status: booking.StatusPending}},
	}

	stats := Compute(bookings, now)
	if stats.CompletionRate != 33.33 {
		t.Fatalf("completion rate = %.2f, want 33.33", stats.CompletionRate)
	}
}

func TestComputeMonthLabelsAtMonthEnd(t *testing.T) {
	// Day 31: naive AddDate would normalize Nov 31 into December and
	// Feb 31 into March, mislabeling the buckets.
	now := time.Date(2026, 3, 31, 23, 0, 0, 0, time.UTC)

	stats := Compute(nil, now)

	want := []string{"2025-10", "2025-11", "2025-12", "2026-01", "2026-02", "2026-03"}
	for i, w := range want {
		if got := stats.MonthlyRevenue[i].Month; got != w {
			t.Fatalf("bucket %d month = %s, want %s", i, got, w)
		}
	}
}

func TestComputeMonthLabelsAlignWithRevenue(t *testing.T) {
	now := time.Date(2026, 3, 31, 23, 0, 0, 0, time.UTC)

	bookings := []*booking.BookingWithDetails{
		completedBooking(250, time.Date(2026, 2, 14, 0, 0, 0, 0, time.UTC), "Churrasco"),
	}

	stats := Compute(bookings, now)

	if got := stats.MonthlyRevenue[4]; got.Month != "2026-02" || got.Revenue != 250 {
		t.Fatalf("bucket 4 = %+v, want February revenue under the February label", got)
	}
}

func TestMonthDiff(t *testing.T) {
	now := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		event time.Time
		want  int
	}{
		{time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), 0},
		{time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC), 1},
		{time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC), 5},
		{time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC), 6},
		{time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), -1},
	}

	for _, tc := range cases {
		if got := monthDiff(tc.event, now); got != tc.want {
			t.Fatalf("monthDiff(%s) = %d, want %d", tc.event.Format("2006-01"), got, tc.want)
		}
	}
}
