package dashboard

import (
	"math"
	"sort"
	"time"

	"github.com/churrasapp/churrasapp-api/internal/domain/booking"
)

// monthWindow is how many trailing months of revenue the dashboard shows.
const monthWindow = 6

// fallbackServiceTitle labels revenue from bookings whose listing no
// longer exists or has an empty title.
const fallbackServiceTitle = "Churrasco"

// topServicesLimit caps the top-services ranking.
const topServicesLimit = 5

// MonthBucket is one month of completed revenue.
type MonthBucket struct {
	Month   string  `json:"month"`
	Revenue float64 `json:"revenue"`
}

// ServiceStat aggregates completed bookings of one service title.
type ServiceStat struct {
	Title    string  `json:"title"`
	Bookings int     `json:"bookings"`
	Revenue  float64 `json:"revenue"`
}

// Stats is the professional dashboard payload.
type Stats struct {
	TotalBookings  int           `json:"total_bookings"`
	TotalRevenue   float64       `json:"total_revenue"`
	CompletionRate float64       `json:"completion_rate"`
	MonthlyRevenue []MonthBucket `json:"monthly_revenue"`
	TopServices    []ServiceStat `json:"top_services"`
}

// Compute aggregates a professional's bookings into dashboard statistics.
// Only completed bookings count as revenue; cancelled and pending bookings
// still count toward the total. The monthly series always spans the last
// six months ending at now, oldest first, with zero-revenue months kept.
func Compute(bookings []*booking.BookingWithDetails, now time.Time) *Stats {
	stats := &Stats{
		TotalBookings:  len(bookings),
		MonthlyRevenue: make([]MonthBucket, monthWindow),
		TopServices:    []ServiceStat{},
	}

	// Anchor on the first of the month: AddDate on day 29-31 normalizes
	// into the wrong month.
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	for i := 0; i < monthWindow; i++ {
		m := monthStart.AddDate(0, i-(monthWindow-1), 0)
		stats.MonthlyRevenue[i].Month = m.Format("2006-01")
	}

	completed := 0
	byTitle := map[string]*ServiceStat{}
	var titleOrder []string

	for _, b := range bookings {
		if b.Status != booking.StatusCompleted {
			continue
		}
		completed++
		stats.TotalRevenue += b.TotalPrice

		diff := monthDiff(b.EventDate, now)
		if diff >= 0 && diff < monthWindow {
			stats.MonthlyRevenue[monthWindow-1-diff].Revenue += b.TotalPrice
		}

		title := b.ServiceTitle.String
		if title == "" {
			title = fallbackServiceTitle
		}
		st, ok := byTitle[title]
		if !ok {
			st = &ServiceStat{Title: title}
			byTitle[title] = st
			titleOrder = append(titleOrder, title)
		}
		st.Bookings++
		st.Revenue += b.TotalPrice
	}

	if stats.TotalBookings > 0 {
		rate := float64(completed) / float64(stats.TotalBookings) * 100
		stats.CompletionRate = math.Round(rate*100) / 100
	}

	for _, title := range titleOrder {
		stats.TopServices = append(stats.TopServices, *byTitle[title])
	}
	sort.SliceStable(stats.TopServices, func(i, j int) bool {
		return stats.TopServices[i].Revenue > stats.TopServices[j].Revenue
	})
	if len(stats.TopServices) > topServicesLimit {
		stats.TopServices = stats.TopServices[:topServicesLimit]
	}

	return stats
}

// monthDiff returns how many calendar months ago event falls relative to
// now, ignoring the day of month. 0 means the current month.
func monthDiff(event, now time.Time) int {
	return (now.Year()-event.Year())*12 + int(now.Month()) - int(event.Month())
}
