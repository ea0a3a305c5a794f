package listing

import "strings"

// Price thresholds for the budget/premium toggles
const (
	BudgetMaxPrice  = 500
	PremiumMinPrice = 800
)

// Toggles are the selectable search filters.
// Nearby and Available are accepted for forward compatibility but have no
// predicate yet: enabling them does not narrow the result.
type Toggles struct {
	Budget    bool
	Premium   bool
	Nearby    bool
	Available bool
}

// ParseToggles parses a comma-separated filters parameter ("budget,premium")
func ParseToggles(raw string) Toggles {
	var t Toggles
	for _, name := range strings.Split(raw, ",") {
		switch strings.TrimSpace(strings.ToLower(name)) {
		case "budget":
			t.Budget = true
		case "premium":
			t.Premium = true
		case "nearby":
			t.Nearby = true
		case "available":
			t.Available = true
		}
	}
	return t
}

// Filter narrows a listing slice by a free-text query and filter toggles.
// The text predicate applies first, then each active toggle (logical AND).
// Order-preserving: results keep their input order.
func Filter(items []*ListingWithOwner, query string, toggles Toggles) []*ListingWithOwner {
	result := items

	if q := strings.TrimSpace(strings.ToLower(query)); q != "" {
		result = keep(result, func(l *ListingWithOwner) bool {
			return strings.Contains(strings.ToLower(l.Title), q) ||
				strings.Contains(strings.ToLower(l.Description), q) ||
				strings.Contains(strings.ToLower(l.Location.String), q) ||
				strings.Contains(strings.ToLower(l.OwnerName), q)
		})
	}

	if toggles.Budget {
		result = keep(result, func(l *ListingWithOwner) bool {
			return l.PriceFrom <= BudgetMaxPrice
		})
	}

	if toggles.Premium {
		result = keep(result, func(l *ListingWithOwner) bool {
			return l.PriceFrom >= PremiumMinPrice
		})
	}

	return result
}

func keep(items []*ListingWithOwner, pred func(*ListingWithOwner) bool) []*ListingWithOwner {
	out := make([]*ListingWithOwner, 0, len(items))
	for _, item := range items {
		if pred(item) {
			out = append(out, item)
		}
	}
	return out
}
