package dataview

import (
	"strconv"
	"strings"
	"time"

	"shipdash-backend/internal/models"
)

// FilterAll is the sentinel for an unset categorical filter.
const FilterAll = "all"

// FilterState holds the filter controls of one dashboard view.
// Zero values mean "predicate not active"; the zero FilterState
// passes every record.
type FilterState struct {
	Query     string
	Start     *time.Time
	End       *time.Time
	Warehouse string // warehouse code or "all"
	Vehicle   string // vehicle type or "all"
}

// EmptyFilter returns the state a view starts with: nothing active.
func EmptyFilter() FilterState {
	return FilterState{Warehouse: FilterAll, Vehicle: FilterAll}
}

// IsEmpty reports whether no predicate is active.
func (f FilterState) IsEmpty() bool {
	return f.Query == "" && f.Start == nil && f.End == nil &&
		(f.Warehouse == "" || f.Warehouse == FilterAll) &&
		(f.Vehicle == "" || f.Vehicle == FilterAll)
}

// MatchDateRange reports whether ts falls inside the optional
// [start, end] window. Bounds are inclusive of their own instant and
// compared as full instants; callers widening a calendar-day end bound
// to its end-of-day instant must do so before calling.
func MatchDateRange(ts time.Time, start, end *time.Time) bool {
	if start != nil && ts.Before(*start) {
		return false
	}
	if end != nil && ts.After(*end) {
		return false
	}
	return true
}

// Filter returns the records that satisfy every active predicate, in
// their original relative order. The input slice is never mutated; the
// result is always a fresh slice.
func Filter(records []models.Shipment, state FilterState) []models.Shipment {
	out := make([]models.Shipment, 0, len(records))
	for _, rec := range records {
		if Matches(rec, state) {
			out = append(out, rec)
		}
	}
	return out
}

// Matches applies all four predicates to a single record (logical AND;
// inactive predicates pass).
func Matches(rec models.Shipment, state FilterState) bool {
	if !matchQuery(rec, state.Query) {
		return false
	}
	if !MatchDateRange(rec.Date, state.Start, state.End) {
		return false
	}
	if state.Warehouse != "" && state.Warehouse != FilterAll && state.Warehouse != rec.Warehouse {
		return false
	}
	if state.Vehicle != "" && state.Vehicle != FilterAll && state.Vehicle != rec.Vehicle {
		return false
	}
	return true
}

// matchQuery is the free-text predicate: a case-insensitive substring
// match against the dealer code, warehouse, or vehicle, or an exact
// substring match against the numeric product code. Any one hit passes.
func matchQuery(rec models.Shipment, query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	if strings.Contains(strconv.Itoa(rec.DealerCode), q) {
		return true
	}
	if strings.Contains(strings.ToLower(rec.Warehouse), q) {
		return true
	}
	if strings.Contains(strings.ToLower(rec.Vehicle), q) {
		return true
	}
	// Product code is numeric, so the match stays case-sensitive.
	return strings.Contains(rec.ProductCode, query)
}
