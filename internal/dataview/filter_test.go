package dataview

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shipdash-backend/internal/models"
	"shipdash-backend/internal/timeutil"
)

func ts(day string) time.Time {
	t, err := time.ParseInLocation(timeutil.DateLayout, day, timeutil.IST)
	if err != nil {
		panic(err)
	}
	return t
}

func sampleShipments() []models.Shipment {
	return []models.Shipment{
		{ID: "s1", Date: ts("2026-08-01"), DealerCode: 7, Warehouse: "NAG", ProductCode: "123456789", Vehicle: "Vikram", Shipped: 20},
		{ID: "s2", Date: ts("2026-08-05"), DealerCode: 42, Warehouse: "MUM", ProductCode: "987654321", Vehicle: "Autorickshaw", Shipped: 12},
		{ID: "s3", Date: ts("2026-08-10"), DealerCode: 42, Warehouse: "NAG", ProductCode: "555000111", Vehicle: "Minitruck", Shipped: 38},
		{ID: "s4", Date: ts("2026-08-15"), DealerCode: 99, Warehouse: "GOA", ProductCode: "123000789", Vehicle: "Vikram", Shipped: 22},
		{ID: "s5", Date: ts("2026-08-20"), DealerCode: 3, Warehouse: "KOL", ProductCode: "444555666", Vehicle: "Autorickshaw", Shipped: 9},
	}
}

func ids(records []models.Shipment) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.ID)
	}
	return out
}

func TestEmptyFilterKeepsEverything(t *testing.T) {
	records := sampleShipments()
	got := Filter(records, EmptyFilter())

	assert.Equal(t, ids(records), ids(got))
}

func TestFilterPreservesOrder(t *testing.T) {
	records := sampleShipments()
	got := Filter(records, FilterState{Vehicle: "Vikram", Warehouse: FilterAll})

	assert.Equal(t, []string{"s1", "s4"}, ids(got))
}

func TestFilterIsIdempotent(t *testing.T) {
	state := FilterState{Query: "42", Warehouse: FilterAll, Vehicle: FilterAll}
	once := Filter(sampleShipments(), state)
	twice := Filter(once, state)

	assert.Equal(t, ids(once), ids(twice))
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	records := sampleShipments()
	before := ids(records)

	Filter(records, FilterState{Warehouse: "NAG", Vehicle: FilterAll})

	assert.Equal(t, before, ids(records))
}

func TestFilterResultIsSubset(t *testing.T) {
	records := sampleShipments()
	got := Filter(records, FilterState{Warehouse: "NAG", Vehicle: FilterAll})

	require.NotEmpty(t, got)
	for _, rec := range got {
		assert.Contains(t, ids(records), rec.ID)
		assert.Equal(t, "NAG", rec.Warehouse)
	}
}

func TestQueryMatchesAcrossFields(t *testing.T) {
	records := sampleShipments()

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"dealer code substring", "42", []string{"s2", "s3"}},
		{"warehouse case-insensitive", "nag", []string{"s1", "s3"}},
		{"vehicle case-insensitive", "VIKRAM", []string{"s1", "s4"}},
		{"product code substring", "000", []string{"s3", "s4"}},
		{"no match", "zzz", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(records, FilterState{Query: tt.query, Warehouse: FilterAll, Vehicle: FilterAll})
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestPredicatesCombineWithAnd(t *testing.T) {
	records := sampleShipments()

	// "42" alone matches s2 and s3; warehouse NAG narrows to s3.
	got := Filter(records, FilterState{Query: "42", Warehouse: "NAG", Vehicle: FilterAll})
	assert.Equal(t, []string{"s3"}, ids(got))
}

func TestMatchDateRangeInclusiveBounds(t *testing.T) {
	start := ts("2026-08-05")
	end := ts("2026-08-15")

	assert.True(t, MatchDateRange(start, &start, &end), "start instant itself is inside")
	assert.True(t, MatchDateRange(end, &start, &end), "end instant itself is inside")
	assert.False(t, MatchDateRange(start.Add(-time.Nanosecond), &start, &end))
	assert.False(t, MatchDateRange(end.Add(time.Nanosecond), &start, &end))
}

func TestMatchDateRangeOpenEnds(t *testing.T) {
	when := ts("2026-08-10")
	bound := ts("2026-08-05")

	assert.True(t, MatchDateRange(when, nil, nil))
	assert.True(t, MatchDateRange(when, &bound, nil))
	assert.False(t, MatchDateRange(when, nil, &bound))
}

func TestDateRangeWidenedToEndOfDay(t *testing.T) {
	// A record logged in the afternoon of the end day survives only
	// when the caller widens the bound to end-of-day first.
	afternoon := ts("2026-08-15").Add(14 * time.Hour)
	records := []models.Shipment{{ID: "late", Date: afternoon, Warehouse: "NAG", Vehicle: "Vikram"}}

	start := ts("2026-08-01")
	rawEnd := ts("2026-08-15")
	assert.Empty(t, Filter(records, FilterState{Start: &start, End: &rawEnd, Warehouse: FilterAll, Vehicle: FilterAll}))

	widened := timeutil.EndOfDay(rawEnd)
	got := Filter(records, FilterState{Start: &start, End: &widened, Warehouse: FilterAll, Vehicle: FilterAll})
	assert.Equal(t, []string{"late"}, ids(got))
}

func TestIsEmpty(t *testing.T) {
	assert.True(t, EmptyFilter().IsEmpty())
	assert.True(t, FilterState{}.IsEmpty())

	start := ts("2026-08-01")
	assert.False(t, FilterState{Start: &start}.IsEmpty())
	assert.False(t, FilterState{Query: "x"}.IsEmpty())
	assert.False(t, FilterState{Warehouse: "NAG"}.IsEmpty())
}
