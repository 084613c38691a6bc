package dataview

import (
	"github.com/google/uuid"

	"shipdash-backend/internal/models"
)

// View is the shared filter/paginate core behind every shipment table
// in the dashboard. It owns one immutable snapshot fetched from the
// upstream API together with the FilterState and PageState for that
// snapshot. A View belongs to a single goroutine; input events are
// serialized by the caller.
type View struct {
	snapshot []models.Shipment
	filtered []models.Shipment

	filter FilterState
	page   PageState

	// fetchToken identifies the most recent fetch issued for this
	// view. Completions carrying an older token are discarded, so a
	// rapid refilter can never apply an out-of-order response.
	fetchToken string
}

// NewView creates an empty view with the given page size.
func NewView(pageSize int) *View {
	return &View{
		filter: EmptyFilter(),
		page:   NewPageState(pageSize),
	}
}

// BeginFetch marks the start of a snapshot fetch and returns the token
// the completion must present to ApplySnapshot.
func (v *View) BeginFetch() string {
	v.fetchToken = uuid.NewString()
	return v.fetchToken
}

// ApplySnapshot installs a fetched record collection. The snapshot is
// rejected when token no longer matches the latest BeginFetch, which
// is how superseded fetches are dropped. Installing a snapshot resets
// the page cursor.
func (v *View) ApplySnapshot(records []models.Shipment, token string) bool {
	if token != v.fetchToken {
		return false
	}
	v.snapshot = records
	v.refilter()
	return true
}

// SetFilter replaces the filter state, recomputes the filtered
// collection and resets the page cursor to 1.
func (v *View) SetFilter(f FilterState) {
	v.filter = f
	v.refilter()
}

// ResetFilter clears every predicate.
func (v *View) ResetFilter() {
	v.SetFilter(EmptyFilter())
}

// Filter returns the current filter state.
func (v *View) Filter() FilterState {
	return v.filter
}

// Filtered returns the full filtered, unpaginated collection. This is
// what the exporter consumes.
func (v *View) Filtered() []models.Shipment {
	return v.filtered
}

// Rows returns the records of the current page.
func (v *View) Rows() []models.Shipment {
	return Paginate(v.filtered, v.page.Index, v.page.Size)
}

// PageIndex returns the current 1-based page index.
func (v *View) PageIndex() int {
	return v.page.Index
}

// TotalPages returns the page count of the filtered collection.
func (v *View) TotalPages() int {
	return TotalPages(len(v.filtered), v.page.Size)
}

// SetPage moves the cursor to the given page, clamped to valid range.
func (v *View) SetPage(index int) {
	total := v.TotalPages()
	if index < 1 {
		index = 1
	}
	if index > total {
		index = total
	}
	v.page.Index = index
}

// NextPage advances one page, clamped at the last page.
func (v *View) NextPage() {
	v.page.Next(len(v.filtered))
}

// PreviousPage moves back one page, clamped at page 1.
func (v *View) PreviousPage() {
	v.page.Previous()
}

func (v *View) refilter() {
	v.filtered = Filter(v.snapshot, v.filter)
	v.page.Reset()
}
