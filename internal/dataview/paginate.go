package dataview

// PageState is the 1-based page cursor of one dashboard view.
// Whoever owns the FilterState must reset the cursor to page 1 when
// the filtered collection changes, so the view is never stranded on an
// empty trailing page; the paginator itself only clamps.
type PageState struct {
	Index int
	Size  int
}

// NewPageState starts a cursor at page 1 with the given page size.
func NewPageState(size int) PageState {
	if size < 1 {
		size = 1
	}
	return PageState{Index: 1, Size: size}
}

// TotalPages returns the number of pages for n records at the given
// page size. An empty collection still reports one page so the view
// has something to display.
func TotalPages(n, size int) int {
	if size < 1 || n <= 0 {
		return 1
	}
	return (n + size - 1) / size
}

// Paginate slices out the 1-based page at the given size, clipped to
// the bounds of records. A page index past the end yields the last
// valid page's content rather than an error.
func Paginate[T any](records []T, pageIndex, pageSize int) []T {
	if pageSize < 1 {
		pageSize = 1
	}
	total := TotalPages(len(records), pageSize)
	if pageIndex < 1 {
		pageIndex = 1
	}
	if pageIndex > total {
		pageIndex = total
	}
	lo := (pageIndex - 1) * pageSize
	if lo >= len(records) {
		return []T{}
	}
	hi := lo + pageSize
	if hi > len(records) {
		hi = len(records)
	}
	return records[lo:hi]
}

// Next advances the cursor, clamped to the last page of an n-record
// collection. Past the boundary it is a no-op.
func (p *PageState) Next(n int) {
	if p.Index < TotalPages(n, p.Size) {
		p.Index++
	}
}

// Previous moves the cursor back, clamped to page 1.
func (p *PageState) Previous() {
	if p.Index > 1 {
		p.Index--
	}
}

// Reset returns the cursor to page 1.
func (p *PageState) Reset() {
	p.Index = 1
}
