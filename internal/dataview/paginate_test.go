package dataview

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotalPages(t *testing.T) {
	tests := []struct {
		n, size, want int
	}{
		{0, 10, 1},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{25, 10, 3},
		{5, 0, 1},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, TotalPages(tt.n, tt.size), "n=%d size=%d", tt.n, tt.size)
	}
}

func TestPaginateConcatenationReconstructsInput(t *testing.T) {
	records := make([]int, 23)
	for i := range records {
		records[i] = i
	}

	var rebuilt []int
	for page := 1; page <= TotalPages(len(records), 5); page++ {
		rebuilt = append(rebuilt, Paginate(records, page, 5)...)
	}

	assert.Equal(t, records, rebuilt)
}

func TestPaginateClampsOutOfRangeIndex(t *testing.T) {
	records := []int{1, 2, 3, 4, 5}

	assert.Equal(t, []int{5}, Paginate(records, 99, 2), "past the end yields the last page")
	assert.Equal(t, []int{1, 2}, Paginate(records, 0, 2), "below 1 yields the first page")
	assert.Equal(t, []int{1, 2}, Paginate(records, -3, 2))
}

func TestPaginateEmptyCollection(t *testing.T) {
	assert.Empty(t, Paginate([]int{}, 1, 10))
	assert.Empty(t, Paginate([]int{}, 7, 10))
}

func TestPageStateNavigationClamps(t *testing.T) {
	p := NewPageState(10)
	assert.Equal(t, 1, p.Index)

	// 25 records, 3 pages
	p.Previous()
	assert.Equal(t, 1, p.Index, "previous on page 1 is a no-op")

	p.Next(25)
	p.Next(25)
	assert.Equal(t, 3, p.Index)
	p.Next(25)
	assert.Equal(t, 3, p.Index, "next on the last page is a no-op")

	p.Reset()
	assert.Equal(t, 1, p.Index)
}

func TestNewPageStateRejectsBadSize(t *testing.T) {
	p := NewPageState(0)
	assert.Equal(t, 1, p.Size)
}
