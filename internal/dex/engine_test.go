package dex

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testIndex() []IndexEntry {
	return []IndexEntry{
		{Name: "bulbasaur", Number: 1},
		{Name: "ivysaur", Number: 2},
		{Name: "venusaur", Number: 3},
		{Name: "charmander", Number: 4},
		{Name: "charmeleon", Number: 5},
		{Name: "charizard", Number: 6},
		{Name: "squirtle", Number: 7},
	}
}

func TestApplyQueryFilter(t *testing.T) {
	q := Query{Limit: 20, Search: []string{"char"}, SortBy: SortByNumber, Order: OrderAsc}

	window, pg := applyQuery(testIndex(), q)

	require.Len(t, window, 3)
	assert.Equal(t, "charmander", window[0].Name)
	assert.Equal(t, "charmeleon", window[1].Name)
	assert.Equal(t, "charizard", window[2].Name)
	assert.Equal(t, 3, pg.Total)
	assert.False(t, pg.HasNext)
	assert.False(t, pg.HasPrev)
}

func TestApplyQueryFilterOrAcrossTerms(t *testing.T) {
	q := Query{Limit: 20, Search: []string{"saur", "squirt"}, SortBy: SortByNumber, Order: OrderAsc}

	window, pg := applyQuery(testIndex(), q)

	require.Equal(t, 4, pg.Total)
	names := make([]string, 0, len(window))
	for _, e := range window {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"bulbasaur", "ivysaur", "venusaur", "squirtle"}, names)
}

func TestApplyQuerySingleMatch(t *testing.T) {
	entries := []IndexEntry{
		{Name: "bulbasaur", Number: 1},
		{Name: "ivysaur", Number: 2},
		{Name: "charmander", Number: 4},
	}
	q := Query{Limit: 20, Search: []string{"char"}, SortBy: SortByNumber, Order: OrderAsc}

	window, pg := applyQuery(entries, q)

	require.Len(t, window, 1)
	assert.Equal(t, "charmander", window[0].Name)
	assert.Equal(t, 1, pg.Total)
}

func TestApplyQuerySortByName(t *testing.T) {
	q := Query{Limit: 20, SortBy: SortByName, Order: OrderAsc}

	window, _ := applyQuery(testIndex(), q)

	require.Len(t, window, 7)
	assert.Equal(t, "bulbasaur", window[0].Name)
	assert.Equal(t, "charizard", window[1].Name)
	assert.Equal(t, "venusaur", window[6].Name)
}

func TestApplyQueryDescendingReverses(t *testing.T) {
	asc, _ := applyQuery(testIndex(), Query{Limit: 100, SortBy: SortByNumber, Order: OrderAsc})
	desc, _ := applyQuery(testIndex(), Query{Limit: 100, SortBy: SortByNumber, Order: OrderDesc})

	slices.Reverse(desc)
	assert.Equal(t, asc, desc)
}

func TestApplyQueryDoesNotMutateInput(t *testing.T) {
	entries := testIndex()
	_, _ = applyQuery(entries, Query{Limit: 100, SortBy: SortByName, Order: OrderDesc})

	assert.Equal(t, testIndex(), entries)
}

func TestPaginateWindows(t *testing.T) {
	entries := testIndex()

	tests := []struct {
		name    string
		limit   int
		offset  int
		wantLen int
		hasNext bool
		hasPrev bool
	}{
		{"first page", 3, 0, 3, true, false},
		{"middle page", 3, 3, 3, true, true},
		{"last partial page", 3, 6, 1, false, true},
		{"offset past end", 3, 10, 0, false, true},
		{"offset at end", 3, 7, 0, false, true},
		{"whole set", 100, 0, 7, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			window, pg := paginate(entries, tt.limit, tt.offset)
			assert.Len(t, window, tt.wantLen)
			assert.Equal(t, len(entries), pg.Total)
			assert.Equal(t, tt.hasNext, pg.HasNext)
			assert.Equal(t, tt.hasPrev, pg.HasPrev)

			// len(results) == min(limit, total-offset) when offset < total, else 0
			want := 0
			if tt.offset < pg.Total {
				want = min(tt.limit, pg.Total-tt.offset)
			}
			assert.Equal(t, want, len(window))
		})
	}
}

func TestWindowNumbersPreservesRequestOrder(t *testing.T) {
	window, pg := windowNumbers([]int{25, 1}, 20, 0)

	assert.Equal(t, []int{25, 1}, window)
	assert.Equal(t, 2, pg.Total)
}

func TestWindowNumbersPagination(t *testing.T) {
	numbers := []int{9, 3, 7, 1}

	window, pg := windowNumbers(numbers, 2, 1)
	assert.Equal(t, []int{3, 7}, window)
	assert.True(t, pg.HasNext)
	assert.True(t, pg.HasPrev)

	window, pg = windowNumbers(numbers, 2, 10)
	assert.Empty(t, window)
	assert.False(t, pg.HasNext)
}
