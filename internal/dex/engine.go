package dex

import (
	"slices"
	"strings"
)

// applyQuery filters, sorts and slices the full index according to q,
// returning the result window plus pagination metadata.
func applyQuery(entries []IndexEntry, q Query) ([]IndexEntry, Pagination) {
	filtered := filterEntries(entries, q.Search)
	sortEntries(filtered, q.SortBy, q.Order)
	return paginate(filtered, q.Limit, q.Offset)
}

// filterEntries keeps entries whose lowercased name contains any search
// term as a substring (logical OR). An empty term list keeps everything.
func filterEntries(entries []IndexEntry, terms []string) []IndexEntry {
	if len(terms) == 0 {
		return slices.Clone(entries)
	}

	filtered := make([]IndexEntry, 0, len(entries))
	for _, e := range entries {
		name := strings.ToLower(e.Name)
		for _, term := range terms {
			if strings.Contains(name, term) {
				filtered = append(filtered, e)
				break
			}
		}
	}
	return filtered
}

// sortEntries sorts in place. The sort is stable; descending negates the
// ascending comparator.
func sortEntries(entries []IndexEntry, by SortField, order SortOrder) {
	cmp := func(a, b IndexEntry) int { return a.Number - b.Number }
	if by == SortByName {
		cmp = func(a, b IndexEntry) int { return strings.Compare(a.Name, b.Name) }
	}

	if order == OrderDesc {
		asc := cmp
		cmp = func(a, b IndexEntry) int { return -asc(a, b) }
	}

	slices.SortStableFunc(entries, cmp)
}

// paginate slices entries[offset : offset+limit], empty when offset runs
// past the end.
func paginate(entries []IndexEntry, limit, offset int) ([]IndexEntry, Pagination) {
	total := len(entries)
	pg := Pagination{
		Total:   total,
		Limit:   limit,
		Offset:  offset,
		HasNext: offset+limit < total,
		HasPrev: offset > 0,
	}

	if offset >= total {
		return nil, pg
	}

	end := offset + limit
	if end > total {
		end = total
	}
	return entries[offset:end], pg
}

// windowNumbers slices a caller-supplied number sequence. Unlike the
// general sort path, the result order mirrors the order the numbers were
// requested in, not ascending numeric order.
func windowNumbers(numbers []int, limit, offset int) ([]int, Pagination) {
	total := len(numbers)
	pg := Pagination{
		Total:   total,
		Limit:   limit,
		Offset:  offset,
		HasNext: offset+limit < total,
		HasPrev: offset > 0,
	}

	if offset >= total {
		return nil, pg
	}

	end := offset + limit
	if end > total {
		end = total
	}
	return numbers[offset:end], pg
}
