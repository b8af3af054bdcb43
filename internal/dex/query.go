package dex

import (
	"net/url"
	"strconv"
	"strings"
)

type SortField string

const (
	SortByNumber SortField = "number"
	SortByName   SortField = "name"
)

type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Query is a normalized listing query. Constructed fresh per request.
type Query struct {
	Limit  int
	Offset int
	// Search terms, lowercased and trimmed; entries match when their name
	// contains any term as a substring.
	Search []string
	SortBy SortField
	Order  SortOrder
}

// ParseQuery coerces untrusted query parameters into a valid Query. It
// never fails: unparsable or out-of-range input falls back to defaults.
// Limit is clamped to [1, 100] (non-positive falls back to the default),
// offset to >= 0.
func ParseQuery(values url.Values) Query {
	q := Query{
		Limit:  DefaultLimit,
		SortBy: SortByNumber,
		Order:  OrderAsc,
	}

	if v, err := strconv.Atoi(values.Get("limit")); err == nil && v > 0 {
		q.Limit = v
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}

	if v, err := strconv.Atoi(values.Get("offset")); err == nil && v > 0 {
		q.Offset = v
	}

	q.Search = ParseSearchTerms(values.Get("search"))

	if values.Get("sort") == string(SortByName) {
		q.SortBy = SortByName
	}
	if values.Get("order") == string(OrderDesc) {
		q.Order = OrderDesc
	}

	return q
}

// ParseSearchTerms splits a comma-separated search string into lowercase
// terms, dropping empty segments.
func ParseSearchTerms(raw string) []string {
	if raw == "" {
		return nil
	}

	var terms []string
	for _, seg := range strings.Split(raw, ",") {
		seg = strings.ToLower(strings.TrimSpace(seg))
		if seg != "" {
			terms = append(terms, seg)
		}
	}
	return terms
}
