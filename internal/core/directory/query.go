// Package directory turns a raw session list into the page a learner sees:
// search, subject and level filters, ordering, pagination, and per-session
// availability. Everything here is pure and safe to re-run on every keystroke.
package directory

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// ItemsPerPage is the fixed page size of the session directory.
	ItemsPerPage = 6
	// All disables a subject or level filter.
	All = "all"
)

// SortOrder selects the comparator applied after filtering.
type SortOrder string

const (
	SortUpcoming SortOrder = "upcoming"
	SortPopular  SortOrder = "popular"
	SortNewest   SortOrder = "newest"
)

var ErrUnknownSort = errors.New("unknown sort order")

// ParseSortOrder maps a query-string value to a SortOrder. Empty selects
// upcoming. Price orderings are not offered: sessions carry no price field.
func ParseSortOrder(s string) (SortOrder, error) {
	switch SortOrder(strings.ToLower(strings.TrimSpace(s))) {
	case "", SortUpcoming:
		return SortUpcoming, nil
	case SortPopular:
		return SortPopular, nil
	case SortNewest:
		return SortNewest, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSort, s)
}

// Query holds the user-controlled directory parameters.
type Query struct {
	Search  string
	Subject string
	Level   string
	SortBy  SortOrder
	Page    int
	PerPage int
}

// DefaultQuery is the state of a freshly opened directory.
func DefaultQuery() Query {
	return Query{Subject: All, Level: All, SortBy: SortUpcoming, Page: 1, PerPage: ItemsPerPage}
}

// Changed reports whether any filter, search or sort key differs from prev.
// Page and PerPage are ignored.
func (q Query) Changed(prev Query) bool {
	return q.Search != prev.Search ||
		normalizeFilter(q.Subject) != normalizeFilter(prev.Subject) ||
		normalizeFilter(q.Level) != normalizeFilter(prev.Level) ||
		q.SortBy != prev.SortBy
}

// Next returns q with the page reset to 1 whenever a filter key changed
// relative to prev, so a narrowed result set never lands on an empty page.
func (q Query) Next(prev Query) Query {
	if q.Changed(prev) {
		q.Page = 1
	}
	return q
}

func normalizeFilter(v string) string {
	if v == "" {
		return All
	}
	return v
}
