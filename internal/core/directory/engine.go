package directory

import (
	"sort"
	"strings"
	"time"

	"github.com/studyhub/tutoring-gateway/internal/core/domain"
)

// Page is one window of the filtered and sorted directory.
type Page struct {
	Items      []domain.Session
	Total      int
	Page       int
	PerPage    int
	TotalPages int
}

// Apply runs filter → sort → paginate.
func Apply(sessions []domain.Session, q Query) Page {
	filtered := Filter(sessions, q.Search, q.Subject, q.Level)
	return Paginate(Sort(filtered, q.SortBy), q.Page, q.PerPage)
}

// Filter keeps sessions matching the search term (case-insensitive substring
// of title, subject, description or tutor name) and the exact subject and
// level filters. "all" or "" disables a filter.
func Filter(sessions []domain.Session, search, subject, level string) []domain.Session {
	term := strings.ToLower(search)
	subject = normalizeFilter(subject)
	level = normalizeFilter(level)

	out := make([]domain.Session, 0, len(sessions))
	for _, s := range sessions {
		if term != "" && !matches(s, term) {
			continue
		}
		if subject != All && s.Subject != subject {
			continue
		}
		if level != All && s.Level != level {
			continue
		}
		out = append(out, s)
	}
	return out
}

func matches(s domain.Session, term string) bool {
	for _, field := range [...]string{s.Title, s.Subject, s.Description, s.Tutor.Name} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

// Sort returns a stably ordered copy; ties keep input order.
func Sort(sessions []domain.Session, order SortOrder) []domain.Session {
	out := append([]domain.Session(nil), sessions...)

	var less func(a, b domain.Session) bool
	switch order {
	case SortPopular:
		less = func(a, b domain.Session) bool { return a.EnrolledCount() > b.EnrolledCount() }
	case SortNewest:
		less = func(a, b domain.Session) bool { return unixOrZero(a.CreatedAt) > unixOrZero(b.CreatedAt) }
	default:
		less = func(a, b domain.Session) bool { return unixOrZero(a.StartTime) < unixOrZero(b.StartTime) }
	}

	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

// unixOrZero treats a missing timestamp as the epoch.
func unixOrZero(t *time.Time) int64 {
	if t == nil {
		return 0
	}
	return t.UnixMilli()
}

// Paginate slices the window [(page-1)*perPage, page*perPage). TotalPages is
// never below 1 so an empty result still renders as a single empty page.
func Paginate(sessions []domain.Session, page, perPage int) Page {
	if perPage <= 0 {
		perPage = ItemsPerPage
	}
	if page < 1 {
		page = 1
	}

	total := len(sessions)
	totalPages := (total + perPage - 1) / perPage
	if totalPages < 1 {
		totalPages = 1
	}

	items := []domain.Session{}
	if page <= (total+perPage-1)/perPage {
		start := (page - 1) * perPage
		end := start + perPage
		if end > total {
			end = total
		}
		items = append(items, sessions[start:end]...)
	}

	return Page{
		Items:      items,
		Total:      total,
		Page:       page,
		PerPage:    perPage,
		TotalPages: totalPages,
	}
}
