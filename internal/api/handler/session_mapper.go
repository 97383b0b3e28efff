package handler

import (
	"github.com/studyhub/tutoring-gateway/internal/core/directory"
	"github.com/studyhub/tutoring-gateway/internal/core/ports"
)

// --- Request → directory query ---

func toDirectoryQuery(q listSessionsQuery) (directory.Query, error) {
	sortBy, err := directory.ParseSortOrder(q.Sort)
	if err != nil {
		return directory.Query{}, err
	}
	out := directory.DefaultQuery()
	out.Search = q.Search
	if q.Subject != "" {
		out.Subject = q.Subject
	}
	if q.Level != "" {
		out.Level = q.Level
	}
	out.SortBy = sortBy
	if q.Page > 0 {
		out.Page = q.Page
	}
	return out, nil
}

// --- Directory view → response ---

func toListSessionsResponse(view *ports.DirectoryView, q directory.Query) listSessionsResponse {
	items := make([]sessionResponse, len(view.Items))
	for i, it := range view.Items {
		items[i] = sessionResponse{
			Session:           it.Session,
			Duration:          it.Session.EffectiveDuration(),
			Availability:      it.Availability,
			AvailabilityLabel: it.Availability.Label(),
			Enrolled:          it.Enrolled,
			Joining:           it.Joining,
			CanJoin:           it.Availability.Joinable() && !it.Enrolled && !it.Joining,
		}
	}

	subjectCounts := view.SubjectCounts
	if subjectCounts == nil {
		subjectCounts = []directory.SubjectCount{}
	}
	return listSessionsResponse{
		Items:      items,
		Total:      view.Total,
		Page:       view.Page,
		PerPage:    view.PerPage,
		TotalPages: view.TotalPages,
		Query: appliedQuery{
			Search:  q.Search,
			Subject: q.Subject,
			Level:   q.Level,
			Sort:    string(q.SortBy),
		},
		Subjects:           nonNil(view.Subjects),
		Levels:             nonNil(view.Levels),
		SubjectCounts:      subjectCounts,
		EnrollmentDegraded: view.EnrollmentDegraded,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
