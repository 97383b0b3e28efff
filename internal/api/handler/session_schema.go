package handler

import (
	"github.com/studyhub/tutoring-gateway/internal/core/directory"
	"github.com/studyhub/tutoring-gateway/internal/core/domain"
)

// --- Request / Response types ---

type listSessionsQuery struct {
	Search  string `query:"search"  validate:"max=200"`
	Subject string `query:"subject"`
	Level   string `query:"level"`
	Sort    string `query:"sort"`
	Page    int    `query:"page"    validate:"gte=0,lte=100000"`
}

// sessionResponse is a session annotated for display. Duration is always
// populated, falling back to the default length.
type sessionResponse struct {
	domain.Session
	Duration          int                    `json:"duration"`
	Availability      directory.Availability `json:"availability"`
	AvailabilityLabel string                 `json:"availabilityLabel"`
	Enrolled          bool                   `json:"enrolled"`
	Joining           bool                   `json:"joining"`
	CanJoin           bool                   `json:"canJoin"`
}

type appliedQuery struct {
	Search  string `json:"search"`
	Subject string `json:"subject"`
	Level   string `json:"level"`
	Sort    string `json:"sort"`
}

type listSessionsResponse struct {
	Items              []sessionResponse        `json:"items"`
	Total              int                      `json:"total"`
	Page               int                      `json:"page"`
	PerPage            int                      `json:"perPage"`
	TotalPages         int                      `json:"totalPages"`
	Query              appliedQuery             `json:"query"`
	Subjects           []string                 `json:"subjects"`
	Levels             []string                 `json:"levels"`
	SubjectCounts      []directory.SubjectCount `json:"subjectCounts"`
	EnrollmentDegraded bool                     `json:"enrollmentDegraded"`
}

type joinResponse struct {
	SessionID string `json:"sessionId"`
	Enrolled  bool   `json:"enrolled"`
}
