package domain

import "time"

// DefaultDuration is used when the backend omits a session's duration.
const DefaultDuration = 60

// TutorSummary is the tutor data embedded in every session record.
type TutorSummary struct {
	Name        string   `json:"name"`
	Avatar      string   `json:"avatar,omitempty"`
	Rating      *float64 `json:"rating,omitempty"`
	ReviewCount *int     `json:"reviewCount,omitempty"`
	HourlyRate  *float64 `json:"hourlyRate,omitempty"`
}

// Session is a scheduled tutoring event as returned by the backend.
// Timestamps are pointers because the backend may omit them; the directory
// engine treats a missing timestamp as the Unix epoch.
type Session struct {
	ID              string       `json:"id"`
	Title           string       `json:"title"`
	Description     string       `json:"description"`
	Subject         string       `json:"subject"`
	Level           string       `json:"level"`
	StartTime       *time.Time   `json:"startTime,omitempty"`
	Duration        int          `json:"duration,omitempty"`
	MaxParticipants int          `json:"maxParticipants"`
	StudentIDs      []string     `json:"studentIds"`
	Tutor           TutorSummary `json:"tutor"`
	CreatedAt       *time.Time   `json:"createdAt,omitempty"`
	MeetingLink     string       `json:"meetingLink,omitempty"`
}

// EffectiveDuration returns the duration in minutes, defaulting to 60.
func (s Session) EffectiveDuration() int {
	if s.Duration <= 0 {
		return DefaultDuration
	}
	return s.Duration
}

// EnrolledCount is the current number of participants.
func (s Session) EnrolledCount() int {
	return len(s.StudentIDs)
}

// HasStudent reports whether id is already listed as a participant.
func (s Session) HasStudent(id string) bool {
	for _, sid := range s.StudentIDs {
		if sid == id {
			return true
		}
	}
	return false
}

// Clone returns a copy that shares no slices with s.
func (s Session) Clone() Session {
	out := s
	if s.StudentIDs != nil {
		out.StudentIDs = append(make([]string, 0, len(s.StudentIDs)), s.StudentIDs...)
	}
	return out
}
