package directory

import (
	"fmt"

	"github.com/studyhub/tutoring-gateway/internal/core/domain"
)

// Tier classifies how close a session is to capacity.
type Tier string

const (
	TierFull   Tier = "full"
	TierUrgent Tier = "urgent"
	TierOpen   Tier = "open"
)

// urgentThreshold is the largest spots-left value still flagged as urgent.
const urgentThreshold = 2

// Availability is computed once per session; display text and enrollment
// gating both derive from it.
type Availability struct {
	SpotsLeft int  `json:"spotsLeft"`
	Tier      Tier `json:"tier"`
}

// AvailabilityOf derives availability from capacity and enrollment. An
// over-capacity session reports zero spots, never a negative count.
func AvailabilityOf(s domain.Session) Availability {
	left := s.MaxParticipants - s.EnrolledCount()
	switch {
	case left <= 0:
		return Availability{SpotsLeft: 0, Tier: TierFull}
	case left <= urgentThreshold:
		return Availability{SpotsLeft: left, Tier: TierUrgent}
	default:
		return Availability{SpotsLeft: left, Tier: TierOpen}
	}
}

// Joinable reports whether the enroll action should be offered.
func (a Availability) Joinable() bool {
	return a.Tier != TierFull
}

// Label renders the availability badge text.
func (a Availability) Label() string {
	switch a.Tier {
	case TierFull:
		return "Full"
	case TierUrgent:
		if a.SpotsLeft == 1 {
			return "1 spot left!"
		}
		return fmt.Sprintf("%d spots left!", a.SpotsLeft)
	default:
		return fmt.Sprintf("%d spots available", a.SpotsLeft)
	}
}
