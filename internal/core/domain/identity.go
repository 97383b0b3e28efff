package domain

import "fmt"

// Role selects which half of the backend API an identity belongs to.
type Role string

const (
	RoleLearner Role = "learner"
	RoleTutor   Role = "tutor"
)

// ParseRole validates a role string coming from the outside world.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleLearner, RoleTutor:
		return Role(s), nil
	}
	return "", fmt.Errorf("%w: unknown role %q", ErrInvalidRole, s)
}

// Identity models the authenticated user. Role-specific profile fields are
// carried along but never interpreted by the directory.
type Identity struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
	Avatar string `json:"avatar,omitempty"`

	// tutor profile
	Bio        string   `json:"bio,omitempty"`
	Expertise  []string `json:"expertise,omitempty"`
	HourlyRate *float64 `json:"hourlyRate,omitempty"`

	// learner profile
	Major      string `json:"major,omitempty"`
	University string `json:"university,omitempty"`
}

// Projection is the minimal record persisted across restarts. It must never
// hold credentials; session continuity is the backend cookie's job.
type Projection struct {
	ID   string `json:"id"`
	Role Role   `json:"role"`
	Name string `json:"name"`
}

// Project reduces the identity to its persisted projection.
func (i Identity) Project() Projection {
	return Projection{ID: i.ID, Role: i.Role, Name: i.Name}
}

// Clone returns a deep copy.
func (i Identity) Clone() Identity {
	out := i
	if i.Expertise != nil {
		out.Expertise = append([]string(nil), i.Expertise...)
	}
	if i.HourlyRate != nil {
		rate := *i.HourlyRate
		out.HourlyRate = &rate
	}
	return out
}

// ProfilePatch carries a partial identity update; nil fields are untouched.
type ProfilePatch struct {
	Name       *string   `json:"name,omitempty"`
	Email      *string   `json:"email,omitempty"`
	Avatar     *string   `json:"avatar,omitempty"`
	Bio        *string   `json:"bio,omitempty"`
	Expertise  *[]string `json:"expertise,omitempty"`
	HourlyRate *float64  `json:"hourlyRate,omitempty"`
	Major      *string   `json:"major,omitempty"`
	University *string   `json:"university,omitempty"`
}

// Apply merges the patch into id in place.
func (p ProfilePatch) Apply(id *Identity) {
	if p.Name != nil {
		id.Name = *p.Name
	}
	if p.Email != nil {
		id.Email = *p.Email
	}
	if p.Avatar != nil {
		id.Avatar = *p.Avatar
	}
	if p.Bio != nil {
		id.Bio = *p.Bio
	}
	if p.Expertise != nil {
		id.Expertise = append([]string(nil), (*p.Expertise)...)
	}
	if p.HourlyRate != nil {
		rate := *p.HourlyRate
		id.HourlyRate = &rate
	}
	if p.Major != nil {
		id.Major = *p.Major
	}
	if p.University != nil {
		id.University = *p.University
	}
}

// PatchFrom builds a patch that overwrites every field of the authoritative
// identity returned by the backend after a profile update.
func PatchFrom(id Identity) ProfilePatch {
	c := id.Clone()
	return ProfilePatch{
		Name:       &c.Name,
		Email:      &c.Email,
		Avatar:     &c.Avatar,
		Bio:        &c.Bio,
		Expertise:  &c.Expertise,
		HourlyRate: c.HourlyRate,
		Major:      &c.Major,
		University: &c.University,
	}
}

// Credentials are the login inputs.
type Credentials struct {
	Email    string
	Password string
}

// Registration carries the fields needed to create an account.
type Registration struct {
	Name       string
	Email      string
	Password   string
	Bio        string
	Expertise  []string
	HourlyRate *float64
	Major      string
	University string
}
