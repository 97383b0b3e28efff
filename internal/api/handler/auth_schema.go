package handler

import (
	"github.com/studyhub/tutoring-gateway/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error  string            `json:"error"`
	Code   string            `json:"code,omitempty"`
	Fields map[string]string `json:"fields,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
	// Role is optional: without it the learner login is tried first, then the tutor one.
	Role string `json:"role" validate:"omitempty,oneof=learner tutor"`
}

type registerRequest struct {
	Role       string   `json:"role"       validate:"required,oneof=learner tutor"`
	Name       string   `json:"name"       validate:"required,max=100"`
	Email      string   `json:"email"      validate:"required,email"`
	Password   string   `json:"password"   validate:"required,min=6"`
	Bio        string   `json:"bio"        validate:"max=2000"`
	Expertise  []string `json:"expertise"`
	HourlyRate *float64 `json:"hourlyRate" validate:"omitempty,gte=0"`
	Major      string   `json:"major"`
	University string   `json:"university"`
}

type profileRequest struct {
	Name       *string   `json:"name"       validate:"omitempty,min=1,max=100"`
	Email      *string   `json:"email"      validate:"omitempty,email"`
	Avatar     *string   `json:"avatar"`
	Bio        *string   `json:"bio"        validate:"omitempty,max=2000"`
	Expertise  *[]string `json:"expertise"`
	HourlyRate *float64  `json:"hourlyRate" validate:"omitempty,gte=0"`
	Major      *string   `json:"major"`
	University *string   `json:"university"`
}

// authStateResponse reports where the auth store is in its lifecycle.
type authStateResponse struct {
	State domain.AuthState `json:"state"`
	User  *domain.Identity `json:"user,omitempty"`
}
