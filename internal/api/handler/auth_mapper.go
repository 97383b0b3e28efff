package handler

import (
	"github.com/studyhub/tutoring-gateway/internal/core/domain"
)

// --- Request → Service input ---

func toCredentials(req loginRequest) (domain.Credentials, *domain.Role) {
	creds := domain.Credentials{Email: req.Email, Password: req.Password}
	if req.Role == "" {
		return creds, nil
	}
	role := domain.Role(req.Role)
	return creds, &role
}

func toRegistration(req registerRequest) domain.Registration {
	return domain.Registration{
		Name:       req.Name,
		Email:      req.Email,
		Password:   req.Password,
		Bio:        req.Bio,
		Expertise:  req.Expertise,
		HourlyRate: req.HourlyRate,
		Major:      req.Major,
		University: req.University,
	}
}

func toProfilePatch(req profileRequest) domain.ProfilePatch {
	return domain.ProfilePatch{
		Name:       req.Name,
		Email:      req.Email,
		Avatar:     req.Avatar,
		Bio:        req.Bio,
		Expertise:  req.Expertise,
		HourlyRate: req.HourlyRate,
		Major:      req.Major,
		University: req.University,
	}
}

func domainRole(s string) domain.Role {
	return domain.Role(s)
}
