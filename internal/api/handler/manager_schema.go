package handler

import "github.com/sportsfed/federation-api/internal/core/domain"

type provisionManagerRequest struct {
	Email  string `json:"email"   validate:"required,email"`
	Name   string `json:"name"    validate:"required"`
	ClubID string `json:"club_id" validate:"required"`
}

type provisionManagerResponse struct {
	Account  domain.Summary `json:"account"`
	ClubName string         `json:"club_name"`
	// Returned to the administrator so credentials can be handed over
	// out-of-band when the email bounces.
	TemporaryPassword string `json:"temporary_password"`
}

type regenerateResponse struct {
	TemporaryPassword string `json:"temporary_password"`
}

type managerResponse struct {
	Account domain.Summary `json:"account"`
}
