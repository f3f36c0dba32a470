package handler

import "github.com/sportsfed/federation-api/internal/core/domain"

type initiateLoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// initiateLoginResponse covers both phase-1 outcomes: a code challenge
// (code_id + masked_email) or a forced password reset.
type initiateLoginResponse struct {
	CodeID                string `json:"code_id,omitempty"`
	MaskedEmail           string `json:"masked_email,omitempty"`
	RequiresPasswordReset bool   `json:"requires_password_reset,omitempty"`
	AccountID             string `json:"account_id,omitempty"`
}

type completeLoginRequest struct {
	CodeID string `json:"code_id" validate:"required"`
	Code   string `json:"code"    validate:"required,len=6,numeric"`
}

type completeLoginResponse struct {
	Token   string         `json:"token"`
	Account domain.Summary `json:"account"`
}

type setPasswordRequest struct {
	AccountID         string `json:"account_id"         validate:"required"`
	TemporaryPassword string `json:"temporary_password" validate:"required"`
	NewPassword       string `json:"new_password"       validate:"required,min=8"`
}

type messageResponse struct {
	Message string `json:"message"`
}
