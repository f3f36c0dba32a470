package ports

import (
	"context"

	"github.com/sportsfed/federation-api/internal/core/domain"
)

// LoginChallenge is the outcome of a successful first login phase.
//
// Either a verification code was issued (CodeID + MaskedEmail set) or the
// caller is a club manager still on a temporary password and must set a
// permanent one first (RequiresPasswordReset + AccountID set).
type LoginChallenge struct {
	CodeID                string
	MaskedEmail           string
	RequiresPasswordReset bool
	AccountID             string
}

// LoginResult is the outcome of a completed login: a signed bearer token and
// the public account summary.
type LoginResult struct {
	Token   string
	Account domain.Summary
}

// AuthService drives the two-phase login protocol.
type AuthService interface {
	// InitiateLogin checks credentials and, when they hold, issues and emails
	// a one-time verification code.
	InitiateLogin(ctx context.Context, email, password string) (*LoginChallenge, error)
	// CompleteLogin verifies the emailed code and issues the session token.
	CompleteLogin(ctx context.Context, codeID, code string) (*LoginResult, error)
	// SetPassword completes the forced first-password-set of a club manager
	// holding a temporary password.
	SetPassword(ctx context.Context, accountID, temporaryPassword, newPassword string) error
}
