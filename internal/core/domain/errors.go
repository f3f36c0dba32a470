package domain

import (
	"errors"
	"fmt"
)

// Credential-phase failures. The HTTP layer deliberately collapses the first
// three into one "invalid credentials" message to resist account enumeration;
// the distinct sentinels exist for logging and metrics.
var (
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrAccountDeactivated  = errors.New("account deactivated")
	ErrAccountNotActivated = errors.New("account not activated")
)

// Code-verification failures. These carry detail to the client: at this stage
// the caller already holds a code id from a successful password check, so
// finer-grained messaging is low risk.
var (
	ErrCodeExpired     = errors.New("verification code expired")
	ErrTooManyAttempts = errors.New("too many verification attempts")
	ErrInvalidSession  = errors.New("invalid or expired session")
)

// Lifecycle and collaborator failures.
var (
	ErrEmailDeliveryFailed      = errors.New("email delivery failed")
	ErrInvalidTemporaryPassword = errors.New("invalid temporary password")
	ErrWeakPassword             = errors.New("password must be at least 8 characters")
	ErrClubNotFound             = errors.New("club not found")
	ErrClubHasManager           = errors.New("club already has a manager")
	ErrAccountNotFound          = errors.New("account not found")
	ErrAccountExists            = errors.New("account already exists")
)

// CodeIncorrectError reports a wrong verification code together with the
// number of attempts left before the code is destroyed.
type CodeIncorrectError struct {
	Remaining int
}

func (e *CodeIncorrectError) Error() string {
	return fmt.Sprintf("incorrect verification code (%d attempts remaining)", e.Remaining)
}
