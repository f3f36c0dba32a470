package ports

import "context"

// CheckStatus classifies the outcome of a verification-code check.
type CheckStatus int

const (
	// CheckSuccess: code matched; the record has been consumed.
	CheckSuccess CheckStatus = iota
	// CheckNotFound: no live record for the code id (never existed, already
	// consumed, or swept).
	CheckNotFound
	// CheckExpired: the record outlived its deadline; it has been deleted.
	CheckExpired
	// CheckIncorrect: wrong code; the attempt was charged and the record kept.
	CheckIncorrect
	// CheckTooManyAttempts: the attempt budget was already exhausted; the
	// record has been deleted.
	CheckTooManyAttempts
)

// CheckResult is the outcome of a single verification attempt.
type CheckResult struct {
	Status    CheckStatus
	AccountID string // set only on CheckSuccess
	Remaining int    // attempts left, set only on CheckIncorrect
}

// CodeRegistry is the transient store of pending one-time login codes.
//
// Check must treat the read-increment-compare-delete sequence as atomic per
// code id: two concurrent guesses must never both pass the attempt check.
type CodeRegistry interface {
	// Issue stores a fresh 6-digit code for the account under a new opaque
	// code id and returns both. The code goes to the mailer, never to the
	// network caller.
	Issue(ctx context.Context, accountID, email string) (codeID, code string, err error)
	// Check verifies a supplied code against the live record, charging one
	// attempt. Consumes the record on success, expiry, or exhaustion.
	Check(ctx context.Context, codeID, supplied string) (CheckResult, error)
	// Revoke discards a live record, e.g. when the code email could not be
	// delivered. Revoking an unknown id is not an error.
	Revoke(ctx context.Context, codeID string) error
	// Sweep deletes every expired record and reports how many were removed.
	Sweep(ctx context.Context) (int, error)
}
