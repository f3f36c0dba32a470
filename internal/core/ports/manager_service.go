package ports

import (
	"context"

	"github.com/sportsfed/federation-api/internal/core/domain"
)

// ProvisionManagerInput carries the administrator-supplied fields for a new
// club-manager account.
type ProvisionManagerInput struct {
	Email  string
	Name   string
	ClubID string
}

// ProvisionedManager is returned after a successful provisioning. The
// temporary password is included so the administrator can hand it over
// out-of-band if the credential email bounces.
type ProvisionedManager struct {
	Account           domain.Summary
	ClubName          string
	TemporaryPassword string
}

// ManagerService manages the club-manager account lifecycle: provisioning,
// credential regeneration, and activation state.
type ManagerService interface {
	Provision(ctx context.Context, input ProvisionManagerInput) (*ProvisionedManager, error)
	// Regenerate issues a fresh temporary password, clears the permanent
	// hash, reactivates the account, and re-sends the credential email.
	Regenerate(ctx context.Context, accountID string) (string, error)
	Activate(ctx context.Context, accountID string) error
	Deactivate(ctx context.Context, accountID string) error
	Get(ctx context.Context, accountID string) (*domain.Summary, error)
}
