package ports

import (
	"context"

	"github.com/sportsfed/federation-api/internal/core/domain"
)

// AccountRepository defines the persistence interface for administrator and
// club-manager accounts.
type AccountRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	FindByID(ctx context.Context, id string) (*domain.Account, error)
	// FindByClubID returns the manager account bound to a club, enforcing the
	// one-manager-per-club lookup. Returns domain.ErrAccountNotFound when the
	// club has no manager yet.
	FindByClubID(ctx context.Context, clubID string) (*domain.Account, error)
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
	Update(ctx context.Context, account *domain.Account) error
}
