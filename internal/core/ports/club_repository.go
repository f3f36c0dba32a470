package ports

import (
	"context"

	"github.com/sportsfed/federation-api/internal/core/domain"
)

// ClubRepository is the read-only slice of the federation club store this
// core consumes.
type ClubRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Club, error)
}
