package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/sportsfed/federation-api/internal/core/domain"
	"github.com/sportsfed/federation-api/internal/core/ports"
)

// SeedAdministrator creates the initial administrator account when no account
// exists for the given email. Idempotent: reruns are no-ops.
func SeedAdministrator(
	ctx context.Context,
	accounts ports.AccountRepository,
	hasher *PasswordHasher,
	email, name, password string,
	log zerolog.Logger,
) error {
	email = strings.ToLower(email)
	if _, err := accounts.FindByEmail(ctx, email); err == nil {
		return nil
	}

	hash, err := hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("seed administrator: %w", err)
	}

	admin := domain.NewAdministrator(email, name, hash, time.Now().UTC())
	created, err := accounts.Create(ctx, admin)
	if err != nil {
		return fmt.Errorf("seed administrator: %w", err)
	}

	log.Info().Str("account_id", created.ID).Str("email", email).Msg("administrator seeded")
	return nil
}
