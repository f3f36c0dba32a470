package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/sportsfed/federation-api/internal/core/domain"
	"github.com/sportsfed/federation-api/internal/core/ports"
	"github.com/sportsfed/federation-api/internal/pkg/metrics"
)

// MinPasswordLength is the policy floor for permanent passwords, enforced
// before hashing.
const MinPasswordLength = 8

const (
	tempPasswordLength = 12
	// No 0/O, 1/l/I: temporary passwords get retyped from an email.
	tempPasswordAlphabet = "abcdefghjkmnpqrstuvwxyzABCDEFGHJKMNPQRSTUVWXYZ23456789"

	credentialsEmailSubject = "Your club manager access"
)

// ManagerService implements the club-manager account lifecycle: provisioning
// with a temporary password, credential regeneration, and activation state.
type ManagerService struct {
	accounts ports.AccountRepository
	clubs    ports.ClubRepository
	mailer   ports.EmailDispatcher
	log      zerolog.Logger
}

func NewManagerService(
	accounts ports.AccountRepository,
	clubs ports.ClubRepository,
	mailer ports.EmailDispatcher,
	log zerolog.Logger,
) *ManagerService {
	return &ManagerService{accounts: accounts, clubs: clubs, mailer: mailer, log: log}
}

// Provision creates a manager account for a club that has none yet and emails
// the temporary password. If the email bounces the account stays created
// (accounts are never hard-deleted here) and ErrEmailDeliveryFailed is
// returned; the administrator recovers via Regenerate.
func (s *ManagerService) Provision(ctx context.Context, input ports.ProvisionManagerInput) (*ports.ProvisionedManager, error) {
	club, err := s.clubs.FindByID(ctx, input.ClubID)
	if err != nil {
		return nil, domain.ErrClubNotFound
	}

	if _, err := s.accounts.FindByClubID(ctx, club.ID); err == nil {
		return nil, domain.ErrClubHasManager
	}

	tempPassword, err := generateTemporaryPassword()
	if err != nil {
		return nil, fmt.Errorf("generate temporary password: %w", err)
	}

	account := domain.NewClubManager(
		strings.ToLower(input.Email), input.Name, club.ID, tempPassword, time.Now().UTC())

	created, err := s.accounts.Create(ctx, account)
	if err != nil {
		return nil, err
	}
	metrics.ManagersProvisionedTotal.Inc()

	s.log.Info().
		Str("account_id", created.ID).
		Str("club_id", club.ID).
		Msg("club manager provisioned")

	if err := s.sendCredentials(ctx, created, club.Name, tempPassword); err != nil {
		return nil, err
	}

	return &ports.ProvisionedManager{
		Account:           created.Summarize(),
		ClubName:          club.Name,
		TemporaryPassword: tempPassword,
	}, nil
}

// Regenerate installs a fresh temporary password, clears the permanent hash
// so the manager must run setPassword again, reactivates the account, and
// re-sends the credential email. This is the only path that reverses the
// permanent-password state.
func (s *ManagerService) Regenerate(ctx context.Context, accountID string) (string, error) {
	account, err := s.accounts.FindByID(ctx, accountID)
	if err != nil {
		return "", domain.ErrAccountNotFound
	}
	if !account.IsClubManager() {
		return "", domain.ErrAccountNotFound
	}

	tempPassword, err := generateTemporaryPassword()
	if err != nil {
		return "", fmt.Errorf("generate temporary password: %w", err)
	}

	account.RegenerateCredentials(tempPassword, time.Now().UTC())
	if err := s.accounts.Update(ctx, account); err != nil {
		return "", fmt.Errorf("store regenerated credentials: %w", err)
	}

	s.log.Info().Str("account_id", account.ID).Msg("manager credentials regenerated")

	clubName := ""
	if club, err := s.clubs.FindByID(ctx, account.ClubID); err == nil {
		clubName = club.Name
	}
	if err := s.sendCredentials(ctx, account, clubName, tempPassword); err != nil {
		return "", err
	}

	return tempPassword, nil
}

// Activate re-enables logins for the account.
func (s *ManagerService) Activate(ctx context.Context, accountID string) error {
	return s.setActive(ctx, accountID, true)
}

// Deactivate blocks future logins. Already-issued session tokens stay valid
// until they expire.
func (s *ManagerService) Deactivate(ctx context.Context, accountID string) error {
	return s.setActive(ctx, accountID, false)
}

// Get returns the public summary of a manager account.
func (s *ManagerService) Get(ctx context.Context, accountID string) (*domain.Summary, error) {
	account, err := s.accounts.FindByID(ctx, accountID)
	if err != nil {
		return nil, domain.ErrAccountNotFound
	}
	if !account.IsClubManager() {
		return nil, domain.ErrAccountNotFound
	}
	summary := account.Summarize()
	return &summary, nil
}

func (s *ManagerService) setActive(ctx context.Context, accountID string, active bool) error {
	account, err := s.accounts.FindByID(ctx, accountID)
	if err != nil {
		return domain.ErrAccountNotFound
	}
	if !account.IsClubManager() {
		return domain.ErrAccountNotFound
	}

	account.IsActive = active
	account.UpdatedAt = time.Now().UTC()
	if err := s.accounts.Update(ctx, account); err != nil {
		return fmt.Errorf("update activation state: %w", err)
	}

	s.log.Info().Str("account_id", accountID).Bool("active", active).Msg("manager activation changed")
	return nil
}

func (s *ManagerService) sendCredentials(ctx context.Context, account *domain.Account, clubName, tempPassword string) error {
	body := credentialsEmailBody(account.Name, clubName, tempPassword)
	if err := s.mailer.Send(ctx, account.Email, credentialsEmailSubject, body); err != nil {
		metrics.EmailsSentTotal.WithLabelValues("credentials", "error").Inc()
		s.log.Error().Err(err).Str("account_id", account.ID).Msg("credential email failed")
		return domain.ErrEmailDeliveryFailed
	}
	metrics.EmailsSentTotal.WithLabelValues("credentials", "ok").Inc()
	return nil
}

// generateTemporaryPassword draws tempPasswordLength characters from the
// readable alphabet using crypto/rand.
func generateTemporaryPassword() (string, error) {
	max := big.NewInt(int64(len(tempPasswordAlphabet)))
	b := make([]byte, tempPasswordLength)
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = tempPasswordAlphabet[n.Int64()]
	}
	return string(b), nil
}

func credentialsEmailBody(name, clubName, tempPassword string) string {
	return fmt.Sprintf(
		"Hello %s,\n\nA manager account has been prepared for the club %q.\n\n"+
			"Your temporary password is:\n\n    %s\n\n"+
			"Sign in with it once to choose your own password.\n",
		name, clubName, tempPassword)
}
