package service

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/sportsfed/federation-api/internal/core/domain"
	"github.com/sportsfed/federation-api/internal/core/ports"
	"github.com/sportsfed/federation-api/internal/pkg/metrics"
)

const codeEmailSubject = "Your federation login code"

// AuthService orchestrates the two-phase login: credential check, code
// issuance over email, code verification, and token issuance.
type AuthService struct {
	accounts ports.AccountRepository
	hasher   *PasswordHasher
	registry ports.CodeRegistry
	mailer   ports.EmailDispatcher
	tokens   *TokenIssuer
	codeTTL  time.Duration
	log      zerolog.Logger
}

// NewAuthService wires the login state machine. codeTTL is how long an issued
// verification code stays valid; it only feeds the email copy — the registry
// owns the actual deadline.
func NewAuthService(
	accounts ports.AccountRepository,
	hasher *PasswordHasher,
	registry ports.CodeRegistry,
	mailer ports.EmailDispatcher,
	tokens *TokenIssuer,
	codeTTL time.Duration,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		accounts: accounts,
		hasher:   hasher,
		registry: registry,
		mailer:   mailer,
		tokens:   tokens,
		codeTTL:  codeTTL,
		log:      log,
	}
}

// InitiateLogin runs phase 1: validate credentials, then either branch a
// club manager still on a temporary password into the forced reset, or issue
// a verification code and email it.
//
// Lookup failure, wrong password, and deactivation return distinct sentinels
// so logs and metrics can tell them apart; the HTTP layer collapses them into
// one message.
func (s *AuthService) InitiateLogin(ctx context.Context, email, password string) (*ports.LoginChallenge, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	account, err := s.accounts.FindByEmail(ctx, strings.ToLower(email))
	if err != nil {
		metrics.LoginsInitiatedTotal.WithLabelValues("unknown_account").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	if !account.IsActive {
		metrics.LoginsInitiatedTotal.WithLabelValues("deactivated").Inc()
		s.log.Info().Str("account_id", account.ID).Msg("login attempt on deactivated account")
		return nil, domain.ErrAccountDeactivated
	}

	// Club manager still on a temporary password: an exact match bypasses
	// code issuance and forces the password-set flow instead.
	if account.IsClubManager() && account.PendingFirstPassword() {
		if subtle.ConstantTimeCompare([]byte(account.TemporaryPassword), []byte(password)) == 1 {
			metrics.LoginsInitiatedTotal.WithLabelValues("password_reset_required").Inc()
			return &ports.LoginChallenge{
				RequiresPasswordReset: true,
				AccountID:             account.ID,
			}, nil
		}
		metrics.LoginsInitiatedTotal.WithLabelValues("invalid_credentials").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	if account.PasswordHash == "" {
		// Neither credential type is usable.
		metrics.LoginsInitiatedTotal.WithLabelValues("not_activated").Inc()
		return nil, domain.ErrAccountNotActivated
	}

	if !s.hasher.Verify(password, account.PasswordHash) {
		metrics.LoginsInitiatedTotal.WithLabelValues("invalid_credentials").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	codeID, code, err := s.registry.Issue(ctx, account.ID, account.Email)
	if err != nil {
		return nil, fmt.Errorf("issue verification code: %w", err)
	}
	metrics.CodesIssuedTotal.Inc()

	if err := s.mailer.Send(ctx, account.Email, codeEmailSubject, codeEmailBody(code, s.codeTTL)); err != nil {
		// The code must not stay live if the holder can never receive it.
		if revokeErr := s.registry.Revoke(ctx, codeID); revokeErr != nil {
			s.log.Warn().Err(revokeErr).Str("code_id", codeID).Msg("failed to revoke undeliverable code")
		}
		metrics.EmailsSentTotal.WithLabelValues("verification_code", "error").Inc()
		s.log.Error().Err(err).Str("account_id", account.ID).Msg("verification code email failed")
		return nil, domain.ErrEmailDeliveryFailed
	}
	metrics.EmailsSentTotal.WithLabelValues("verification_code", "ok").Inc()
	metrics.LoginsInitiatedTotal.WithLabelValues("code_issued").Inc()

	s.log.Info().Str("account_id", account.ID).Str("code_id", codeID).Msg("verification code issued")

	return &ports.LoginChallenge{
		CodeID:      codeID,
		MaskedEmail: maskEmail(account.Email),
	}, nil
}

// CompleteLogin runs phase 2: check the supplied code and, on success, stamp
// the login time and issue the session token.
func (s *AuthService) CompleteLogin(ctx context.Context, codeID, code string) (*ports.LoginResult, error) {
	result, err := s.registry.Check(ctx, codeID, code)
	if err != nil {
		return nil, fmt.Errorf("check verification code: %w", err)
	}

	switch result.Status {
	case ports.CheckSuccess:
		metrics.CodeChecksTotal.WithLabelValues("success").Inc()
	case ports.CheckExpired:
		metrics.CodeChecksTotal.WithLabelValues("expired").Inc()
		return nil, domain.ErrCodeExpired
	case ports.CheckTooManyAttempts:
		metrics.CodeChecksTotal.WithLabelValues("exhausted").Inc()
		return nil, domain.ErrTooManyAttempts
	case ports.CheckIncorrect:
		metrics.CodeChecksTotal.WithLabelValues("incorrect").Inc()
		return nil, &domain.CodeIncorrectError{Remaining: result.Remaining}
	default:
		metrics.CodeChecksTotal.WithLabelValues("not_found").Inc()
		return nil, domain.ErrInvalidSession
	}

	account, err := s.accounts.FindByID(ctx, result.AccountID)
	if err != nil {
		// The account vanished between phases; the session is unusable.
		return nil, domain.ErrInvalidSession
	}

	account.LastLoginAt = time.Now().UTC()
	account.UpdatedAt = account.LastLoginAt
	if err := s.accounts.Update(ctx, account); err != nil {
		s.log.Warn().Err(err).Str("account_id", account.ID).Msg("failed to stamp last login")
	}

	token, err := s.tokens.Issue(account)
	if err != nil {
		return nil, fmt.Errorf("issue session token: %w", err)
	}

	s.log.Info().Str("account_id", account.ID).Str("role", string(account.Role)).Msg("login completed")

	return &ports.LoginResult{Token: token, Account: account.Summarize()}, nil
}

// SetPassword completes the forced first-password-set of a club manager: the
// supplied temporary password must match exactly, and the new password must
// meet the minimum length policy before it is hashed.
func (s *AuthService) SetPassword(ctx context.Context, accountID, temporaryPassword, newPassword string) error {
	if len(newPassword) < MinPasswordLength {
		return domain.ErrWeakPassword
	}

	account, err := s.accounts.FindByID(ctx, accountID)
	if err != nil {
		return domain.ErrInvalidTemporaryPassword
	}

	if account.TemporaryPassword == "" ||
		subtle.ConstantTimeCompare([]byte(account.TemporaryPassword), []byte(temporaryPassword)) != 1 {
		return domain.ErrInvalidTemporaryPassword
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	account.SetPermanentPassword(hash, time.Now().UTC())
	if err := s.accounts.Update(ctx, account); err != nil {
		return fmt.Errorf("store password: %w", err)
	}

	s.log.Info().Str("account_id", account.ID).Msg("permanent password set")
	return nil
}

// maskEmail hides most of the local part for UI display: "ab***@domain".
// Very short local parts keep only the first character.
func maskEmail(email string) string {
	at := strings.Index(email, "@")
	if at <= 0 {
		return "***"
	}
	local, domainPart := email[:at], email[at+1:]
	visible := 2
	if len(local) < 3 {
		visible = 1
	}
	return local[:visible] + "***@" + domainPart
}

func codeEmailBody(code string, ttl time.Duration) string {
	return fmt.Sprintf(
		"Hello,\n\nYour verification code is:\n\n    %s\n\nIt expires in %d minutes. "+
			"If you did not try to sign in, you can ignore this email.\n",
		code, int(ttl.Minutes()))
}
