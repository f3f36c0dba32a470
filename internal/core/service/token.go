package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sportsfed/federation-api/internal/core/domain"
)

const defaultTokenTTL = 7 * 24 * time.Hour

// SessionClaims are the identity claims carried by an issued session token.
// ClubID is present only for club managers.
type SessionClaims struct {
	Email  string      `json:"email"`
	Role   domain.Role `json:"role"`
	ClubID string      `json:"club_id,omitempty"`
	jwt.RegisteredClaims
}

// TokenIssuer creates and validates signed, time-bounded session tokens.
// Validity is determined solely by signature and expiry; there is no
// server-side revocation list.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenIssuer returns an issuer signing HS256 tokens with secret, valid
// for ttl. A non-positive ttl falls back to 7 days.
func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenIssuer{secret: []byte(secret), ttl: ttl}
}

// Issue signs a token carrying the account's identity claims.
func (t *TokenIssuer) Issue(account *domain.Account) (string, error) {
	now := time.Now().UTC()
	claims := SessionClaims{
		Email:  account.Email,
		Role:   account.Role,
		ClubID: account.ClubID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   account.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

// Validate parses and verifies a token string, returning its claims. Any
// signature, algorithm, or expiry problem yields an error.
func (t *TokenIssuer) Validate(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return t.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
