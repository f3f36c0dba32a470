// Package codes provides the transient stores for pending one-time login
// codes: an in-memory registry tied to the process lifetime, and a periodic
// sweeper that evicts expired records.
package codes

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sportsfed/federation-api/internal/core/ports"
)

// MaxAttempts is the verification budget per issued code.
const MaxAttempts = 3

// DefaultTTL is how long an issued code stays valid.
const DefaultTTL = 10 * time.Minute

type record struct {
	accountID string
	email     string
	code      string
	expiresAt time.Time
	attempts  int
}

// MemoryRegistry keeps pending verification codes in process memory. All
// records are lost on restart, which only forces a re-login.
//
// A single mutex guards the map, so the read-increment-compare-delete
// sequence in Check is atomic per code id: two concurrent guesses can never
// both pass the attempt check.
type MemoryRegistry struct {
	mu      sync.Mutex
	records map[string]*record
	ttl     time.Duration

	now func() time.Time // injectable clock for tests
}

// NewMemoryRegistry returns an empty registry. A non-positive ttl falls back
// to DefaultTTL.
func NewMemoryRegistry(ttl time.Duration) *MemoryRegistry {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryRegistry{
		records: make(map[string]*record),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Issue stores a fresh 6-digit code under a new opaque code id.
func (r *MemoryRegistry) Issue(_ context.Context, accountID, email string) (string, string, error) {
	code, err := GenerateCode()
	if err != nil {
		return "", "", err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	codeID := uuid.NewString()
	for _, taken := r.records[codeID]; taken; _, taken = r.records[codeID] {
		codeID = uuid.NewString()
	}

	r.records[codeID] = &record{
		accountID: accountID,
		email:     email,
		code:      code,
		expiresAt: r.now().Add(r.ttl),
	}
	return codeID, code, nil
}

// Check charges one verification attempt against the record. The record is
// consumed on success, observed expiry, or an exhausted budget; a wrong guess
// within budget keeps it so repeated guesses draw from the same allowance.
func (r *MemoryRegistry) Check(_ context.Context, codeID, supplied string) (ports.CheckResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[codeID]
	if !ok {
		return ports.CheckResult{Status: ports.CheckNotFound}, nil
	}

	if r.now().After(rec.expiresAt) {
		delete(r.records, codeID)
		return ports.CheckResult{Status: ports.CheckExpired}, nil
	}

	if rec.attempts >= MaxAttempts {
		delete(r.records, codeID)
		return ports.CheckResult{Status: ports.CheckTooManyAttempts}, nil
	}

	rec.attempts++
	if rec.code != supplied {
		return ports.CheckResult{
			Status:    ports.CheckIncorrect,
			Remaining: MaxAttempts - rec.attempts,
		}, nil
	}

	delete(r.records, codeID)
	return ports.CheckResult{Status: ports.CheckSuccess, AccountID: rec.accountID}, nil
}

// Revoke discards a live record. Unknown ids are a no-op.
func (r *MemoryRegistry) Revoke(_ context.Context, codeID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.records, codeID)
	return nil
}

// Sweep deletes every expired record and reports how many were removed.
func (r *MemoryRegistry) Sweep(_ context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	removed := 0
	for id, rec := range r.records {
		if now.After(rec.expiresAt) {
			delete(r.records, id)
			removed++
		}
	}
	return removed, nil
}

// GenerateCode returns a 6-digit zero-padded numeric code from crypto/rand.
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
