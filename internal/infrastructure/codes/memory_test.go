package codes

import (
	"context"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/sportsfed/federation-api/internal/core/ports"
)

func issueOne(t *testing.T, r *MemoryRegistry) (string, string) {
	t.Helper()
	codeID, code, err := r.Issue(context.Background(), "acc_1", "a@b.example")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	return codeID, code
}

func TestMemoryRegistry_IssueFormat(t *testing.T) {
	r := NewMemoryRegistry(time.Minute)
	codeID, code := issueOne(t, r)

	if codeID == "" {
		t.Fatalf("expected a code id")
	}
	if !regexp.MustCompile(`^\d{6}$`).MatchString(code) {
		t.Fatalf("expected a 6-digit code, got %q", code)
	}
}

func TestMemoryRegistry_IssueUniqueIDs(t *testing.T) {
	r := NewMemoryRegistry(time.Minute)
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		codeID, _ := issueOne(t, r)
		if _, dup := seen[codeID]; dup {
			t.Fatalf("duplicate code id: %s", codeID)
		}
		seen[codeID] = struct{}{}
	}
}

func TestMemoryRegistry_SuccessConsumesRecord(t *testing.T) {
	r := NewMemoryRegistry(time.Minute)
	codeID, code := issueOne(t, r)

	res, err := r.Check(context.Background(), codeID, code)
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if res.Status != ports.CheckSuccess {
		t.Fatalf("expected success, got %v", res.Status)
	}
	if res.AccountID != "acc_1" {
		t.Fatalf("unexpected account id: %s", res.AccountID)
	}

	// A code verifies exactly once.
	res, _ = r.Check(context.Background(), codeID, code)
	if res.Status != ports.CheckNotFound {
		t.Fatalf("expected not-found after consumption, got %v", res.Status)
	}
}

func TestMemoryRegistry_AttemptBudget(t *testing.T) {
	r := NewMemoryRegistry(time.Minute)
	codeID, _ := issueOne(t, r)

	// Three wrong guesses count down 2, 1, 0 and keep the record.
	for i, want := range []int{2, 1, 0} {
		res, err := r.Check(context.Background(), codeID, "999999")
		if err != nil {
			t.Fatalf("check failed: %v", err)
		}
		if res.Status != ports.CheckIncorrect {
			t.Fatalf("guess %d: expected incorrect, got %v", i+1, res.Status)
		}
		if res.Remaining != want {
			t.Fatalf("guess %d: expected %d remaining, got %d", i+1, want, res.Remaining)
		}
	}

	// The 4th check yields too-many-attempts regardless of correctness and
	// destroys the record.
	res, _ := r.Check(context.Background(), codeID, "999999")
	if res.Status != ports.CheckTooManyAttempts {
		t.Fatalf("expected too-many-attempts, got %v", res.Status)
	}
	res, _ = r.Check(context.Background(), codeID, "999999")
	if res.Status != ports.CheckNotFound {
		t.Fatalf("expected not-found after destruction, got %v", res.Status)
	}
}

func TestMemoryRegistry_CorrectCodeAfterExhaustionStillFails(t *testing.T) {
	r := NewMemoryRegistry(time.Minute)
	codeID, code := issueOne(t, r)

	for i := 0; i < 3; i++ {
		if _, err := r.Check(context.Background(), codeID, "999999"); err != nil {
			t.Fatalf("check failed: %v", err)
		}
	}

	res, _ := r.Check(context.Background(), codeID, code)
	if res.Status != ports.CheckTooManyAttempts {
		t.Fatalf("expected too-many-attempts even for the correct code, got %v", res.Status)
	}
}

func TestMemoryRegistry_ExpiryWinsOverCorrectCode(t *testing.T) {
	r := NewMemoryRegistry(time.Minute)
	codeID, code := issueOne(t, r)

	r.now = func() time.Time { return time.Now().Add(2 * time.Minute) }

	res, err := r.Check(context.Background(), codeID, code)
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if res.Status != ports.CheckExpired {
		t.Fatalf("expected expired, got %v", res.Status)
	}

	// The expired record is gone, not retried.
	res, _ = r.Check(context.Background(), codeID, code)
	if res.Status != ports.CheckNotFound {
		t.Fatalf("expected not-found after expiry, got %v", res.Status)
	}
}

func TestMemoryRegistry_Revoke(t *testing.T) {
	r := NewMemoryRegistry(time.Minute)
	codeID, code := issueOne(t, r)

	if err := r.Revoke(context.Background(), codeID); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}
	res, _ := r.Check(context.Background(), codeID, code)
	if res.Status != ports.CheckNotFound {
		t.Fatalf("expected not-found after revoke, got %v", res.Status)
	}

	// Revoking an unknown id is a no-op.
	if err := r.Revoke(context.Background(), "unknown"); err != nil {
		t.Fatalf("revoke of unknown id errored: %v", err)
	}
}

func TestMemoryRegistry_Sweep(t *testing.T) {
	r := NewMemoryRegistry(time.Minute)
	expiredID, _ := issueOne(t, r)

	r.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	liveID, liveCode, err := r.Issue(context.Background(), "acc_2", "c@d.example")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	removed, err := r.Sweep(context.Background())
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	if removed != 1 {
		t.Fatalf("expected 1 removal, got %d", removed)
	}

	res, _ := r.Check(context.Background(), expiredID, "000000")
	if res.Status != ports.CheckNotFound {
		t.Fatalf("swept record still present")
	}
	res, _ = r.Check(context.Background(), liveID, liveCode)
	if res.Status != ports.CheckSuccess {
		t.Fatalf("live record swept away: %v", res.Status)
	}
}

func TestMemoryRegistry_ConcurrentChecksRespectBudget(t *testing.T) {
	r := NewMemoryRegistry(time.Minute)
	codeID, _ := issueOne(t, r)

	const goroutines = 20
	var wg sync.WaitGroup
	results := make(chan ports.CheckStatus, goroutines)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := r.Check(context.Background(), codeID, "999999")
			if err != nil {
				t.Errorf("check failed: %v", err)
				return
			}
			results <- res.Status
		}()
	}
	wg.Wait()
	close(results)

	incorrect := 0
	for status := range results {
		if status == ports.CheckIncorrect {
			incorrect++
		}
	}
	if incorrect > MaxAttempts {
		t.Fatalf("attempt budget exceeded under concurrency: %d charged attempts", incorrect)
	}
}
