package service

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHasher_RoundTrip(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	digest, err := h.Hash("s3cret-password")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if digest == "s3cret-password" {
		t.Fatalf("digest equals plaintext")
	}
	if !h.Verify("s3cret-password", digest) {
		t.Fatalf("verify rejected the original plaintext")
	}
	if h.Verify("other-password", digest) {
		t.Fatalf("verify accepted a different plaintext")
	}
}

func TestPasswordHasher_Salted(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	d1, err := h.Hash("same-input")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	d2, err := h.Hash("same-input")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if d1 == d2 {
		t.Fatalf("two hashes of the same plaintext are identical")
	}
}

func TestPasswordHasher_MalformedDigest(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	if h.Verify("anything", "not-a-bcrypt-digest") {
		t.Fatalf("verify accepted a malformed digest")
	}
	if h.Verify("anything", "") {
		t.Fatalf("verify accepted an empty digest")
	}
}

func TestPasswordHasher_CostFallback(t *testing.T) {
	h := NewPasswordHasher(99)
	if h.cost != bcrypt.DefaultCost {
		t.Fatalf("expected default cost, got %d", h.cost)
	}
}
