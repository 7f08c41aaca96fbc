package crypto

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_RoundTrip(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hashed, err := h.Hash("s3cret-pass")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hashed == "s3cret-pass" {
		t.Fatalf("hash returned the plaintext")
	}
	if !h.Verify("s3cret-pass", hashed) {
		t.Fatalf("correct password did not verify")
	}
	if h.Verify("wrong-pass", hashed) {
		t.Fatalf("wrong password verified")
	}
}

func TestBcryptHasher_SaltedHashesDiffer(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	first, err := h.Hash("same-password")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	second, err := h.Hash("same-password")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if first == second {
		t.Fatalf("expected distinct hashes for the same input")
	}
	if !h.Verify("same-password", first) || !h.Verify("same-password", second) {
		t.Fatalf("both hashes should verify against the original password")
	}
}

func TestBcryptHasher_OutOfRangeCostFallsBack(t *testing.T) {
	h := NewBcryptHasher(99)

	hashed, err := h.Hash("pw")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	cost, err := bcrypt.Cost([]byte(hashed))
	if err != nil {
		t.Fatalf("cost: %v", err)
	}
	if cost != bcrypt.DefaultCost {
		t.Fatalf("expected default cost %d, got %d", bcrypt.DefaultCost, cost)
	}
}

func TestBcryptHasher_MaxLengthPassword(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	// 72 bytes is bcrypt's input ceiling; the boundary itself must hash.
	pw := strings.Repeat("p", 72)
	hashed, err := h.Hash(pw)
	if err != nil {
		t.Fatalf("hash of 72-byte password: %v", err)
	}
	if !h.Verify(pw, hashed) {
		t.Fatalf("72-byte password did not verify")
	}
}

func TestBcryptHasher_VerifyRejectsGarbageHash(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	if h.Verify("anything", "not-a-bcrypt-hash") {
		t.Fatalf("garbage hash verified")
	}
	if h.Verify("anything", strings.Repeat("x", 60)) {
		t.Fatalf("malformed hash verified")
	}
}
