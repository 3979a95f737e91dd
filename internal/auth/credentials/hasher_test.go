package credentials

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerify(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	hash, err := h.Hash("secret123")
	if err != nil {
		t.Fatal(err)
	}
	if hash == "secret123" {
		t.Fatal("hash must not equal plaintext")
	}

	if err := h.Verify(hash, "secret123"); err != nil {
		t.Fatalf("correct password rejected: %v", err)
	}
	if err := h.Verify(hash, "secret124"); err == nil {
		t.Fatal("wrong password accepted")
	}
}

func TestHashAcceptsAnyLength(t *testing.T) {
	// Password policy lives upstream of the hasher; short secrets hash
	// and verify like any other.
	h := NewHasher(bcrypt.MinCost)

	for _, password := range []string{"abc123", "x", ""} {
		hash, err := h.Hash(password)
		if err != nil {
			t.Fatalf("Hash(%q): %v", password, err)
		}
		if err := h.Verify(hash, password); err != nil {
			t.Fatalf("Verify(%q): %v", password, err)
		}
	}
}

func TestCostEmbeddedInHash(t *testing.T) {
	// Hashes produced before a cost bump must stay verifiable: the
	// cost lives in the hash, not in the verifier.
	old := NewHasher(bcrypt.MinCost)
	hash, err := old.Hash("secret123")
	if err != nil {
		t.Fatal(err)
	}

	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		t.Fatal(err)
	}
	if cost != bcrypt.MinCost {
		t.Fatalf("want cost %d embedded, got %d", bcrypt.MinCost, cost)
	}

	bumped := NewHasher(bcrypt.MinCost + 2)
	if err := bumped.Verify(hash, "secret123"); err != nil {
		t.Fatalf("old hash no longer verifiable after cost bump: %v", err)
	}
}

func TestOutOfRangeCostFallsBackToDefault(t *testing.T) {
	h := NewHasher(1000)

	hash, err := h.Hash("secret123")
	if err != nil {
		t.Fatal(err)
	}

	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		t.Fatal(err)
	}
	if cost != bcrypt.DefaultCost {
		t.Fatalf("want default cost %d, got %d", bcrypt.DefaultCost, cost)
	}
}
