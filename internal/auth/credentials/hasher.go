package credentials

import (
	"golang.org/x/crypto/bcrypt"
)

// Hasher produces and verifies salted bcrypt password hashes. The cost
// factor is embedded in each hash, so hashes created before a cost bump
// remain verifiable.
type Hasher struct {
	cost int
}

func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash hashes a plaintext password. The plaintext is never logged or
// stored by this package. Password policy is the caller's concern;
// any plaintext accepted upstream hashes here.
func (h *Hasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}

	return string(bytes), nil
}

// Verify compares a plaintext password with a stored hash in constant
// time. A nil return means the password matches.
func (h *Hasher) Verify(hash string, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
