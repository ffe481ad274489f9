package security

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// BcryptHasher checks the single admin credential against the bcrypt hash
// carried in ADMIN_PASSWORD_HASH. Hash exists for seeding that value and for
// tests; the server never stores a password itself.
type BcryptHasher struct {
	Cost int
}

func (h BcryptHasher) Hash(password string) (string, error) {
	out, err := bcrypt.GenerateFromPassword([]byte(password), h.cost())
	if err != nil {
		return "", fmt.Errorf("security: hash password: %w", err)
	}
	return string(out), nil
}

func (h BcryptHasher) Compare(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

func (h BcryptHasher) cost() int {
	switch {
	case h.Cost < bcrypt.MinCost:
		return bcrypt.DefaultCost
	case h.Cost > bcrypt.MaxCost:
		return bcrypt.MaxCost
	default:
		return h.Cost
	}
}
