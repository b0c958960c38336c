package helpers

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword hashes the plain text password using bcrypt
func HashPassword(plain string, cost int) (string, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ComparePassword reports whether plain matches the bcrypt hash.
// A mismatch is (false, nil); a malformed hash is returned as an error.
func ComparePassword(hash string, plain string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, err
}
