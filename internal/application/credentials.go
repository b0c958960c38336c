package application

import (
	"time"

	"github.com/oksasatya/go-catalog-api/internal/domain/entity"
	"github.com/oksasatya/go-catalog-api/pkg/helpers"
)

// CredentialService hashes and verifies passwords and signs login tokens.
type CredentialService interface {
	Hash(plain string) (string, error)
	// Verify reports a mismatch as (false, nil); any other failure is an error.
	Verify(plain, hash string) (bool, error)
	IssueToken(p entity.AuthPayload, ttl time.Duration) (string, time.Time, error)
}

// Credentials is the bcrypt + HS256 JWT CredentialService.
type Credentials struct {
	JWT  *helpers.JWTManager
	Cost int
}

func NewCredentials(jwt *helpers.JWTManager, cost int) *Credentials {
	return &Credentials{JWT: jwt, Cost: cost}
}

func (c *Credentials) Hash(plain string) (string, error) {
	return helpers.HashPassword(plain, c.Cost)
}

func (c *Credentials) Verify(plain, hash string) (bool, error) {
	return helpers.ComparePassword(hash, plain)
}

func (c *Credentials) IssueToken(p entity.AuthPayload, ttl time.Duration) (string, time.Time, error) {
	return c.JWT.GenerateToken(p.ID, p.Email, string(p.Role), ttl)
}

var _ CredentialService = (*Credentials)(nil)
