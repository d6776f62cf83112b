package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/intern-dashboard/internal/domain"
)

// DevCredential describes a credential minted for local development and tests.
type DevCredential struct {
	SubjectID   string
	TenantID    string
	Role        domain.Role
	DisplayName string
	TTL         time.Duration
}

type devClaims struct {
	TenantID string      `json:"tenantId,omitempty"`
	Role     domain.Role `json:"role"`
	FullName string      `json:"fullName,omitempty"`
	jwt.RegisteredClaims
}

// MintDevCredential signs an HS256 credential with the given secret. The dashboard
// never verifies it; the secret only matters to an API that does.
func MintDevCredential(c DevCredential, secret string) (string, error) {
	if _, ok := domain.ParseRole(string(c.Role)); !ok {
		return "", errors.New("unknown role")
	}
	if secret == "" {
		secret = "dev-secret"
	}
	now := time.Now()
	claims := &devClaims{
		TenantID: c.TenantID,
		Role:     c.Role,
		FullName: c.DisplayName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  c.SubjectID,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if c.TTL > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(c.TTL))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
