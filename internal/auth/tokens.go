package auth

import (
	"fmt"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const issuerName = "marketing-api"

// TokenService issues and verifies HS256-signed bearer tokens
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService creates a token service with the given signing secret and lifetime
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Issue builds and signs a token carrying the subject claim
func (s *TokenService) Issue(subject string) (string, error) {
	now := time.Now()
	token, err := jwt.NewBuilder().
		Issuer(issuerName).
		Subject(subject).
		IssuedAt(now).
		Expiration(now.Add(s.ttl)).
		Build()
	if err != nil {
		return "", fmt.Errorf("failed to build token: %w", err)
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.HS256, s.secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return string(signed), nil
}

// Verify parses and validates a token, returning its subject. Expired,
// malformed, and wrongly-signed tokens all fail here.
func (s *TokenService) Verify(tokenString string) (string, error) {
	token, err := jwt.Parse([]byte(tokenString),
		jwt.WithKey(jwa.HS256, s.secret),
		jwt.WithValidate(true),
		jwt.WithIssuer(issuerName),
	)
	if err != nil {
		return "", fmt.Errorf("failed to parse/verify token: %w", err)
	}

	subject := token.Subject()
	if subject == "" {
		return "", fmt.Errorf("token missing subject claim")
	}

	return subject, nil
}
