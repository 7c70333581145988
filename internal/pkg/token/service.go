// internal/pkg/token/service.go
package token

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/oklog/ulid/v2"
)

// DevFallbackSecret is the development-only signing secret used when
// TOKEN_SECRET_KEY is not set. It is deliberately recognizable so it can
// never be mistaken for a production secret; the server logs a warning
// whenever it is in effect.
const DevFallbackSecret = "dev-only-insecure-secret-do-not-deploy"

// Config holds the token service configuration.
type Config struct {
	Secret string
	Issuer string
	TTL    time.Duration
}

// Service issues and verifies self-contained HS512-signed session tokens.
// The server keeps no session record; the token is the whole credential.
// All methods are pure CPU-bound computation and safe for concurrent use.
type Service struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

func NewService(cfg Config) (*Service, error) {
	if cfg.Secret == "" {
		return nil, fmt.Errorf("token service requires a signing secret")
	}
	if cfg.TTL <= 0 {
		return nil, fmt.Errorf("token service requires a positive TTL")
	}
	return &Service{
		secret: []byte(cfg.Secret),
		issuer: cfg.Issuer,
		ttl:    cfg.TTL,
	}, nil
}

// UsesDevFallback reports whether the service was built on the insecure
// development fallback secret.
func (s *Service) UsesDevFallback() bool {
	return string(s.secret) == DevFallbackSecret
}

// TTL returns the configured token lifetime.
func (s *Service) TTL() time.Duration {
	return s.ttl
}

// Issue creates a signed session token bound to an identity.
func (s *Service) Issue(identityID int64) (string, error) {
	if identityID <= 0 {
		return "", fmt.Errorf("cannot issue token for identity id %d", identityID)
	}

	now := time.Now()
	claims := &Claims{
		IdentityID: identityID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   fmt.Sprintf("%d", identityID),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        ulid.Make().String(),
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	return tok.SignedString(s.secret)
}

// Verify validates a token's signature and structural integrity. A nil
// failure means the claims are trustworthy. Any failure must be treated by
// callers as "not authenticated"; the reason is diagnostic only.
func (s *Service) Verify(tokenString string) (*Claims, *VerificationFailure) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}))

	if err != nil {
		return nil, &VerificationFailure{Reason: classify(err)}
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || !claims.valid() {
		return nil, &VerificationFailure{Reason: ReasonMalformed}
	}

	if s.issuer != "" && claims.Issuer != s.issuer {
		return nil, &VerificationFailure{Reason: ReasonSignatureInvalid}
	}

	return claims, nil
}

func classify(err error) FailureReason {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired), errors.Is(err, jwt.ErrTokenNotValidYet):
		return ReasonExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return ReasonSignatureInvalid
	default:
		return ReasonMalformed
	}
}

// DecodeBearer extracts the bearer credential from a raw Authorization-style
// header value. Only "Bearer <token>" with exactly two space-separated
// segments is recognized; the scheme match is case-insensitive. Any other
// shape means no credential was supplied at all, which is distinct from a
// verification failure.
func DecodeBearer(header string) (string, bool) {
	parts := strings.Split(header, " ")
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	if parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
