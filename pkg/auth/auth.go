// Package auth verifies bearer tokens issued by the identity service and
// guards routes by role. Token issuance lives outside this service; Sign
// exists for tooling and tests.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrMissingToken = errors.New("authentication token required")
	ErrInvalidToken = errors.New("token invalid or expired")
	ErrForbidden    = errors.New("insufficient permissions")
)

// Claims is the token payload. Claim names match the identity service.
type Claims struct {
	jwt.RegisteredClaims
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Role     string `json:"roleType"`
}

// Principal is the verified caller.
type Principal struct {
	ID       uuid.UUID
	Username string
	Role     string
}

// Verifier resolves a bearer token to a Principal.
type Verifier interface {
	Verify(token string) (*Principal, error)
}

type hmacVerifier struct {
	secret []byte
	issuer string
}

// NewVerifier validates HS256 tokens signed with secret. A non-empty issuer
// is enforced on the iss claim.
func NewVerifier(secret []byte, issuer string) Verifier {
	return &hmacVerifier{secret: secret, issuer: issuer}
}

func (v *hmacVerifier) Verify(token string) (*Principal, error) {
	if token == "" {
		return nil, ErrMissingToken
	}

	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: user id: %v", ErrInvalidToken, err)
	}

	return &Principal{
		ID:       id,
		Username: claims.Username,
		Role:     claims.Role,
	}, nil
}

// Sign issues an HS256 token for claims expiring after ttl.
func Sign(secret []byte, claims Claims, ttl time.Duration) (string, error) {
	now := time.Now()
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

type principalKey struct{}

// WithPrincipal stores p in ctx.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFrom returns the Principal placed by RequireRole, if any.
func PrincipalFrom(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(*Principal)
	return p, ok && p != nil
}
