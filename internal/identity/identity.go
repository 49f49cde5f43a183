// Package identity resolves an optional display identity for the caller.
// It exists only to supply a name for the UI header; nothing in the
// service is authorized against it, and requests without a token proceed
// anonymously.
package identity

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	jwt "github.com/golang-jwt/jwt/v5"
)

const principalKey = "identity_principal"

// Principal is the display identity of the caller.
type Principal struct {
	Subject string
	Name    string
}

// Claims describes the JWT payload carrying the display name.
type Claims struct {
	Name string `json:"name"`
	jwt.RegisteredClaims
}

// Resolver parses bearer tokens into display principals.
type Resolver struct {
	secret []byte
}

// NewResolver builds a resolver over a shared HS256 secret.
func NewResolver(secret string) *Resolver {
	return &Resolver{secret: []byte(secret)}
}

// Issue signs a display token for the subject. Used by tooling and tests;
// production tokens normally come from the identity provider.
func (r *Resolver) Issue(subject, name string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		Name: name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(r.secret)
}

// Resolve validates a token and returns the principal it names.
func (r *Resolver) Resolve(tokenStr string) (*Principal, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return r.secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token claims")
	}
	return &Principal{Subject: claims.Subject, Name: claims.Name}, nil
}

// Middleware attaches the principal when a valid bearer token is present.
// It never rejects a request; identity is display-only.
func (r *Resolver) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader != "" {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
				if principal, err := r.Resolve(parts[1]); err == nil {
					c.Locals(principalKey, principal)
				}
			}
		}
		return c.Next()
	}
}

// PrincipalFromContext retrieves the resolved display identity, if any.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
