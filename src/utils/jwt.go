package utils

import (
	"errors"
	"fmt"
	"time"

	"Backend-UniClub/src/config"
	"Backend-UniClub/src/models"

	"github.com/golang-jwt/jwt/v5"
)

// UserMetadata is the public metadata block the identity provider copies
// into session tokens.
type UserMetadata struct {
	Role string `json:"role,omitempty"`
}

// SessionClaims are the claims of an identity-provider session token. The
// subject is the provider's user id.
type SessionClaims struct {
	Email          string       `json:"email,omitempty"`
	FullName       string       `json:"name,omitempty"`
	Metadata       UserMetadata `json:"metadata,omitempty"`
	PublicMetadata UserMetadata `json:"public_metadata,omitempty"`
	jwt.RegisteredClaims
}

// Role returns the role carried in the token metadata, if any.
func (c *SessionClaims) Role() string {
	if c.Metadata.Role != "" {
		return c.Metadata.Role
	}
	return c.PublicMetadata.Role
}

func (c *SessionClaims) Identity() models.Identity {
	return models.Identity{
		ClerkID:  c.Subject,
		Email:    c.Email,
		FullName: c.FullName,
		Role:     c.Role(),
	}
}

// TokenVerifier checks session token signatures with an RSA public key, or
// with a shared secret when no key is configured.
type TokenVerifier struct {
	key     interface{}
	methods []string
	issuer  string
}

func NewTokenVerifier(cfg config.Auth) (*TokenVerifier, error) {
	if cfg.PublicKeyPEM != "" {
		pub, err := jwt.ParseRSAPublicKeyFromPEM([]byte(cfg.PublicKeyPEM))
		if err != nil {
			return nil, fmt.Errorf("parse session public key: %w", err)
		}
		return &TokenVerifier{key: pub, methods: []string{jwt.SigningMethodRS256.Alg()}, issuer: cfg.Issuer}, nil
	}
	if cfg.Secret == "" {
		return nil, errors.New("no session key configured")
	}
	return &TokenVerifier{key: []byte(cfg.Secret), methods: []string{jwt.SigningMethodHS256.Alg()}, issuer: cfg.Issuer}, nil
}

func (v *TokenVerifier) Parse(tokenStr string) (*SessionClaims, error) {
	if tokenStr == "" {
		return nil, fmt.Errorf("empty token string")
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods(v.methods),
		jwt.WithLeeway(5 * time.Second),
		jwt.WithExpirationRequired(),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenStr, &SessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		return v.key, nil
	}, opts...)
	if err != nil || token == nil {
		return nil, fmt.Errorf("token parsing failed: %w", err)
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("token has no subject")
	}
	return claims, nil
}

// GenerateSessionToken signs an HS256 session token. It backs local
// development and tests; production tokens come from the identity provider.
func GenerateSessionToken(secret string, id models.Identity, ttl time.Duration) (string, error) {
	claims := SessionClaims{
		Email:    id.Email,
		FullName: id.FullName,
		Metadata: UserMetadata{Role: id.Role},
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.ClerkID,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
