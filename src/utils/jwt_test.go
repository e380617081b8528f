package utils

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"testing"
	"time"

	"Backend-UniClub/src/config"
	"Backend-UniClub/src/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenVerifierHS256(t *testing.T) {
	v, err := NewTokenVerifier(config.Auth{Secret: "secret"})
	require.NoError(t, err)

	token, err := GenerateSessionToken("secret", models.Identity{
		ClerkID: "user_1", Email: "a@num.edu.mn", Role: models.RoleAdmin,
	}, time.Hour)
	require.NoError(t, err)

	claims, err := v.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "user_1", claims.Subject)
	assert.Equal(t, models.RoleAdmin, claims.Role())
	assert.Equal(t, "a@num.edu.mn", claims.Identity().Email)
}

func TestTokenVerifierRejects(t *testing.T) {
	v, err := NewTokenVerifier(config.Auth{Secret: "secret"})
	require.NoError(t, err)

	t.Run("wrong secret", func(t *testing.T) {
		token, _ := GenerateSessionToken("other", models.Identity{ClerkID: "u"}, time.Hour)
		_, err := v.Parse(token)
		assert.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		token, _ := GenerateSessionToken("secret", models.Identity{ClerkID: "u"}, -time.Hour)
		_, err := v.Parse(token)
		assert.Error(t, err)
	})

	t.Run("no subject", func(t *testing.T) {
		token, _ := GenerateSessionToken("secret", models.Identity{}, time.Hour)
		_, err := v.Parse(token)
		assert.Error(t, err)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := v.Parse("")
		assert.Error(t, err)
	})
}

func TestTokenVerifierRS256(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	pemKey := string(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der}))

	v, err := NewTokenVerifier(config.Auth{PublicKeyPEM: pemKey, Issuer: "https://clerk.example"})
	require.NoError(t, err)

	claims := SessionClaims{
		PublicMetadata: UserMetadata{Role: "admin"},
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user_rs",
			Issuer:    "https://clerk.example",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	require.NoError(t, err)

	got, err := v.Parse(signed)
	require.NoError(t, err)
	assert.Equal(t, "admin", got.Role())

	// an HS256 token must not pass an RS256 verifier
	hs, _ := GenerateSessionToken("secret", models.Identity{ClerkID: "u"}, time.Hour)
	_, err = v.Parse(hs)
	assert.Error(t, err)
}
