package middleware

import (
	"context"
	"strings"

	"Backend-UniClub/src/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	sessionKey = "session"
	// sessionCookie is where the identity provider's browser SDK keeps the
	// short-lived session token.
	sessionCookie = "__session"
)

// AdminChecker decides whether the caller of a request may use admin routes.
type AdminChecker interface {
	IsAdmin(ctx context.Context, claims *utils.SessionClaims) bool
}

type Auth struct {
	verifier *utils.TokenVerifier
	admins   AdminChecker
	logger   *zap.Logger
}

func NewAuth(verifier *utils.TokenVerifier, admins AdminChecker, logger *zap.Logger) *Auth {
	return &Auth{verifier: verifier, admins: admins, logger: logger}
}

// Session parses the session token when one is sent and stores its claims.
// Requests without a valid token continue anonymously.
func (a *Auth) Session(c *fiber.Ctx) error {
	tokenStr := bearerToken(c)
	if tokenStr == "" {
		return c.Next()
	}
	claims, err := a.verifier.Parse(tokenStr)
	if err != nil {
		a.logger.Debug("session token rejected", zap.Error(err), zap.String("path", c.Path()))
		return c.Next()
	}
	c.Locals(sessionKey, claims)
	return c.Next()
}

// RequireSession answers 401 when the request carries no valid session.
func (a *Auth) RequireSession(c *fiber.Ctx) error {
	if SessionFrom(c) == nil {
		return utils.HandleError(c, fiber.StatusUnauthorized, utils.MsgUnauthorized)
	}
	return c.Next()
}

// RequireAdmin answers 403 unless the caller resolves to an administrator.
func (a *Auth) RequireAdmin(c *fiber.Ctx) error {
	if !a.admins.IsAdmin(c.UserContext(), SessionFrom(c)) {
		return utils.HandleError(c, fiber.StatusForbidden, utils.MsgForbidden)
	}
	return c.Next()
}

// SessionFrom returns the claims stored by Session, or nil.
func SessionFrom(c *fiber.Ctx) *utils.SessionClaims {
	claims, _ := c.Locals(sessionKey).(*utils.SessionClaims)
	return claims
}

func bearerToken(c *fiber.Ctx) string {
	if h := c.Get(fiber.HeaderAuthorization); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return c.Cookies(sessionCookie)
}
