// Package identity decides whether the caller of a request is an administrator.
package identity

import (
	"context"
	"time"

	"Backend-UniClub/src/models"
	"Backend-UniClub/src/repositories"
	"Backend-UniClub/src/services"
	"Backend-UniClub/src/utils"

	"go.uber.org/zap"
)

type UserLookup interface {
	GetByClerkID(ctx context.Context, clerkID string) (*models.User, error)
}

type Resolver struct {
	users   UserLookup
	timeout time.Duration
	logger  *zap.Logger
}

func NewResolver(users UserLookup, timeout time.Duration, logger *zap.Logger) *Resolver {
	return &Resolver{users: users, timeout: timeout, logger: logger}
}

// IsAdmin trusts an admin role in the token metadata without touching the
// database. Otherwise the stored user decides. Lookup failures deny access.
func (r *Resolver) IsAdmin(ctx context.Context, claims *utils.SessionClaims) bool {
	if claims == nil || claims.Subject == "" {
		return false
	}
	if claims.Role() == models.RoleAdmin {
		return true
	}

	ctx, cancel := services.WithTimeout(ctx, r.timeout)
	defer cancel()

	user, err := r.users.GetByClerkID(ctx, claims.Subject)
	if err != nil {
		if !repositories.IsNotFound(err) {
			r.logger.Error("admin role lookup failed", zap.String("clerkId", claims.Subject), zap.Error(err))
		}
		return false
	}
	return user.Role == models.RoleAdmin
}
