package identity

import (
	"context"
	"testing"

	"Backend-UniClub/src/models"
	"Backend-UniClub/src/testutil"
	"Backend-UniClub/src/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func claimsFor(sub, role string) *utils.SessionClaims {
	return &utils.SessionClaims{
		Metadata:         utils.UserMetadata{Role: role},
		RegisteredClaims: jwt.RegisteredClaims{Subject: sub},
	}
}

func TestIsAdmin(t *testing.T) {
	users := testutil.NewUserRepo(
		models.User{ClerkID: "admin_db", Role: models.RoleAdmin},
		models.User{ClerkID: "member_db", Role: models.RoleMember},
	)
	r := NewResolver(users, 0, zap.NewNop())
	ctx := context.Background()

	assert.False(t, r.IsAdmin(ctx, nil), "anonymous")
	assert.True(t, r.IsAdmin(ctx, claimsFor("admin_db", "")), "stored admin")
	assert.False(t, r.IsAdmin(ctx, claimsFor("member_db", "")), "stored member")
	assert.False(t, r.IsAdmin(ctx, claimsFor("nobody", "")), "no user record")
}

func TestIsAdminClaimFastPath(t *testing.T) {
	users := testutil.NewUserRepo(models.User{ClerkID: "member_db", Role: models.RoleMember})
	r := NewResolver(users, 0, zap.NewNop())

	// the token says admin while the stored role says member: the claim wins
	assert.True(t, r.IsAdmin(context.Background(), claimsFor("member_db", models.RoleAdmin)))
	assert.Zero(t, users.Lookups)
}

func TestIsAdminFailsClosed(t *testing.T) {
	users := testutil.NewUserRepo(models.User{ClerkID: "admin_db", Role: models.RoleAdmin})
	users.Fail = true
	r := NewResolver(users, 0, zap.NewNop())

	assert.False(t, r.IsAdmin(context.Background(), claimsFor("admin_db", "")))
	assert.Equal(t, 1, users.Lookups)
}
