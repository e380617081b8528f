package testutil

import (
	"testing"
	"time"

	"Backend-UniClub/src/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// NewCache returns a cache backed by an in-process Redis server that lives
// as long as the test.
func NewCache(t *testing.T) (*utils.Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return utils.NewCache(client, time.Minute, zap.NewNop()), mr
}
