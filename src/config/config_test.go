package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	cfg := Default()
	cfg.Auth.Secret = "test-secret"
	return cfg
}

func TestValidate(t *testing.T) {
	t.Run("defaults with secret are valid", func(t *testing.T) {
		assert.NoError(t, validConfig().Validate())
	})

	t.Run("missing token key", func(t *testing.T) {
		cfg := Default()
		assert.Error(t, cfg.Validate())
	})

	t.Run("primary university outside list", func(t *testing.T) {
		cfg := validConfig()
		cfg.Site.PrimaryUniversity = "XYZ"
		assert.Error(t, cfg.Validate())
	})

	t.Run("unknown storage driver", func(t *testing.T) {
		cfg := validConfig()
		cfg.Storage.Driver = "ftp"
		assert.Error(t, cfg.Validate())
	})

	t.Run("minio requires credentials", func(t *testing.T) {
		cfg := validConfig()
		cfg.Storage.Driver = "minio"
		assert.Error(t, cfg.Validate())

		cfg.Storage.Minio = Minio{Endpoint: "localhost:9000", AccessKey: "a", SecretKey: "b", Bucket: "c"}
		assert.NoError(t, cfg.Validate())
	})

	t.Run("unknown timezone", func(t *testing.T) {
		cfg := validConfig()
		cfg.Site.Timezone = "Mars/Olympus"
		assert.Error(t, cfg.Validate())
	})

	t.Run("mongo uri scheme", func(t *testing.T) {
		cfg := validConfig()
		cfg.Mongo.URI = "postgres://localhost"
		assert.Error(t, cfg.Validate())
	})
}

func TestLoadYAMLAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yml := `
port: "9000"
mongo:
  database: FromYAML
site:
  primaryUniversity: MUST
  universities: [NUM, MUST]
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o644))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("MONGO_DATABASE", "FromEnv")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "FromEnv", cfg.Mongo.Database)
	assert.Equal(t, "MUST", cfg.Site.PrimaryUniversity)
	assert.Equal(t, []string{"NUM", "MUST"}, cfg.Site.Universities)
	assert.Equal(t, "s3cret", cfg.Auth.Secret)
}

func TestUniversityOrDefault(t *testing.T) {
	s := Default().Site
	assert.Equal(t, "NUM", s.UniversityOrDefault(""))
	assert.Equal(t, "NUM", s.UniversityOrDefault("   "))
	assert.Equal(t, "MUST", s.UniversityOrDefault("MUST"))
	assert.True(t, s.IsUniversity("MNUMS"))
	assert.False(t, s.IsUniversity("mnums"))
	assert.Equal(t, "Asia/Ulaanbaatar", s.Location().String())
	assert.Equal(t, time.UTC, Site{Timezone: "nowhere"}.Location())
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"NUM", "MUST"}, splitList(" NUM, ,MUST "))
	assert.Nil(t, splitList(""))
}
