// Package config loads the service configuration.
//
// Sources, lowest precedence first:
//  1. built-in defaults
//  2. YAML file (CONFIG_FILE, default ./config.yaml) when present
//  3. environment variables (a .env file is loaded into the environment first)
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Port           string   `yaml:"port" validate:"required"`
	Env            string   `yaml:"env" validate:"oneof=dev test prod"`
	AllowedOrigins string   `yaml:"allowedOrigins"`
	Log            Log      `yaml:"log"`
	Mongo          Mongo    `yaml:"mongo"`
	Redis          Redis    `yaml:"redis"`
	Auth           Auth     `yaml:"auth"`
	Storage        Storage  `yaml:"storage"`
	Site           Site     `yaml:"site"`
	Timeouts       Timeouts `yaml:"timeouts"`
}

type Log struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=json console"`
}

type Mongo struct {
	URI         string `yaml:"uri" validate:"required,startswith=mongodb"`
	Database    string `yaml:"database" validate:"required"`
	MaxPoolSize uint64 `yaml:"maxPoolSize"`
}

// Redis is optional; an empty Addr disables caching and background jobs.
type Redis struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

func (r Redis) Enabled() bool { return r.Addr != "" }

// Auth configures verification of the identity provider's session tokens.
// PublicKeyPEM (RS256) wins over Secret (HS256) when both are set.
type Auth struct {
	PublicKeyPEM string `yaml:"publicKeyPem"`
	Secret       string `yaml:"secret"`
	Issuer       string `yaml:"issuer"`
}

type Storage struct {
	Driver     string     `yaml:"driver" validate:"oneof=local minio cloudinary"`
	Folder     string     `yaml:"folder"`
	LocalPath  string     `yaml:"localPath"`
	LocalURL   string     `yaml:"localUrl"`
	Minio      Minio      `yaml:"minio"`
	Cloudinary Cloudinary `yaml:"cloudinary"`
}

type Minio struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
	Bucket    string `yaml:"bucket"`
	UseSSL    bool   `yaml:"useSsl"`
	PublicURL string `yaml:"publicUrl"`
}

type Cloudinary struct {
	CloudName string `yaml:"cloudName"`
	APIKey    string `yaml:"apiKey"`
	APISecret string `yaml:"apiSecret"`
}

// Site holds the fixed chapter list. PrimaryUniversity is the fallback key for
// users and events that carry no university. Timezone is the IANA zone that
// admin-entered dates and times are read in.
type Site struct {
	PrimaryUniversity string   `yaml:"primaryUniversity" validate:"required"`
	Universities      []string `yaml:"universities" validate:"required,min=1,dive,required"`
	Timezone          string   `yaml:"timezone"`
}

type Timeouts struct {
	DB     time.Duration `yaml:"db"`
	Upload time.Duration `yaml:"upload"`
	Cache  time.Duration `yaml:"cache"`
}

// Default returns the configuration used when nothing else is provided.
func Default() Config {
	return Config{
		Port:           "8888",
		Env:            "dev",
		AllowedOrigins: "*",
		Log:            Log{Level: "info", Format: "console"},
		Mongo: Mongo{
			URI:         "mongodb://localhost:27017",
			Database:    "UniClubDB",
			MaxPoolSize: 100,
		},
		Storage: Storage{
			Driver:    "local",
			Folder:    "uniclub",
			LocalPath: "./uploads",
			LocalURL:  "/uploads",
		},
		Site: Site{
			PrimaryUniversity: "NUM",
			Universities:      []string{"NUM", "MUST", "MNUMS", "MNUE", "UFE", "MULS", "GMIT"},
			Timezone:          "Asia/Ulaanbaatar",
		},
		Timeouts: Timeouts{
			DB:     5 * time.Second,
			Upload: 30 * time.Second,
			Cache:  5 * time.Minute,
		},
	}
}

// Load reads .env, the optional YAML file and the environment, then validates.
func Load() (Config, error) {
	// .env is optional outside local development
	_ = godotenv.Load()

	cfg := Default()

	path := os.Getenv("CONFIG_FILE")
	if path == "" {
		path = "config.yaml"
	}
	if err := loadYAML(path, &cfg); err != nil {
		return Config{}, err
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadYAML(path string, cfg *Config) error {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	setString(&cfg.Port, "APP_PORT")
	setString(&cfg.Env, "APP_ENV")
	setString(&cfg.AllowedOrigins, "ALLOWED_ORIGINS")
	setString(&cfg.Log.Level, "LOG_LEVEL")
	setString(&cfg.Log.Format, "LOG_FORMAT")

	setString(&cfg.Mongo.URI, "MONGO_URI")
	setString(&cfg.Mongo.Database, "MONGO_DATABASE")
	if v, err := strconv.ParseUint(os.Getenv("MONGO_MAX_POOL_SIZE"), 10, 64); err == nil {
		cfg.Mongo.MaxPoolSize = v
	}

	setString(&cfg.Redis.Addr, "REDIS_URI")
	setString(&cfg.Redis.Password, "REDIS_PASSWORD")
	if v, err := strconv.Atoi(os.Getenv("REDIS_DB")); err == nil {
		cfg.Redis.DB = v
	}

	setString(&cfg.Auth.PublicKeyPEM, "CLERK_JWT_KEY")
	setString(&cfg.Auth.Secret, "JWT_SECRET")
	setString(&cfg.Auth.Issuer, "CLERK_ISSUER")

	setString(&cfg.Storage.Driver, "STORAGE_DRIVER")
	setString(&cfg.Storage.Folder, "STORAGE_FOLDER")
	setString(&cfg.Storage.LocalPath, "STORAGE_LOCAL_PATH")
	setString(&cfg.Storage.LocalURL, "STORAGE_LOCAL_URL")
	setString(&cfg.Storage.Minio.Endpoint, "MINIO_ENDPOINT")
	setString(&cfg.Storage.Minio.AccessKey, "MINIO_ACCESS_KEY")
	setString(&cfg.Storage.Minio.SecretKey, "MINIO_SECRET_KEY")
	setString(&cfg.Storage.Minio.Bucket, "MINIO_BUCKET")
	setString(&cfg.Storage.Minio.PublicURL, "MINIO_PUBLIC_URL")
	if v, err := strconv.ParseBool(os.Getenv("MINIO_USE_SSL")); err == nil {
		cfg.Storage.Minio.UseSSL = v
	}
	setString(&cfg.Storage.Cloudinary.CloudName, "CLOUDINARY_CLOUD_NAME")
	setString(&cfg.Storage.Cloudinary.APIKey, "CLOUDINARY_API_KEY")
	setString(&cfg.Storage.Cloudinary.APISecret, "CLOUDINARY_API_SECRET")

	setString(&cfg.Site.PrimaryUniversity, "PRIMARY_UNIVERSITY")
	setString(&cfg.Site.Timezone, "SITE_TIMEZONE")
	if v := os.Getenv("UNIVERSITIES"); v != "" {
		cfg.Site.Universities = splitList(v)
	}
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Validate checks struct tags and the cross-field rules the tags cannot express.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.Auth.PublicKeyPEM == "" && c.Auth.Secret == "" {
		return errors.New("invalid config: one of CLERK_JWT_KEY or JWT_SECRET is required")
	}
	if !c.Site.IsUniversity(c.Site.PrimaryUniversity) {
		return fmt.Errorf("invalid config: primary university %q is not in the university list", c.Site.PrimaryUniversity)
	}
	if _, err := time.LoadLocation(c.Site.Timezone); err != nil {
		return fmt.Errorf("invalid config: site timezone: %w", err)
	}
	switch c.Storage.Driver {
	case "minio":
		m := c.Storage.Minio
		if m.Endpoint == "" || m.AccessKey == "" || m.SecretKey == "" || m.Bucket == "" {
			return errors.New("invalid config: minio storage requires endpoint, access key, secret key and bucket")
		}
	case "cloudinary":
		cl := c.Storage.Cloudinary
		if cl.CloudName == "" || cl.APIKey == "" || cl.APISecret == "" {
			return errors.New("invalid config: cloudinary storage requires cloud name, api key and api secret")
		}
	}
	return nil
}

// IsUniversity reports whether code is one of the configured chapters.
func (s Site) IsUniversity(code string) bool {
	for _, u := range s.Universities {
		if u == code {
			return true
		}
	}
	return false
}

// UniversityOrDefault maps an empty code to the primary institution.
func (s Site) UniversityOrDefault(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return s.PrimaryUniversity
	}
	return code
}

// Location returns the site timezone, UTC when unset or unknown.
func (s Site) Location() *time.Location {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
