// Package config loads server configuration from the environment, with an
// optional TOML file filling in values the environment leaves unset.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// Backend selects the persistence implementation.
const (
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

type Config struct {
	DatabaseURL string // ONBOARD_DATABASE_URL (unset = memory backend)
	Backend     string // ONBOARD_BACKEND ("postgres" or "memory")
	DisableTLS  bool   // ONBOARD_DISABLE_TLS (adds sslmode=disable to the DSN)
	Port        int    // ONBOARD_PORT (default 3000)
	StaticDir   string // ONBOARD_STATIC_DIR (default "web")
	NATSURL     string // ONBOARD_NATS_URL (optional, empty = no events)
	AuthToken   string // ONBOARD_AUTH_TOKEN (optional, guards admin routes)
	AdminRoutes bool   // ONBOARD_ADMIN_ROUTES (default false)

	// S3 export destination (all optional; export downloads only when unset)
	ExportS3Bucket   string // ONBOARD_EXPORT_S3_BUCKET
	ExportS3Key      string // ONBOARD_EXPORT_S3_KEY (default "onboard/backup.jsonl")
	ExportS3Region   string // ONBOARD_EXPORT_S3_REGION (default "us-east-1")
	ExportS3Endpoint string // ONBOARD_EXPORT_S3_ENDPOINT (custom endpoint for MinIO)
}

// fileConfig mirrors Config for the optional TOML file named by
// ONBOARD_CONFIG. Environment variables win over file values.
type fileConfig struct {
	DatabaseURL string `toml:"database_url"`
	Backend     string `toml:"backend"`
	DisableTLS  *bool  `toml:"disable_tls"`
	Port        *int   `toml:"port"`
	StaticDir   string `toml:"static_dir"`
	NATSURL     string `toml:"nats_url"`
	AuthToken   string `toml:"auth_token"`
	AdminRoutes *bool  `toml:"admin_routes"`

	ExportS3Bucket   string `toml:"export_s3_bucket"`
	ExportS3Key      string `toml:"export_s3_key"`
	ExportS3Region   string `toml:"export_s3_region"`
	ExportS3Endpoint string `toml:"export_s3_endpoint"`
}

func Load() (*Config, error) {
	c := &Config{
		DatabaseURL:      os.Getenv("ONBOARD_DATABASE_URL"),
		Backend:          os.Getenv("ONBOARD_BACKEND"),
		DisableTLS:       envBool("ONBOARD_DISABLE_TLS"),
		StaticDir:        os.Getenv("ONBOARD_STATIC_DIR"),
		NATSURL:          os.Getenv("ONBOARD_NATS_URL"),
		AuthToken:        os.Getenv("ONBOARD_AUTH_TOKEN"),
		AdminRoutes:      envBool("ONBOARD_ADMIN_ROUTES"),
		ExportS3Bucket:   os.Getenv("ONBOARD_EXPORT_S3_BUCKET"),
		ExportS3Key:      os.Getenv("ONBOARD_EXPORT_S3_KEY"),
		ExportS3Region:   os.Getenv("ONBOARD_EXPORT_S3_REGION"),
		ExportS3Endpoint: os.Getenv("ONBOARD_EXPORT_S3_ENDPOINT"),
	}

	if v := os.Getenv("ONBOARD_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("ONBOARD_PORT: %w", err)
		}
		c.Port = port
	}

	if path := os.Getenv("ONBOARD_CONFIG"); path != "" {
		if err := c.mergeFile(path); err != nil {
			return nil, err
		}
	}

	c.applyDefaults()

	switch c.Backend {
	case BackendPostgres, BackendMemory:
	default:
		return nil, fmt.Errorf("ONBOARD_BACKEND: unknown backend %q", c.Backend)
	}

	return c, nil
}

// mergeFile fills in any zero-valued fields from the TOML file at path.
func (c *Config) mergeFile(path string) error {
	var fc fileConfig
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		return fmt.Errorf("config file %s: %w", path, err)
	}

	if c.DatabaseURL == "" {
		c.DatabaseURL = fc.DatabaseURL
	}
	if c.Backend == "" {
		c.Backend = fc.Backend
	}
	if !c.DisableTLS && fc.DisableTLS != nil {
		c.DisableTLS = *fc.DisableTLS
	}
	if c.Port == 0 && fc.Port != nil {
		c.Port = *fc.Port
	}
	if c.StaticDir == "" {
		c.StaticDir = fc.StaticDir
	}
	if c.NATSURL == "" {
		c.NATSURL = fc.NATSURL
	}
	if c.AuthToken == "" {
		c.AuthToken = fc.AuthToken
	}
	if !c.AdminRoutes && fc.AdminRoutes != nil {
		c.AdminRoutes = *fc.AdminRoutes
	}
	if c.ExportS3Bucket == "" {
		c.ExportS3Bucket = fc.ExportS3Bucket
	}
	if c.ExportS3Key == "" {
		c.ExportS3Key = fc.ExportS3Key
	}
	if c.ExportS3Region == "" {
		c.ExportS3Region = fc.ExportS3Region
	}
	if c.ExportS3Endpoint == "" {
		c.ExportS3Endpoint = fc.ExportS3Endpoint
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Port == 0 {
		c.Port = 3000
	}
	if c.StaticDir == "" {
		c.StaticDir = "web"
	}
	if c.ExportS3Key == "" {
		c.ExportS3Key = "onboard/backup.jsonl"
	}
	if c.ExportS3Region == "" {
		c.ExportS3Region = "us-east-1"
	}
	if c.Backend == "" {
		if c.DatabaseURL != "" {
			c.Backend = BackendPostgres
		} else {
			c.Backend = BackendMemory
		}
	}
}

// HTTPAddr returns the listen address for the HTTP server.
func (c *Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// DSN returns the database URL, with sslmode=disable appended when TLS is
// disabled and the URL does not already pin an sslmode.
func (c *Config) DSN() string {
	if !c.DisableTLS || c.DatabaseURL == "" {
		return c.DatabaseURL
	}
	if strings.Contains(c.DatabaseURL, "sslmode=") {
		return c.DatabaseURL
	}
	u, err := url.Parse(c.DatabaseURL)
	if err != nil {
		// Leave a malformed URL for the driver to reject.
		return c.DatabaseURL
	}
	q := u.Query()
	q.Set("sslmode", "disable")
	u.RawQuery = q.Encode()
	return u.String()
}

func envBool(key string) bool {
	v := strings.TrimSpace(strings.ToLower(os.Getenv(key)))
	return v == "1" || v == "true" || v == "yes"
}
