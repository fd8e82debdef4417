package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ardanlabs/conf/v3"
	"github.com/joho/godotenv"
)

// ErrHelpWanted is returned by Load when --help or --version was requested;
// the usage text is returned alongside it.
var ErrHelpWanted = conf.ErrHelpWanted

// DB holds the connection settings for the PostgreSQL pool.
type DB struct {
	URL             string        `conf:"env:DATABASE_URL,noprint"`
	Host            string        `conf:"default:localhost,env:DB_HOST"`
	Port            int           `conf:"default:5432,env:DB_PORT"`
	Name            string        `conf:"default:inventario,env:DB_NAME"`
	User            string        `conf:"default:postgres,env:DB_USER"`
	Password        string        `conf:"default:postgres,env:DB_PASSWORD,mask"`
	SSLMode         string        `conf:"default:disable,env:DB_SSLMODE"`
	TimeZone        string        `conf:"default:UTC,env:DB_TIMEZONE"`
	MaxIdleConns    int           `conf:"default:10,env:DB_MAX_IDLE_CONNS"`
	MaxOpenConns    int           `conf:"default:20,env:DB_MAX_OPEN_CONNS"`
	ConnMaxLifetime time.Duration `conf:"default:1h,env:DB_CONN_MAX_LIFETIME"`
	LogLevel        string        `conf:"default:warn,enum:silent|error|warn|info,env:DB_LOG_LEVEL"`
}

// Auth configures bearer tokens on write routes. An empty secret leaves
// writes open.
type Auth struct {
	JWTSecret string        `conf:"env:JWT_SECRET,mask"`
	Issuer    string        `conf:"default:go-inventory-api,env:JWT_ISSUER"`
	TokenTTL  time.Duration `conf:"default:24h,env:JWT_TOKEN_TTL"`
}

// Enabled reports whether write routes require a token.
func (a Auth) Enabled() bool { return a.JWTSecret != "" }

// Config holds all configuration for the API process.
type Config struct {
	conf.Version
	AppName          string `conf:"default:Inventario API v1.0,env:APP_NAME"`
	Port             int    `conf:"default:5000,env:PORT"`
	CORSAllowOrigins string `conf:"default:*,env:CORS_ALLOW_ORIGINS"`
	AutoMigrate      bool   `conf:"default:true,env:AUTO_MIGRATE"`
	DB               DB
	Auth             Auth
}

// Load reads .env (if present) and then the environment.
func Load() (*Config, string, error) {
	var cfg Config
	_ = godotenv.Load()

	cfg.Version = conf.Version{Build: "dev", Desc: "Inventory API: suppliers and stock items"}
	help, err := conf.Parse("", &cfg)
	if err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			return nil, help, err
		}
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, "", nil
}

// Addr is the listen address for Fiber.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// AllowOrigins normalizes the comma-separated CORS origin list.
func (c *Config) AllowOrigins() string {
	parts := strings.Split(c.CORSAllowOrigins, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return "*"
	}
	return strings.Join(out, ",")
}
