package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const defaultJWTSecret = "change-me-in-production"

type Config struct {
	AppPort string `mapstructure:"APP_PORT"`
	AppEnv  string `mapstructure:"APP_ENV"`

	DBDriver      string `mapstructure:"DB_DRIVER"`
	MySQLHost     string `mapstructure:"MYSQL_HOST"`
	MySQLPort     string `mapstructure:"MYSQL_PORT"`
	MySQLDB       string `mapstructure:"MYSQL_DB"`
	MySQLUser     string `mapstructure:"MYSQL_USER"`
	MySQLPass     string `mapstructure:"MYSQL_PASS"`
	DatabaseURL   string `mapstructure:"DATABASE_URL"`
	SQLitePath    string `mapstructure:"SQLITE_PATH"`
	DBAutoMigrate bool   `mapstructure:"DB_AUTO_MIGRATE"`

	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`
	IdempTTLSecs  int    `mapstructure:"IDEMPOTENCY_TTL_SECONDS"`

	JWTSecret      string        `mapstructure:"JWT_SECRET"`
	SessionTTL     time.Duration `mapstructure:"SESSION_TTL"`
	CookieName     string        `mapstructure:"COOKIE_NAME"`
	CookieSameSite string        `mapstructure:"COOKIE_SAMESITE"`
	CookieSecure   bool          `mapstructure:"COOKIE_SECURE"`
	BcryptCost     int           `mapstructure:"BCRYPT_COST"`

	FrontendURL        string `mapstructure:"FRONTEND_URL"`
	StaticDir          string `mapstructure:"STATIC_DIR"`
	RateLimitPerMinute int    `mapstructure:"RATE_LIMIT_PER_MINUTE"`

	UploadDir        string        `mapstructure:"UPLOAD_DIR"`
	MaxUploadBytes   int64         `mapstructure:"MAX_UPLOAD_BYTES"`
	DocSweepSchedule string        `mapstructure:"DOC_SWEEP_SCHEDULE"`
	DocSweepGrace    time.Duration `mapstructure:"DOC_SWEEP_GRACE"`

	DefaultInterestRate float64 `mapstructure:"DEFAULT_INTEREST_RATE"`

	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`

	AdminEmail     string `mapstructure:"ADMIN_EMAIL"`
	AdminPassword  string `mapstructure:"ADMIN_PASSWORD"`
	AdminFirstName string `mapstructure:"ADMIN_FIRST_NAME"`
	AdminLastName  string `mapstructure:"ADMIN_LAST_NAME"`
}

var defaults = map[string]any{
	"APP_PORT": "8080",
	"APP_ENV":  "development",

	"DB_DRIVER":       "mysql",
	"MYSQL_HOST":      "mysql",
	"MYSQL_PORT":      "3306",
	"MYSQL_DB":        "lending",
	"MYSQL_USER":      "lending",
	"MYSQL_PASS":      "lending",
	"DATABASE_URL":    "",
	"SQLITE_PATH":     "lending.db",
	"DB_AUTO_MIGRATE": true,

	"REDIS_ADDR":              "",
	"REDIS_PASSWORD":          "",
	"REDIS_DB":                0,
	"IDEMPOTENCY_TTL_SECONDS": 300,

	"JWT_SECRET":      defaultJWTSecret,
	"SESSION_TTL":     "168h",
	"COOKIE_NAME":     "lending_session",
	"COOKIE_SAMESITE": "",
	"COOKIE_SECURE":   false,
	"BCRYPT_COST":     10,

	"FRONTEND_URL":          "http://localhost:8000",
	"STATIC_DIR":            "",
	"RATE_LIMIT_PER_MINUTE": 200,

	"UPLOAD_DIR":         "uploads",
	"MAX_UPLOAD_BYTES":   20 * 1024 * 1024,
	"DOC_SWEEP_SCHEDULE": "@every 1h",
	"DOC_SWEEP_GRACE":    "1h",

	"DEFAULT_INTEREST_RATE": 10.0,

	"LOG_LEVEL":  "info",
	"LOG_FORMAT": "text",

	"ADMIN_EMAIL":      "admin@example.com",
	"ADMIN_PASSWORD":   "",
	"ADMIN_FIRST_NAME": "Admin",
	"ADMIN_LAST_NAME":  "",
}

// Load reads configuration from the environment. Call godotenv first if a
// .env file should be honoured.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	for k, d := range defaults {
		v.SetDefault(k, d)
		_ = v.BindEnv(k)
	}

	c := &Config{}
	if err := v.Unmarshal(c); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	c.DBDriver = strings.ToLower(strings.TrimSpace(c.DBDriver))
	c.AppEnv = strings.ToLower(strings.TrimSpace(c.AppEnv))
	return c, nil
}

func (c *Config) IsProduction() bool { return c.AppEnv == "production" }

func (c *Config) Validate() error {
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	switch c.DBDriver {
	case "mysql":
		if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
			return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
		}
		// ensure port is valid
		if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
			return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
		}
	case "postgres":
		if c.DatabaseURL == "" {
			return errors.New("missing DATABASE_URL for postgres")
		}
		if _, err := url.Parse(c.DatabaseURL); err != nil {
			return fmt.Errorf("invalid DATABASE_URL: %w", err)
		}
	case "sqlite":
		if c.SQLitePath == "" {
			return errors.New("missing SQLITE_PATH")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q (mysql|postgres|sqlite)", c.DBDriver)
	}
	if c.JWTSecret == "" {
		return errors.New("missing JWT_SECRET")
	}
	if c.IsProduction() && c.JWTSecret == defaultJWTSecret {
		return errors.New("JWT_SECRET must be set in production")
	}
	if c.SessionTTL <= 0 {
		return errors.New("SESSION_TTL must be positive")
	}
	if c.MaxUploadBytes <= 0 {
		return errors.New("MAX_UPLOAD_BYTES must be positive")
	}
	switch strings.ToLower(c.CookieSameSite) {
	case "", "lax", "strict", "none":
	default:
		return fmt.Errorf("invalid COOKIE_SAMESITE %q", c.CookieSameSite)
	}
	return nil
}

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// parseTime needed for DATETIME
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}

func (c *Config) PostgresDSN() string { return strings.TrimSpace(c.DatabaseURL) }

// DSN returns the connection string for the configured driver.
func (c *Config) DSN() string {
	switch c.DBDriver {
	case "postgres":
		return c.PostgresDSN()
	case "sqlite":
		return c.SQLitePath
	default:
		return c.MySQLDSN()
	}
}

// CookieSecurity resolves the Secure and SameSite attributes of the session
// cookie: secure deployments default to SameSite=None, plain HTTP to Lax.
func (c *Config) CookieSecurity() (secure bool, sameSite string) {
	secure = c.CookieSecure || c.IsProduction()
	sameSite = "lax"
	if secure {
		sameSite = "none"
	}
	if s := strings.ToLower(strings.TrimSpace(c.CookieSameSite)); s != "" {
		sameSite = s
	}
	return secure, sameSite
}

func (c *Config) IdempotencyTTL() time.Duration {
	return time.Duration(c.IdempTTLSecs) * time.Second
}
