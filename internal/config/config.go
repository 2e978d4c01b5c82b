package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v8"
	"golang.org/x/text/language"

	"ledger/internal/log"
)

// Storage backends
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

var validBackends = []string{BackendMemory, BackendFile, BackendSQLite}

type Config struct {
	// HTTP Server
	Port string `env:"PORT" envDefault:"8081"`

	// Storage
	DataBackend  string `env:"DATA_BACKEND" envDefault:"sqlite"`
	DataDir      string `env:"DATA_DIR" envDefault:"./data"`
	SQLiteDBPath string `env:"SQLITE_DB_PATH" envDefault:"./data/ledger.db"`

	// AMQP, disabled when the URL is empty
	AMQPURL      string `env:"AMQP_URL"`
	AMQPExchange string `env:"AMQP_EXCHANGE" envDefault:"ledger"`
	AMQPQueue    string `env:"AMQP_QUEUE" envDefault:"ledger_changes"`

	// Derived view cache
	CacheSize int           `env:"CACHE_SIZE" envDefault:"256"`
	CacheTTL  time.Duration `env:"CACHE_TTL" envDefault:"5m"`

	// Mutations per client per minute, 0 disables the limit
	RateLimitWrites int `env:"RATE_LIMIT_WRITES" envDefault:"120"`

	// Presentation
	CurrencySymbol  string `env:"CURRENCY_SYMBOL" envDefault:"$"`
	CollationLocale string `env:"COLLATION_LOCALE" envDefault:"en"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads the configuration from the process environment.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

// LoadFrom reads the configuration from environ instead of the process
// environment.
func LoadFrom(environ map[string]string) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Environment: environ}); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

// AMQPEnabled reports whether change notifications should be published.
func (c *Config) AMQPEnabled() bool {
	return c.AMQPURL != ""
}

// Locale returns the collation tag. Validate guarantees it parses.
func (c *Config) Locale() language.Tag {
	tag, err := language.Parse(c.CollationLocale)
	if err != nil {
		return language.English
	}
	return tag
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if !slices.Contains(validBackends, c.DataBackend) {
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, validBackends))
	}

	switch c.DataBackend {
	case BackendSQLite:
		if c.SQLiteDBPath == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
		} else if err := ensureDir(filepath.Dir(c.SQLiteDBPath)); err != nil {
			errors = append(errors, fmt.Sprintf("cannot create SQLite database directory: %v", err))
		}
	case BackendFile:
		if c.DataDir == "" {
			errors = append(errors, "data directory cannot be empty when using file backend")
		} else if err := ensureDir(c.DataDir); err != nil {
			errors = append(errors, fmt.Sprintf("cannot create data directory: %v", err))
		}
	}

	if c.AMQPEnabled() {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errors = append(errors, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	if c.CacheSize < 1 {
		errors = append(errors, fmt.Sprintf("invalid cache size %d: must be at least 1", c.CacheSize))
	} else if c.CacheSize > 100000 {
		errors = append(errors, fmt.Sprintf("invalid cache size %d: must be at most 100000", c.CacheSize))
	}
	if c.CacheTTL < 0 {
		errors = append(errors, fmt.Sprintf("invalid cache ttl %v: must not be negative", c.CacheTTL))
	}

	if c.RateLimitWrites < 0 {
		errors = append(errors, fmt.Sprintf("invalid write rate limit %d: must not be negative", c.RateLimitWrites))
	}

	if strings.TrimSpace(c.CurrencySymbol) == "" {
		errors = append(errors, "currency symbol cannot be empty")
	}
	if _, err := language.Parse(c.CollationLocale); err != nil {
		errors = append(errors, fmt.Sprintf("invalid collation locale '%s': %v", c.CollationLocale, err))
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be debug, info, warn or error", c.LogLevel))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func ensureDir(dir string) error {
	if dir == "." || dir == "" {
		return nil
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return os.MkdirAll(dir, 0o755)
	}
	return nil
}
