// Package config handles loading and parsing application configuration.
// It supports two sources (in priority order):
//  1. An environment variable:  CONFIG_PATH=/path/to/config.yaml
//  2. A command-line flag:      --config=/path/to/config.yaml
//
// The parsed values are returned as a *Config pointer so the struct is
// shared by reference rather than copied everywhere.
package config

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the root configuration structure.
// Every field maps to a key in the YAML file AND can be overridden
// by the corresponding environment variable (env:"...").
//
// env-required:"true" means the app refuses to start if that value is
// missing — better to crash at boot than to silently use a wrong default.
type Config struct {
	// Env controls log format and verbosity.
	// Valid values: "dev", "staging", "prod"
	Env string `yaml:"env" env:"ENV" env-required:"true"`

	// StoragePath is the filesystem path to the SQLite .db file.
	StoragePath string `yaml:"storage_path" env:"STORAGE_PATH" env-required:"true"`

	// Timezone is the IANA zone used for registration timestamps and
	// receipt dates. The business operates out of Accra.
	Timezone string `yaml:"timezone" env:"TIMEZONE" env-default:"Africa/Accra"`

	// StudentIDPrefix is the leading token of generated student IDs,
	// e.g. "SPAC" → SPAC2026-001.
	StudentIDPrefix string `yaml:"student_id_prefix" env:"STUDENT_ID_PREFIX" env-default:"SPAC"`

	// HTTPServer is embedded (not a pointer) so its fields are accessible
	// directly on Config: cfg.HTTPServer.Addr.
	HTTPServer `yaml:"http_server"`

	SMTP    SMTP    `yaml:"smtp"`
	Pricing Pricing `yaml:"pricing"`
}

// HTTPServer holds settings specific to the HTTP server.
// Nested under http_server: in the YAML file.
type HTTPServer struct {
	// Addr is the TCP address the server listens on, e.g. "localhost:8082".
	Addr string `yaml:"address" env:"HTTP_SERVER_ADDR" env-required:"true"`
}

// SMTP holds the outbound mail relay settings. The password is expected
// to come from the environment (e.g. a Gmail app password via .env),
// never from the YAML file checked into the repository.
type SMTP struct {
	Host string `yaml:"host" env:"SMTP_HOST" env-default:"smtp.gmail.com"`
	Port int    `yaml:"port" env:"SMTP_PORT" env-default:"465"`

	// Username doubles as the From address.
	Username string `yaml:"username" env:"SMTP_USERNAME"`
	Password string `yaml:"-"        env:"SMTP_PASSWORD"`

	// FromName is the display name on outgoing mail.
	FromName string `yaml:"from_name" env:"SMTP_FROM_NAME" env-default:"Spacbot Ltd"`

	// AdminEmail receives the new-sign-up alert with the CSV export
	// attached. Defaults to the sender mailbox when empty.
	AdminEmail string `yaml:"admin_email" env:"SMTP_ADMIN_EMAIL"`

	// MaxAttempts and RetryBackoff drive the notification outbox:
	// a failed send is retried up to MaxAttempts times, waiting
	// RetryBackoff, 2×RetryBackoff, 4×RetryBackoff, ... between tries.
	MaxAttempts  int           `yaml:"max_attempts" env:"SMTP_MAX_ATTEMPTS" env-default:"3"`
	RetryBackoff time.Duration `yaml:"retry_backoff" env:"SMTP_RETRY_BACKOFF" env-default:"5s"`
}

// Pricing is the two-tier program fee table in GHS. The fee depends on
// the age category only, not on the program chosen.
type Pricing struct {
	Below13     float64 `yaml:"below_13" env:"PRICE_BELOW_13" env-default:"1000"`
	AtOrAbove13 float64 `yaml:"at_or_above_13" env:"PRICE_AT_OR_ABOVE_13" env-default:"1500"`
}

// AdminRecipient returns the admin alert mailbox, falling back to the
// sender address when none is configured (the original deployment mailed
// sign-up alerts back to its own sending account).
func (s SMTP) AdminRecipient() string {
	if s.AdminEmail != "" {
		return s.AdminEmail
	}
	return s.Username
}

// MustLoad reads, validates, and returns the application config.
//
// The name "MustLoad" follows a Go convention: functions prefixed with
// "Must" are allowed to panic/fatal on failure. Callers do not need to
// check a returned error — if this function returns, the config is valid.
func MustLoad() *Config {
	var configPath string

	// Source 1: environment variable. Useful in Docker / Kubernetes
	// where env vars are the standard way to pass config to a container.
	configPath = os.Getenv("CONFIG_PATH")

	// Source 2: command-line flag. Useful when running locally:
	//   go run ./cmd/spacbot-api --config=config/local.yaml
	if configPath == "" {
		flags := flag.String("config", "", "Path to the configuration YAML file")
		flag.Parse()
		configPath = *flags
	}

	if configPath == "" {
		log.Fatal("config path is not set: use --config flag or CONFIG_PATH env var")
	}

	// Verify the file exists before trying to read it, so we give a
	// clear message rather than a cryptic "open: no such file" later.
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("config file does not exist: %s", configPath)
	}

	// cleanenv.ReadConfig reads the YAML file and populates the struct.
	// It also reads any env:"..." tagged fields from the environment,
	// and validates env-required:"true" constraints.
	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err.Error())
	}

	return &cfg
}

// Location resolves the configured timezone. An unknown zone is a
// deployment mistake, so it is fatal at startup rather than silently
// falling back to UTC timestamps in the students table.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		log.Fatalf("invalid timezone %q: %s", c.Timezone, err.Error())
	}
	return loc
}
