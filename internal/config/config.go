// Package config loads and validates application configuration from
// the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Ledger is one configured invoice dataset: a display name and the
// spreadsheet (or local store) identifier behind it.
type Ledger struct {
	Name string
	ID   string
}

type Config struct {
	// HTTP Server
	Port string

	// Data backend: memory, sheets or sqlite
	DataBackend string

	// Ledgers in configured order; the first is the UI default.
	Ledgers []Ledger

	// Worksheet to read inside each ledger.
	SheetName string

	// SQLite backend
	SQLiteDBPath string

	// Access gate; an empty password disables the gate.
	AppPassword   string
	SessionSecret string

	// Document branding
	CompanyName    string
	CompanyTagLine string

	// Batch generation
	BatchWorkers int

	// Optional SMTP delivery of batch archives
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SenderEmail  string
	BatchEmailTo []string
}

func Load() *Config {
	cfg := &Config{
		Port:        getEnv("PORT", "8081"),
		DataBackend: getEnv("DATA_BACKEND", "memory"),

		Ledgers:   ParseLedgers(getEnv("LEDGERS", "")),
		SheetName: getEnv("LEDGER_SHEET_NAME", "Invoice Wise"),

		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/ledger.db"),

		AppPassword:   getEnv("APP_PASSWORD", ""),
		SessionSecret: getEnv("SESSION_SECRET", ""),

		CompanyName:    getEnv("COMPANY_NAME", "Leeds Gifts"),
		CompanyTagLine: getEnv("COMPANY_TAGLINE", ""),

		BatchWorkers: getEnvInt("BATCH_WORKERS", 4),

		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getEnvInt("SMTP_PORT", 587),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		SenderEmail:  getEnv("SENDER_EMAIL", ""),
		BatchEmailTo: splitList(getEnv("BATCH_EMAIL_TO", "")),
	}
	return cfg
}

// ParseLedgers reads the LEDGERS value: semicolon-separated Name=ID
// pairs, e.g. "Al Ain=1abc...;Ajman=1def...". Order is preserved.
func ParseLedgers(raw string) []Ledger {
	var out []Ledger
	for _, pair := range strings.Split(raw, ";") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		name, id, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		id = strings.TrimSpace(id)
		if !ok || name == "" || id == "" {
			continue
		}
		out = append(out, Ledger{Name: name, ID: id})
	}
	return out
}

// LedgerID resolves a configured ledger name to its identifier.
func (c *Config) LedgerID(name string) (string, bool) {
	for _, l := range c.Ledgers {
		if l.Name == name {
			return l.ID, true
		}
	}
	return "", false
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	var errs []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch c.DataBackend {
	case "memory", "sheets", "sqlite":
	default:
		errs = append(errs, fmt.Sprintf("invalid data backend '%s': must be one of [memory sheets sqlite]", c.DataBackend))
	}

	if c.DataBackend == "sheets" && len(c.Ledgers) == 0 {
		errs = append(errs, "LEDGERS must name at least one ledger when using the sheets backend")
	}
	if c.SheetName == "" {
		errs = append(errs, "ledger sheet name cannot be empty")
	}

	if c.DataBackend == "sqlite" {
		if c.SQLiteDBPath == "" {
			errs = append(errs, "SQLite database path cannot be empty when using sqlite backend")
		} else if dir := filepath.Dir(c.SQLiteDBPath); dir != "." && dir != "" {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				if err := os.MkdirAll(dir, 0755); err != nil {
					errs = append(errs, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
				}
			}
		}
	}

	if c.AppPassword != "" && c.SessionSecret == "" {
		errs = append(errs, "SESSION_SECRET is required when APP_PASSWORD is set")
	}

	if c.BatchWorkers < 1 {
		errs = append(errs, fmt.Sprintf("invalid batch workers %d: must be at least 1", c.BatchWorkers))
	} else if c.BatchWorkers > 64 {
		errs = append(errs, fmt.Sprintf("invalid batch workers %d: must be at most 64", c.BatchWorkers))
	}

	if c.SMTPHost != "" {
		if c.SenderEmail == "" {
			errs = append(errs, "SENDER_EMAIL is required when SMTP_HOST is set")
		}
		if len(c.BatchEmailTo) == 0 {
			errs = append(errs, "BATCH_EMAIL_TO is required when SMTP_HOST is set")
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

// MailEnabled reports whether batch archives should be delivered over
// SMTP.
func (c *Config) MailEnabled() bool {
	return c.SMTPHost != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func splitList(raw string) []string {
	var out []string
	for _, v := range strings.Split(raw, ",") {
		v = strings.TrimSpace(v)
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
