package config

import (
	"os"
	"strconv"
	"time"
)

// PersistMode selects the backing store for OTP records
type PersistMode string

const (
	PersistMemory   PersistMode = "memory"
	PersistPostgres PersistMode = "postgres"
)

// SMTPConfig holds the mail transport credentials
type SMTPConfig struct {
	Host   string
	Port   int
	Secure bool // implicit TLS (465) instead of STARTTLS
	User   string
	Pass   string
	From   string // e.g. "UMKMotion <no-reply@umkmotion.id>"
}

// IsConfigured reports whether the transport has enough settings to dial
func (s SMTPConfig) IsConfigured() bool {
	return s.Host != "" && s.User != "" && s.Pass != ""
}

// OTPConfig holds issuance defaults and the dev-only switches
type OTPConfig struct {
	TTL         time.Duration // default code lifetime
	DevFallback bool          // allow issuance without SMTP credentials
	RevealCode  bool          // include the raw code in HTTP responses
}

// DBConfig holds the Postgres connection settings
type DBConfig struct {
	Host     string
	User     string
	Password string
	Name     string
	Port     string
	SSLMode  string
}

// Config is the single configuration surface of the service.
// It is resolved exactly once at startup; nothing else reads the
// environment at request time.
type Config struct {
	AppName   string
	Port      string
	Env       string // "development" or "production"
	JWTSecret string

	SMTP    SMTPConfig
	OTP     OTPConfig
	Persist PersistMode
	DB      DBConfig
}

// IsDevelopment reports whether dev-only request flags are honored
func (c *Config) IsDevelopment() bool {
	return c.Env != "production"
}

// Load resolves the configuration from the process environment.
// Precedence: process env > .env (godotenv never overrides) > defaults.
func Load() *Config {
	cfg := &Config{
		AppName:   getEnv("APP_NAME", "UMKMotion"),
		Port:      getEnv("PORT", "4000"),
		Env:       getEnv("APP_ENV", "development"),
		JWTSecret: getEnv("JWT_SECRET", "fallback-dev-secret"),

		SMTP: SMTPConfig{
			Host:   getEnv("SMTP_HOST", ""),
			Port:   getEnvInt("SMTP_PORT", 587),
			Secure: getEnvBool("SMTP_SECURE", false),
			User:   getEnv("SMTP_USER", ""),
			Pass:   getEnv("SMTP_PASS", ""),
			From:   getEnv("SMTP_FROM", ""),
		},

		OTP: OTPConfig{
			TTL:         time.Duration(getEnvInt("OTP_TTL_SECONDS", 600)) * time.Second,
			DevFallback: getEnvBool("OTP_DEV_FALLBACK", false),
			RevealCode:  getEnvBool("OTP_REVEAL_CODE", false),
		},

		Persist: PersistMode(getEnv("PERSIST_MODE", string(PersistMemory))),

		DB: DBConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "umkmotion"),
			Port:     getEnv("DB_PORT", "5432"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
	}

	if cfg.SMTP.From == "" {
		cfg.SMTP.From = cfg.SMTP.User
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}
