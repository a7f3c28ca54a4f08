// Package config reads process configuration from the environment.
// A .env file in the working directory (or its parent) is loaded first
// when present; real environment variables take precedence.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultPort           = "8080"
	DefaultDatabaseURL    = "sqlite:portfolio.db"
	DefaultFrontendURL    = "http://localhost:3000"
	DefaultOperatorEmail  = "thanakrit03b@gmail.com"
	DefaultFromName       = "Thanakrit Portfolio"
	DefaultSignature      = "Thanakrit Pongtanawannagon"
	DefaultEtherealEmail  = "ethereal.user@ethereal.email"
	DefaultEtherealPass   = "ethereal_pass"
	DefaultEtherealAPIURL = "https://api.nodemailer.com/user"
)

// Config holds every setting the server and the tools under cmd/ need.
type Config struct {
	Port        string
	DatabaseURL string
	FrontendURL string
	LogLevel    string
	LogFile     string

	Mail MailConfig

	// ContactRatePerMinute caps contact submissions per client IP.
	ContactRatePerMinute int
}

// MailConfig describes the operator mailbox and the throwaway fallback.
type MailConfig struct {
	OperatorEmail string
	// OperatorPassword is the Gmail app password. Empty selects the
	// throwaway Ethereal transport.
	OperatorPassword string
	FromName         string
	Signature        string

	EtherealEmail    string
	EtherealPassword string
	EtherealAPIURL   string

	SendTimeout time.Duration
}

// Load reads .env (if any) and the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	_ = godotenv.Load("../.env")
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from the given lookup function.
func FromEnv(getenv func(string) string) (*Config, error) {
	get := func(key, def string) string {
		if v := getenv(key); v != "" {
			return v
		}
		return def
	}

	cfg := &Config{
		Port:        get("PORT", DefaultPort),
		DatabaseURL: get("DATABASE_URL", DefaultDatabaseURL),
		FrontendURL: get("FRONTEND_URL", DefaultFrontendURL),
		LogLevel:    get("LOG_LEVEL", "INFO"),
		LogFile:     getenv("LOG_FILE"),
		Mail: MailConfig{
			OperatorEmail:    get("GMAIL_EMAIL", DefaultOperatorEmail),
			OperatorPassword: getenv("GMAIL_APP_PASSWORD"),
			FromName:         get("EMAIL_FROM_NAME", DefaultFromName),
			Signature:        get("SITE_OWNER_NAME", DefaultSignature),
			EtherealEmail:    get("ETHEREAL_EMAIL", DefaultEtherealEmail),
			EtherealPassword: get("ETHEREAL_PASSWORD", DefaultEtherealPass),
			EtherealAPIURL:   get("ETHEREAL_API_URL", DefaultEtherealAPIURL),
			SendTimeout:      10 * time.Second,
		},
		ContactRatePerMinute: 5,
	}

	if v := getenv("MAIL_SEND_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("config: invalid MAIL_SEND_TIMEOUT %q", v)
		}
		cfg.Mail.SendTimeout = d
	}

	if v := getenv("CONTACT_RATE_PER_MINUTE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("config: invalid CONTACT_RATE_PER_MINUTE %q", v)
		}
		cfg.ContactRatePerMinute = n
	}

	return cfg, nil
}

// UsesProductionMail reports whether the authenticated Gmail transport is configured.
func (c MailConfig) UsesProductionMail() bool {
	return c.OperatorPassword != ""
}
