package app

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	SessionSecret    string // Required: HMAC secret for session tokens
	ActivationSecret string // Required: HMAC secret for activation tokens
	Issuer           string // Optional: issuer claim for session tokens (default: eventgate)
	PublicURL        string // Optional: external base URL for activation links (default: http://localhost:<port>)

	AutoActivate  bool          // Optional: activate accounts on signup without email confirmation (default: false)
	DefaultRole   string        // Optional: role granted on signup (default: participant)
	ActivationTTL time.Duration // Optional: activation token lifetime (default: 48h)
	PendingTTL    time.Duration // Optional: how long never-activated accounts survive (default: 168h)

	SMTPAddr   string // Optional: SMTP host:port; unset means log-only email delivery
	SMTPSender string // Optional: From address for outbound mail (default: no-reply@localhost)

	AdminUsername string // Optional: seed admin username for an empty database
	AdminEmail    string // Optional: seed admin email
	AdminPassword string // Optional: seed admin password; blank generates one

	DatabaseFile         string        // Optional: path to SQLite database file (default: ./eventgate.db)
	PepperFile           string        // Optional: path to password hashing pepper file (default: ./pepper)
	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 1h)
}

// LoadConfig reads configuration from the environment, after loading a .env
// file if one is present.
func LoadConfig() Config {
	_ = godotenv.Load()

	cfg := Config{
		SessionSecret:        os.Getenv("EVENTGATE_SESSION_SECRET"),
		ActivationSecret:     os.Getenv("EVENTGATE_ACTIVATION_SECRET"),
		Issuer:               getEnvOrDefault("EVENTGATE_ISSUER", "eventgate"),
		PublicURL:            os.Getenv("EVENTGATE_PUBLIC_URL"),
		AutoActivate:         getEnvBoolOrDefault("EVENTGATE_AUTO_ACTIVATE", false),
		DefaultRole:          getEnvOrDefault("EVENTGATE_DEFAULT_ROLE", "participant"),
		ActivationTTL:        getEnvDurationOrDefault("EVENTGATE_ACTIVATION_TTL", 48*time.Hour),
		PendingTTL:           getEnvDurationOrDefault("EVENTGATE_PENDING_TTL", 7*24*time.Hour),
		SMTPAddr:             os.Getenv("EVENTGATE_SMTP_ADDR"),
		SMTPSender:           getEnvOrDefault("EVENTGATE_SMTP_SENDER", "no-reply@localhost"),
		AdminUsername:        os.Getenv("EVENTGATE_ADMIN_USERNAME"),
		AdminEmail:           os.Getenv("EVENTGATE_ADMIN_EMAIL"),
		AdminPassword:        os.Getenv("EVENTGATE_ADMIN_PASSWORD"),
		DatabaseFile:         getEnvOrDefault("EVENTGATE_DATABASE_FILE", "eventgate.db"),
		PepperFile:           getEnvOrDefault("EVENTGATE_PEPPER_FILE", "pepper"),
		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
	}

	if cfg.PublicURL == "" {
		cfg.PublicURL = "http://localhost:" + strconv.Itoa(cfg.Port)
	}

	return cfg
}

// Validate rejects configurations the service cannot safely start with.
func (c Config) Validate() error {
	if c.SessionSecret == "" {
		return errors.New("EVENTGATE_SESSION_SECRET is required")
	}
	if c.ActivationSecret == "" {
		return errors.New("EVENTGATE_ACTIVATION_SECRET is required")
	}
	if c.SessionSecret == c.ActivationSecret {
		return errors.New("session and activation secrets must differ")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if boolValue, err := strconv.ParseBool(value); err == nil {
		return boolValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	return defaultValue
}
