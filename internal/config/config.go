package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

var ErrMissingRequiredValue = errors.New("missing required value")
var ErrInvalidValue = errors.New("invalid value")

type environment string

const (
	production  environment = "production"
	staging     environment = "staging"
	development environment = "development"
)

const defaultPort = "8080"
const defaultReportCacheTTL = 1 * time.Minute

type Config struct {
	cloudSQLUnixSocketPath string
	dBPassword             string
	dBUsername             string
	sentryDSN              string
	gcpProjectID           string
	port                   string
	defaultUseUTC          bool
	reportCacheTTL         time.Duration
	otelEnabled            bool
	env                    environment
}

func (c *Config) CloudSQLUnixSocketPath() string {
	return c.cloudSQLUnixSocketPath
}

func (c *Config) DBPassword() string {
	return c.dBPassword
}

func (c *Config) DBUsername() string {
	return c.dBUsername
}

func (c *Config) SentryDSN() string {
	return c.sentryDSN
}

// GCPProjectID is empty when logs should not be correlated with Cloud Trace
func (c *Config) GCPProjectID() string {
	return c.gcpProjectID
}

func (c *Config) Port() string {
	return c.port
}

// DefaultUseUTC is the timezone policy used when a request does not specify one
func (c *Config) DefaultUseUTC() bool {
	return c.defaultUseUTC
}

func (c *Config) ReportCacheTTL() time.Duration {
	return c.reportCacheTTL
}

func (c *Config) OTelEnabled() bool {
	return c.otelEnabled
}

func (c *Config) IsProduction() bool {
	return c.env == production
}

func (c *Config) IsStaging() bool {
	return c.env == staging
}

func (c *Config) IsDevelopment() bool {
	return c.env == development
}

// Return a string representation suitable for logging etc
func (c *Config) NonSensitiveString() string {
	return fmt.Sprintf(
		"Config{env: %s, port: %s, defaultUseUTC: %t, reportCacheTTL: %s, otelEnabled: %t, ...}",
		string(c.env),
		c.port,
		c.defaultUseUTC,
		c.reportCacheTTL,
		c.otelEnabled,
	)
}

func ConfigFromEnv() (Config, error) {
	missingKey := func(key string) (Config, error) {
		return Config{}, fmt.Errorf("%w: %s", ErrMissingRequiredValue, key)
	}
	invalidValue := func(key, value string) (Config, error) {
		return Config{}, fmt.Errorf("%w: %s (%s)", ErrInvalidValue, key, value)
	}

	var env environment
	rawEnv, ok := os.LookupEnv("SLUMBER_ENVIRONMENT")
	if !ok {
		return missingKey("SLUMBER_ENVIRONMENT")
	}
	switch rawEnv {
	case "production":
		env = production
	case "staging":
		env = staging
	case "development":
		env = development
	default:
		return invalidValue("SLUMBER_ENVIRONMENT", rawEnv)
	}
	if string(env) == "" {
		panic("logic error: env is empty")
	}

	cloudSQLUnixSocketPath := os.Getenv("CLOUDSQL_UNIX_SOCKET")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbUsername := os.Getenv("DB_USERNAME")
	sentryDSN := os.Getenv("SENTRY_DSN")
	gcpProjectID := os.Getenv("GCP_PROJECT_ID")

	port := os.Getenv("PORT")
	if port == "" {
		port = defaultPort
	}
	if _, err := strconv.ParseUint(port, 10, 16); err != nil {
		return invalidValue("PORT", port)
	}

	defaultUseUTC := false
	if rawUseUTC := os.Getenv("SLUMBER_DEFAULT_USE_UTC"); rawUseUTC != "" {
		parsed, err := strconv.ParseBool(rawUseUTC)
		if err != nil {
			return invalidValue("SLUMBER_DEFAULT_USE_UTC", rawUseUTC)
		}
		defaultUseUTC = parsed
	}

	reportCacheTTL := defaultReportCacheTTL
	if rawTTL := os.Getenv("REPORT_CACHE_TTL"); rawTTL != "" {
		parsed, err := time.ParseDuration(rawTTL)
		if err != nil || parsed <= 0 {
			return invalidValue("REPORT_CACHE_TTL", rawTTL)
		}
		reportCacheTTL = parsed
	}

	otelEnabled := false
	if rawOTelEnabled := os.Getenv("OTEL_ENABLED"); rawOTelEnabled != "" {
		parsed, err := strconv.ParseBool(rawOTelEnabled)
		if err != nil {
			return invalidValue("OTEL_ENABLED", rawOTelEnabled)
		}
		otelEnabled = parsed
	}

	if env == production || env == staging {
		if cloudSQLUnixSocketPath == "" {
			return missingKey("CLOUDSQL_UNIX_SOCKET")
		}
		if dbUsername == "" {
			return missingKey("DB_USERNAME")
		}
		if dbPassword == "" {
			return missingKey("DB_PASSWORD")
		}
		if sentryDSN == "" {
			return missingKey("SENTRY_DSN")
		}
	}

	return Config{
		cloudSQLUnixSocketPath: cloudSQLUnixSocketPath,
		dBPassword:             dbPassword,
		dBUsername:             dbUsername,
		sentryDSN:              sentryDSN,
		gcpProjectID:           gcpProjectID,
		port:                   port,
		defaultUseUTC:          defaultUseUTC,
		reportCacheTTL:         reportCacheTTL,
		otelEnabled:            otelEnabled,
		env:                    env,
	}, nil
}
