package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
)

const (
	AuthModeDev    = "dev"
	AuthModeJWT    = "jwt"
	AuthModeRemote = "remote"
)

type Config struct {
	Port      string `mapstructure:"PORT"`
	Env       string `mapstructure:"ENV"`
	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`
	AppName   string `mapstructure:"APP_NAME"`

	// Sin DB_DSN se usa almacenamiento en memoria.
	DBDSN string `mapstructure:"DB_DSN"`
	// Si viene, la configuración de usuario se guarda en este archivo JSON.
	SettingsFile string `mapstructure:"SETTINGS_FILE"`
	Timezone     string `mapstructure:"TIMEZONE"`

	AuthMode         string `mapstructure:"AUTH_MODE"`
	JWTSecret        string `mapstructure:"JWT_SECRET"`
	JWTIssuer        string `mapstructure:"JWT_ISSUER"`
	AuthRemoteURL    string `mapstructure:"AUTH_REMOTE_URL"`
	AuthRemoteAPIKey string `mapstructure:"AUTH_REMOTE_API_KEY"`

	AlertSweepCron string `mapstructure:"ALERT_SWEEP_CRON"`
	UpcomingLimit  int    `mapstructure:"UPCOMING_LIMIT"`
}

var keys = []string{
	"PORT", "ENV", "LOG_LEVEL", "LOG_FORMAT", "APP_NAME",
	"DB_DSN", "SETTINGS_FILE", "TIMEZONE",
	"AUTH_MODE", "JWT_SECRET", "JWT_ISSUER", "AUTH_REMOTE_URL", "AUTH_REMOTE_API_KEY",
	"ALERT_SWEEP_CRON", "UPCOMING_LIMIT",
}

// Load lee .env (si existe) y el entorno; el entorno tiene prioridad.
func Load() (*Config, error) {
	return load(".env")
}

func load(envFile string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(envFile)
	v.SetConfigType("env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("APP_NAME", "medication-tracker")
	v.SetDefault("TIMEZONE", "Local")
	v.SetDefault("AUTH_MODE", AuthModeDev)
	v.SetDefault("ALERT_SWEEP_CRON", "0 7 * * *")
	v.SetDefault("UPCOMING_LIMIT", 3)

	// Bind explícito para que Unmarshal vea variables sin default.
	for _, k := range keys {
		_ = v.BindEnv(k)
	}

	// .env es opcional, pero si existe tiene que ser válido.
	if err := v.ReadInConfig(); err != nil && !envFileMissing(err) {
		return nil, fmt.Errorf("read %s: %w", envFile, err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.AuthMode = strings.ToLower(strings.TrimSpace(cfg.AuthMode))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func envFileMissing(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)
}

func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Port) == "" {
		errs = append(errs, errors.New("PORT is required"))
	}
	if _, err := c.Location(); err != nil {
		errs = append(errs, fmt.Errorf("TIMEZONE: %w", err))
	}

	switch c.AuthMode {
	case AuthModeDev:
		if c.IsProduction() {
			errs = append(errs, errors.New("AUTH_MODE=dev is not allowed with ENV=production"))
		}
	case AuthModeJWT:
		if len(c.JWTSecret) < 16 {
			errs = append(errs, errors.New("JWT_SECRET must have at least 16 characters"))
		}
	case AuthModeRemote:
		if strings.TrimSpace(c.AuthRemoteURL) == "" {
			errs = append(errs, errors.New("AUTH_REMOTE_URL is required with AUTH_MODE=remote"))
		}
	default:
		errs = append(errs, fmt.Errorf("AUTH_MODE must be dev, jwt or remote (got %q)", c.AuthMode))
	}

	if c.AlertSweepCron != "" {
		if _, err := cron.ParseStandard(c.AlertSweepCron); err != nil {
			errs = append(errs, fmt.Errorf("ALERT_SWEEP_CRON: %w", err))
		}
	}
	if c.UpcomingLimit < 1 || c.UpcomingLimit > 50 {
		errs = append(errs, errors.New("UPCOMING_LIMIT must be between 1 and 50"))
	}

	return errors.Join(errs...)
}

// Location resuelve TIMEZONE ("Local", "UTC" o un nombre IANA).
func (c *Config) Location() (*time.Location, error) {
	tz := strings.TrimSpace(c.Timezone)
	if tz == "" || strings.EqualFold(tz, "local") {
		return time.Local, nil
	}
	return time.LoadLocation(tz)
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func (c *Config) Addr() string {
	return ":" + strings.TrimPrefix(c.Port, ":")
}
