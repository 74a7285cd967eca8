package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	DatabaseDriver string
	DatabaseURL    string

	SecretKey       string
	SecuritySalt    string
	RegistrationKey string

	VerificationTokenTTL time.Duration
	AccessTokenTTL       time.Duration
	RefreshTokenTTL      time.Duration

	HTTPAddress      string
	PublicBaseURL    string
	AllowedOrigins   []string
	AllowCredentials bool
	LogLevel         string

	RedisAddress  string
	RedisPassword string
	RedisDB       int
	MenuCacheTTL  time.Duration

	MailTransport     string
	MailServer        string
	MailPort          int
	MailUsername      string
	MailPassword      string
	MailDefaultSender string

	KafkaBrokers []string
	KafkaTopic   string
}

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	MailSMTP  = "smtp"
	MailKafka = "kafka"
	MailLog   = "log"
)

var required = []string{
	"DATABASE_URL",
	"SECRET_KEY",
	"SECURITY_SALT",
	"REGISTRATION_KEY",
}

// Load reads the process configuration once at startup. A .env file in the
// working directory is honoured but never overrides the real environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("DATABASE_DRIVER", DriverPostgres)
	v.SetDefault("VERIFICATION_TOKEN_TTL", "180s")
	v.SetDefault("ACCESS_TOKEN_TTL", "1h")
	v.SetDefault("REFRESH_TOKEN_TTL", "12h")
	v.SetDefault("HTTP_ADDRESS", ":8080")
	v.SetDefault("PUBLIC_BASE_URL", "http://localhost:8080")
	v.SetDefault("MENU_CACHE_TTL", "5m")
	v.SetDefault("MAIL_TRANSPORT", MailLog)
	v.SetDefault("MAIL_SERVER", "smtp.gmail.com")
	v.SetDefault("MAIL_PORT", 587)
	v.SetDefault("KAFKA_TOPIC", "mail.verification")

	for _, key := range required {
		if err := v.BindEnv(key); err != nil {
			return nil, err
		}
		if v.GetString(key) == "" {
			return nil, fmt.Errorf("%s is not set", key)
		}
	}

	cfg := &Config{
		DatabaseDriver:       strings.ToLower(v.GetString("DATABASE_DRIVER")),
		DatabaseURL:          v.GetString("DATABASE_URL"),
		SecretKey:            v.GetString("SECRET_KEY"),
		SecuritySalt:         v.GetString("SECURITY_SALT"),
		RegistrationKey:      v.GetString("REGISTRATION_KEY"),
		VerificationTokenTTL: v.GetDuration("VERIFICATION_TOKEN_TTL"),
		AccessTokenTTL:       v.GetDuration("ACCESS_TOKEN_TTL"),
		RefreshTokenTTL:      v.GetDuration("REFRESH_TOKEN_TTL"),
		HTTPAddress:          v.GetString("HTTP_ADDRESS"),
		PublicBaseURL:        strings.TrimRight(v.GetString("PUBLIC_BASE_URL"), "/"),
		AllowedOrigins:       splitList(v.GetString("ALLOWED_ORIGINS")),
		AllowCredentials:     v.GetBool("ALLOW_CREDENTIALS"),
		LogLevel:             v.GetString("LOG_LEVEL"),
		RedisAddress:         v.GetString("REDIS_ADDRESS"),
		RedisPassword:        v.GetString("REDIS_PASSWORD"),
		RedisDB:              v.GetInt("REDIS_DB"),
		MenuCacheTTL:         v.GetDuration("MENU_CACHE_TTL"),
		MailTransport:        strings.ToLower(v.GetString("MAIL_TRANSPORT")),
		MailServer:           v.GetString("MAIL_SERVER"),
		MailPort:             v.GetInt("MAIL_PORT"),
		MailUsername:         v.GetString("MAIL_USERNAME"),
		MailPassword:         v.GetString("MAIL_PASSWORD"),
		MailDefaultSender:    v.GetString("MAIL_DEFAULT_SENDER"),
		KafkaBrokers:         splitList(v.GetString("KAFKA_BROKERS")),
		KafkaTopic:           v.GetString("KAFKA_TOPIC"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.DatabaseDriver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unsupported DATABASE_DRIVER %q", c.DatabaseDriver)
	}

	if c.VerificationTokenTTL <= 0 || c.AccessTokenTTL <= 0 || c.RefreshTokenTTL <= 0 {
		return fmt.Errorf("token TTLs must be positive")
	}

	switch c.MailTransport {
	case MailLog:
	case MailSMTP:
		if c.MailUsername == "" || c.MailPassword == "" {
			return fmt.Errorf("MAIL_USERNAME and MAIL_PASSWORD are required for smtp transport")
		}
		if c.MailDefaultSender == "" {
			c.MailDefaultSender = c.MailUsername
		}
	case MailKafka:
		if len(c.KafkaBrokers) == 0 {
			return fmt.Errorf("KAFKA_BROKERS is required for kafka transport")
		}
	default:
		return fmt.Errorf("unsupported MAIL_TRANSPORT %q", c.MailTransport)
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
