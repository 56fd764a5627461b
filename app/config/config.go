package config

import (
	"database/sql"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type Config struct {
	DB   *sql.DB
	SMTP SMTPConfig

	DatabaseURL string
	MailTo      string
	Port        string
	Production  bool

	// AdminFailClosed blocks admin routes with a 503 when the store
	// is unreachable. Always treated as true in production.
	AdminFailClosed bool

	// Degraded is set when the store was unreachable at startup.
	// Public pages keep serving; form posts skip persistence.
	Degraded bool
}

// Load reads configuration from the environment, after loading a .env
// file if one is present.
func Load() *Config {
	if err := godotenv.Load(); err == nil {
		logrus.Debug("Loaded environment from .env")
	}

	cfg := &Config{
		DatabaseURL:     getenv("DATABASE_URL", "postgres://postgres@localhost:5432/royalwedding?sslmode=disable"),
		MailTo:          getenv("MAIL_TO", "info@royalweddingully.com"),
		Port:            getenv("PORT", "3000"),
		Production:      os.Getenv("APP_ENV") == "production",
		AdminFailClosed: getenv("ADMIN_FAIL_CLOSED", "true") != "false",
		SMTP: SMTPConfig{
			Host:     getenv("SMTP_HOST", "smtp.gmail.com"),
			Port:     getenvInt("SMTP_PORT", 587),
			Username: os.Getenv("SMTP_USER"),
			Password: os.Getenv("SMTP_PASS"),
			From:     getenv("SMTP_FROM", os.Getenv("SMTP_USER")),
		},
	}
	if cfg.Production {
		cfg.AdminFailClosed = true
	}
	return cfg
}

// ConnectDB opens the Postgres pool and verifies it with a ping.
// In production an unreachable store is fatal; otherwise the app
// continues in degraded mode and admin routes fail closed.
func (c *Config) ConnectDB() error {
	db, err := sql.Open("postgres", c.DatabaseURL)
	if err != nil {
		return err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	c.DB = db

	if err := db.Ping(); err != nil {
		if c.Production {
			return err
		}
		c.Degraded = true
		logrus.WithError(err).Warn("Database unreachable, continuing in degraded mode")
		return nil
	}

	logrus.Info("Database connected successfully")
	return nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
