package database

import (
	"database/sql"

	"github.com/sirupsen/logrus"
)

// RunMigrations applies the schema. Every statement is idempotent so
// the app can run it on every startup.
func RunMigrations(db *sql.DB) error {
	logrus.Info("Running database migrations...")

	statements := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto`,

		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			username VARCHAR(50) NOT NULL,
			email VARCHAR(255) NOT NULL,
			password VARCHAR(100) NOT NULL,
			role VARCHAR(20) NOT NULL DEFAULT 'admin',
			is_active BOOLEAN NOT NULL DEFAULT true,
			last_login TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS users_username_key ON users (username)`,
		// lower() so A@x.com and a@x.com collide even if a write path
		// skips normalization.
		`CREATE UNIQUE INDEX IF NOT EXISTS users_email_lower_key ON users (lower(email))`,

		`CREATE TABLE IF NOT EXISTS sessions (
			id UUID PRIMARY KEY,
			user_id UUID REFERENCES users(id) ON DELETE CASCADE,
			username VARCHAR(50) NOT NULL DEFAULT '',
			email VARCHAR(255) NOT NULL DEFAULT '',
			role VARCHAR(20) NOT NULL DEFAULT '',
			is_authenticated BOOLEAN NOT NULL DEFAULT false,
			return_to TEXT,
			expires_at TIMESTAMPTZ NOT NULL,
			last_refreshed_at TIMESTAMPTZ NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS sessions_expires_at_idx ON sessions (expires_at)`,

		`CREATE TABLE IF NOT EXISTS inquiries (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			kind VARCHAR(10) NOT NULL,
			name VARCHAR(100) NOT NULL,
			email VARCHAR(255) NOT NULL,
			phone VARCHAR(30) NOT NULL,
			wedding_date TIMESTAMPTZ,
			package VARCHAR(20),
			guest_count VARCHAR(20),
			budget VARCHAR(20),
			message TEXT NOT NULL,
			status VARCHAR(20) NOT NULL DEFAULT 'new',
			priority VARCHAR(10),
			source VARCHAR(50) NOT NULL DEFAULT 'website',
			notes VARCHAR(500),
			submitted_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			last_contacted_at TIMESTAMPTZ,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS inquiries_submitted_at_idx ON inquiries (submitted_at DESC)`,
		`CREATE INDEX IF NOT EXISTS inquiries_status_idx ON inquiries (status)`,
		`CREATE INDEX IF NOT EXISTS inquiries_kind_idx ON inquiries (kind)`,
		`CREATE INDEX IF NOT EXISTS inquiries_email_idx ON inquiries (email)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			logrus.WithError(err).Error("Migration statement failed")
			return err
		}
	}

	logrus.Info("Database migrations completed successfully")
	return nil
}
