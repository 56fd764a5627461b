package database

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"net"
	"strings"

	"github.com/lib/pq"

	"github.com/Abburizal/royal-wedding-byullysjah/app/models"
)

// uniqueViolation is the Postgres error code for a violated unique
// constraint.
const uniqueViolation = "23505"

// storeErr normalizes driver failures: connection-class errors become
// ErrStoreUnavailable so callers can degrade, sql.ErrNoRows becomes
// ErrNotFound, everything else passes through.
func storeErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return models.ErrNotFound
	}
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) {
		return models.ErrStoreUnavailable
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return models.ErrStoreUnavailable
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return models.ErrStoreUnavailable
	}
	return err
}

// duplicateField maps a unique-violation error to the conflicting
// user field, or returns nil when err is not a unique violation.
func duplicateField(err error) *models.DuplicateError {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || string(pqErr.Code) != uniqueViolation {
		return nil
	}
	field := "username"
	if strings.Contains(pqErr.Constraint, "email") {
		field = "email"
	}
	return &models.DuplicateError{Field: field}
}
