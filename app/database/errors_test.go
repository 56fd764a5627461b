package database

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Abburizal/royal-wedding-byullysjah/app/models"
)

func TestStoreErr(t *testing.T) {
	assert.NoError(t, storeErr(nil))

	assert.ErrorIs(t, storeErr(sql.ErrNoRows), models.ErrNotFound)
	assert.ErrorIs(t, storeErr(driver.ErrBadConn), models.ErrStoreUnavailable)
	assert.ErrorIs(t, storeErr(sql.ErrConnDone), models.ErrStoreUnavailable)

	connRefused := &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}
	assert.ErrorIs(t, storeErr(connRefused), models.ErrStoreUnavailable)
	assert.ErrorIs(t, storeErr(fmt.Errorf("query users: %w", connRefused)), models.ErrStoreUnavailable)

	// Anything else passes through untouched.
	other := errors.New("syntax error")
	assert.Equal(t, other, storeErr(other))
}

func TestDuplicateField(t *testing.T) {
	dup := duplicateField(&pq.Error{Code: "23505", Constraint: "users_email_lower_key"})
	require.NotNil(t, dup)
	assert.Equal(t, "email", dup.Field)

	dup = duplicateField(&pq.Error{Code: "23505", Constraint: "users_username_key"})
	require.NotNil(t, dup)
	assert.Equal(t, "username", dup.Field)

	assert.Nil(t, duplicateField(&pq.Error{Code: "23503"}), "other pq codes are not duplicates")
	assert.Nil(t, duplicateField(errors.New("nope")))
	assert.Nil(t, duplicateField(nil))
}
