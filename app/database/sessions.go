package database

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/Abburizal/royal-wedding-byullysjah/app/models"
)

// Session lifetime and the lazy-touch threshold: expiry is only
// pushed forward when more than touchInterval has passed since the
// last refresh, so steady traffic does not turn every request into a
// session write.
const (
	SessionTTL    = 7 * 24 * time.Hour
	touchInterval = 24 * time.Hour
)

// SessionStore persists server-side sessions keyed by an opaque id.
type SessionStore struct {
	db *sql.DB
}

func NewSessionStore(db *sql.DB) *SessionStore {
	return &SessionStore{db: db}
}

const sessionColumns = `id, user_id, username, email, role, is_authenticated, return_to, expires_at, last_refreshed_at, created_at`

// Create opens an authenticated session for the user and returns it.
// The id is a random UUID; nothing about the user is derivable from it.
func (s *SessionStore) Create(user *models.User) (*models.Session, error) {
	now := time.Now()
	sess := &models.Session{
		ID:              uuid.NewString(),
		UserID:          user.ID,
		Username:        user.Username,
		Email:           user.Email,
		Role:            user.Role,
		IsAuthenticated: true,
		ExpiresAt:       now.Add(SessionTTL),
		LastRefreshedAt: now,
		CreatedAt:       now,
	}
	return sess, s.insert(sess)
}

// CreateGuest opens an unauthenticated session whose only purpose is
// carrying the pre-login return path.
func (s *SessionStore) CreateGuest(returnTo string) (*models.Session, error) {
	now := time.Now()
	sess := &models.Session{
		ID:              uuid.NewString(),
		IsAuthenticated: false,
		ReturnTo:        returnTo,
		ExpiresAt:       now.Add(SessionTTL),
		LastRefreshedAt: now,
		CreatedAt:       now,
	}
	return sess, s.insert(sess)
}

func (s *SessionStore) insert(sess *models.Session) error {
	query := `INSERT INTO sessions (` + sessionColumns + `)
			  VALUES ($1, NULLIF($2, '')::uuid, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := s.db.Exec(query,
		sess.ID, sess.UserID, sess.Username, sess.Email, sess.Role,
		sess.IsAuthenticated, sess.ReturnTo,
		sess.ExpiresAt, sess.LastRefreshedAt, sess.CreatedAt,
	)
	return storeErr(err)
}

// Get loads a session by id. Malformed ids, unknown ids and expired
// sessions all come back as ErrNotFound; expired rows are reaped on
// the way out, so no background sweep is needed.
func (s *SessionStore) Get(id string) (*models.Session, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, models.ErrNotFound
	}

	sess := &models.Session{}
	var userID, returnTo sql.NullString
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE id = $1`
	err := s.db.QueryRow(query, id).Scan(
		&sess.ID, &userID, &sess.Username, &sess.Email, &sess.Role,
		&sess.IsAuthenticated, &returnTo,
		&sess.ExpiresAt, &sess.LastRefreshedAt, &sess.CreatedAt,
	)
	if err != nil {
		return nil, storeErr(err)
	}
	sess.UserID = userID.String
	sess.ReturnTo = returnTo.String

	if time.Now().After(sess.ExpiresAt) {
		_ = s.Destroy(id)
		return nil, models.ErrNotFound
	}
	return sess, nil
}

// needsRefresh reports whether the lazy-touch threshold has elapsed.
func needsRefresh(sess *models.Session, now time.Time) bool {
	return now.Sub(sess.LastRefreshedAt) > touchInterval
}

// Touch slides the session expiry forward, but only when the last
// refresh is older than the touch interval. Otherwise it is a no-op.
func (s *SessionStore) Touch(sess *models.Session) error {
	now := time.Now()
	if !needsRefresh(sess, now) {
		return nil
	}
	query := `UPDATE sessions SET expires_at = $1, last_refreshed_at = $2 WHERE id = $3`
	_, err := s.db.Exec(query, now.Add(SessionTTL), now, sess.ID)
	if err == nil {
		sess.ExpiresAt = now.Add(SessionTTL)
		sess.LastRefreshedAt = now
	}
	return storeErr(err)
}

// Destroy removes the server-side session state.
func (s *SessionStore) Destroy(id string) error {
	_, err := s.db.Exec(`DELETE FROM sessions WHERE id = $1`, id)
	return storeErr(err)
}

// SetReturnTo records the path to land on after the next login.
func (s *SessionStore) SetReturnTo(id, path string) error {
	_, err := s.db.Exec(`UPDATE sessions SET return_to = $1 WHERE id = $2`, path, id)
	return storeErr(err)
}

// ConsumeReturnTo reads and clears the stored return path in one
// call, so it is used at most once.
func (s *SessionStore) ConsumeReturnTo(id string) (string, error) {
	var returnTo sql.NullString
	err := s.db.QueryRow(`SELECT return_to FROM sessions WHERE id = $1`, id).Scan(&returnTo)
	if err != nil {
		return "", storeErr(err)
	}
	if returnTo.String != "" {
		if _, err := s.db.Exec(`UPDATE sessions SET return_to = '' WHERE id = $1`, id); err != nil {
			return "", storeErr(err)
		}
	}
	return returnTo.String, nil
}
