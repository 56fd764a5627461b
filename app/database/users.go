package database

import (
	"database/sql"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/Abburizal/royal-wedding-byullysjah/app/models"
)

// bcryptCost matches the cost the original admin accounts were
// hashed with; changing it only affects newly hashed passwords.
const bcryptCost = 12

// UserStore persists admin accounts.
type UserStore struct {
	db *sql.DB
}

func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

const userColumns = `id, username, email, password, role, is_active, last_login, created_at, updated_at`

func scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID, &user.Username, &user.Email, &user.Password,
		&user.Role, &user.IsActive, &user.LastLogin,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, storeErr(err)
	}
	return user, nil
}

// GetByIdentifier finds an active user by username or email. Email
// comparison is case-insensitive; usernames match exactly.
func (s *UserStore) GetByIdentifier(identifier string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users
			  WHERE (username = $1 OR email = lower($1)) AND is_active = true`
	return scanUser(s.db.QueryRow(query, strings.TrimSpace(identifier)))
}

// GetByID finds an active user by id.
func (s *UserStore) GetByID(id string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 AND is_active = true`
	return scanUser(s.db.QueryRow(query, id))
}

// Create hashes the password and inserts a new user. Conflicts on
// username or email surface as *models.DuplicateError; the store's
// unique indexes are what resolves two racing registrations.
func (s *UserStore) Create(username, email, password, role string) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username: strings.TrimSpace(username),
		Email:    strings.ToLower(strings.TrimSpace(email)),
		Password: string(hash),
		Role:     role,
		IsActive: true,
	}

	query := `INSERT INTO users (username, email, password, role, is_active)
			  VALUES ($1, $2, $3, $4, true)
			  RETURNING id, created_at, updated_at`
	err = s.db.QueryRow(query, user.Username, user.Email, user.Password, user.Role).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if dup := duplicateField(err); dup != nil {
			return nil, dup
		}
		return nil, storeErr(err)
	}
	return user, nil
}

// VerifyPassword checks a candidate against the stored hash.
func (s *UserStore) VerifyPassword(user *models.User, candidate string) bool {
	return bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(candidate)) == nil
}

// UpdateLastLogin stamps the user's last successful login.
func (s *UserStore) UpdateLastLogin(id string) error {
	query := `UPDATE users SET last_login = NOW(), updated_at = NOW() WHERE id = $1`
	_, err := s.db.Exec(query, id)
	return storeErr(err)
}

// UpdatePassword hashes and stores a new password for the user.
func (s *UserStore) UpdatePassword(id, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return err
	}
	query := `UPDATE users SET password = $1, updated_at = NOW() WHERE id = $2`
	res, err := s.db.Exec(query, string(hash), id)
	if err != nil {
		return storeErr(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.ErrNotFound
	}
	return nil
}
