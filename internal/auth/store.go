package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// UserStore defines the persistence contract the auth core depends on.
//
// Uniqueness is the store's job: the users.username column carries a hard
// UNIQUE constraint, so a racing insert surfaces as ErrUsernameExists no
// matter what a prior UsernameExists check reported. Store-level failures
// are returned as plain errors and propagate to callers unchanged.
type UserStore interface {
	// GetByUsername retrieves a user by exact, case-sensitive username.
	GetByUsername(ctx context.Context, username string) (*User, error)

	// GetByID retrieves a user by their store-assigned id.
	GetByID(ctx context.Context, id int64) (*User, error)

	// UsernameExists reports whether any user holds the given username.
	UsernameExists(ctx context.Context, username string) (bool, error)

	// Insert persists a new user and returns the assigned id.
	// The id is also written back to user.ID.
	Insert(ctx context.Context, user *User) (int64, error)

	// UpdateLastLogin records a successful login timestamp.
	UpdateLastLogin(ctx context.Context, id int64, at time.Time) error

	// UpdatePassword replaces a user's password hash.
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error

	// CountByRole returns how many users hold the given role.
	CountByRole(ctx context.Context, role Role) (int, error)

	// List returns all users ordered by creation time.
	List(ctx context.Context) ([]User, error)

	// Update modifies a user's role and active status.
	Update(ctx context.Context, user *User) error
}

// SQLiteUserStore implements UserStore using SQLite.
type SQLiteUserStore struct {
	db *sql.DB
}

// NewUserStore creates a new SQLite-backed user store.
func NewUserStore(db *sql.DB) *SQLiteUserStore {
	return &SQLiteUserStore{db: db}
}

const userColumns = "id, username, password_hash, role, is_active, created_at, last_login_at"

// GetByUsername retrieves a user by exact username match.
func (s *SQLiteUserStore) GetByUsername(ctx context.Context, username string) (*User, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE username = ?", username)
	return scanUser(row)
}

// GetByID retrieves a user by their unique id.
func (s *SQLiteUserStore) GetByID(ctx context.Context, id int64) (*User, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = ?", id)
	return scanUser(row)
}

// UsernameExists reports whether the username is already taken.
func (s *SQLiteUserStore) UsernameExists(ctx context.Context, username string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM users WHERE username = ?", username).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("checking username: %w", err)
	}
	return n > 0, nil
}

// Insert persists a new user. The id is assigned by SQLite and written back.
func (s *SQLiteUserStore) Insert(ctx context.Context, user *User) (int64, error) {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	result, err := s.db.ExecContext(ctx,
		`INSERT INTO users (username, password_hash, role, is_active, created_at, last_login_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		user.Username, user.PasswordHash, string(user.Role), boolToInt(user.IsActive),
		user.CreatedAt.UnixMilli(), nullMillis(user.LastLoginAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrUsernameExists
		}
		return 0, fmt.Errorf("inserting user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading inserted user id: %w", err)
	}
	user.ID = id
	return id, nil
}

// UpdateLastLogin records a successful login timestamp.
func (s *SQLiteUserStore) UpdateLastLogin(ctx context.Context, id int64, at time.Time) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE users SET last_login_at = ? WHERE id = ?", at.UnixMilli(), id)
	if err != nil {
		return fmt.Errorf("updating last login: %w", err)
	}
	return requireRow(result)
}

// UpdatePassword replaces a user's password hash.
func (s *SQLiteUserStore) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE users SET password_hash = ? WHERE id = ?", passwordHash, id)
	if err != nil {
		return fmt.Errorf("updating password: %w", err)
	}
	return requireRow(result)
}

// CountByRole returns how many users hold the given role.
func (s *SQLiteUserStore) CountByRole(ctx context.Context, role Role) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM users WHERE role = ?", string(role)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting users by role: %w", err)
	}
	return count, nil
}

// List returns all users ordered by creation time.
func (s *SQLiteUserStore) List(ctx context.Context) ([]User, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+userColumns+" FROM users ORDER BY created_at ASC, id ASC")
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	defer rows.Close()

	users := []User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating users: %w", err)
	}
	return users, nil
}

// Update modifies a user's role and active status. Username, id, and
// creation time are immutable once assigned.
func (s *SQLiteUserStore) Update(ctx context.Context, user *User) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE users SET role = ?, is_active = ? WHERE id = ?",
		string(user.Role), boolToInt(user.IsActive), user.ID)
	if err != nil {
		return fmt.Errorf("updating user: %w", err)
	}
	return requireRow(result)
}

// scanner is satisfied by both sql.Row and sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanUser reads one user row. Timestamps are stored as epoch milliseconds.
func scanUser(s scanner) (*User, error) {
	var u User
	var role string
	var isActive int
	var createdAt int64
	var lastLoginAt sql.NullInt64

	err := s.Scan(&u.ID, &u.Username, &u.PasswordHash, &role, &isActive, &createdAt, &lastLoginAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("scanning user: %w", err)
	}

	u.Role = Role(role)
	u.IsActive = isActive != 0
	u.CreatedAt = time.UnixMilli(createdAt).UTC()
	if lastLoginAt.Valid {
		t := time.UnixMilli(lastLoginAt.Int64).UTC()
		u.LastLoginAt = &t
	}
	return &u, nil
}

// requireRow converts a zero-row UPDATE into ErrUserNotFound.
func requireRow(result sql.Result) error {
	rows, _ := result.RowsAffected() //nolint:errcheck // always succeeds on SQLite
	if rows == 0 {
		return ErrUserNotFound
	}
	return nil
}

func nullMillis(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UnixMilli()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// isUniqueViolation checks if a SQLite error is a UNIQUE constraint violation.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "unique constraint")
}
