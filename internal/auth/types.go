package auth

import (
	"errors"
	"regexp"
	"time"
)

// usernamePattern defines the valid format for usernames:
// alphanumeric, dots, hyphens, underscores, 1-32 characters.
var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9._-]{1,32}$`)

// maxUsernameLength is the maximum allowed username length.
const maxUsernameLength = 32

// IsValidUsername checks if a username meets format requirements.
// Usernames must be 1-32 characters, alphanumeric with dots, hyphens, underscores.
func IsValidUsername(username string) bool {
	return len(username) <= maxUsernameLength && usernamePattern.MatchString(username)
}

// Role represents an authorisation tier for terminal staff.
type Role string

const (
	// RoleAdmin has full system control: accounts, settings, reports,
	// menu, every sales operation. Holds all permissions implicitly.
	RoleAdmin Role = "admin"

	// RoleManager runs a shift: reports, menu changes, voids and
	// discounts. Cannot manage accounts or terminal settings.
	RoleManager Role = "manager"

	// RoleCashier rings up sales and applies discounts. Nothing else.
	RoleCashier Role = "cashier"

	// RoleKitchen is a back-of-house display identity. Sees the kitchen
	// queue only.
	RoleKitchen Role = "kitchen"
)

// ValidRoles is the closed set of roles an account may hold.
var ValidRoles = []Role{RoleAdmin, RoleManager, RoleCashier, RoleKitchen}

// IsValidRole returns true if the role is one of the defined staff roles.
func IsValidRole(r Role) bool {
	for _, v := range ValidRoles {
		if r == v {
			return true
		}
	}
	return false
}

// User represents one staff account.
type User struct {
	ID           int64      `json:"id"`
	Username     string     `json:"username"`
	PasswordHash string     `json:"-"` // never serialised
	Role         Role       `json:"role"`
	IsActive     bool       `json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
}

// LoginResult is the outcome of a credential check. Exactly one branch is
// populated: User on success, Message with the user-facing reason otherwise.
// Store and hashing failures travel on the separate error return of Login,
// never inside the result.
type LoginResult struct {
	User    *User
	Message string
}

// Success reports whether the login was accepted.
func (r LoginResult) Success() bool { return r.User != nil }

// CreateUserResult is the outcome of an account creation attempt.
// UserID carries the store-assigned id on success.
type CreateUserResult struct {
	UserID  int64
	Message string
}

// Success reports whether the account was created.
func (r CreateUserResult) Success() bool { return r.Message == "" }

// ChangePasswordResult is the outcome of a password change attempt.
type ChangePasswordResult struct {
	Message string
}

// Success reports whether the password was changed.
func (r ChangePasswordResult) Success() bool { return r.Message == "" }

// Sentinel errors for store operations.
var (
	ErrUserNotFound   = errors.New("user not found")
	ErrUsernameExists = errors.New("username already exists")
)
