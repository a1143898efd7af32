package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// MinPasswordLength is the only password strength rule: a minimum length.
// No complexity requirement beyond this.
const MinPasswordLength = 6

// Default administrator credential created on first run. Publicly known —
// the seed logs a warning so a deployment cannot miss changing it.
const (
	DefaultAdminUsername = "admin"
	defaultAdminPassword = "admin123"
)

// User-facing failure messages. These are contract: the UI renders them
// verbatim, and login deliberately reuses one message for unknown-username
// and wrong-password so the response never reveals which field was wrong.
const (
	msgCredentialsRequired  = "Username and password are required"
	msgInvalidCredentials   = "Invalid username or password"
	msgAccountDeactivated   = "This account has been deactivated"
	msgAdminRequired        = "Only an administrator can create user accounts"
	msgUsernameRequired     = "Username is required"
	msgUsernameTaken        = "Username already exists"
	msgPasswordTooShort     = "Password must be at least 6 characters"
	msgWrongCurrentPassword = "Current password is incorrect"
	msgUserNotFound         = "User not found"
)

// Repository verifies credentials, enforces account-creation and
// password-change policy, answers permission queries, and bootstraps the
// default administrator account.
//
// It holds no per-session state: the acting user is identified by an id
// supplied on each call and re-read from the store, so one Repository
// instance is safe to share across concurrent callers as long as the
// store is.
type Repository struct {
	store  UserStore
	logger *slog.Logger
}

// NewRepository creates a Repository backed by the given store.
// A nil logger falls back to slog.Default.
func NewRepository(store UserStore, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{store: store, logger: logger}
}

// Login verifies a username/password pair. On success it records the login
// time via the store (exactly one write) and returns the user record as it
// was fetched, before that write.
func (r *Repository) Login(ctx context.Context, username, password string) (LoginResult, error) {
	username = strings.TrimSpace(username)
	if username == "" || strings.TrimSpace(password) == "" {
		return LoginResult{Message: msgCredentialsRequired}, nil
	}

	user, err := r.store.GetByUsername(ctx, username)
	if errors.Is(err, ErrUserNotFound) {
		return LoginResult{Message: msgInvalidCredentials}, nil
	}
	if err != nil {
		return LoginResult{}, err
	}

	ok, err := VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return LoginResult{}, fmt.Errorf("verifying password: %w", err)
	}
	if !ok {
		return LoginResult{Message: msgInvalidCredentials}, nil
	}

	// Deactivation is only revealed once the password has been proven.
	if !user.IsActive {
		return LoginResult{Message: msgAccountDeactivated}, nil
	}

	if err := r.store.UpdateLastLogin(ctx, user.ID, time.Now().UTC()); err != nil {
		return LoginResult{}, err
	}
	return LoginResult{User: user}, nil
}

// CreateUser creates a new active account. Only an admin acting user may
// create accounts; actorID is the id of the signed-in user making the call.
func (r *Repository) CreateUser(ctx context.Context, actorID int64, username, password string, role Role) (CreateUserResult, error) {
	actor, err := r.store.GetByID(ctx, actorID)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return CreateUserResult{}, err
	}
	if actor == nil || actor.Role != RoleAdmin {
		return CreateUserResult{Message: msgAdminRequired}, nil
	}

	username = strings.TrimSpace(username)
	if username == "" {
		return CreateUserResult{Message: msgUsernameRequired}, nil
	}

	taken, err := r.store.UsernameExists(ctx, username)
	if err != nil {
		return CreateUserResult{}, err
	}
	if taken {
		return CreateUserResult{Message: msgUsernameTaken}, nil
	}

	if len(password) < MinPasswordLength {
		return CreateUserResult{Message: msgPasswordTooShort}, nil
	}

	hash, err := HashPassword(password)
	if err != nil {
		return CreateUserResult{}, fmt.Errorf("hashing password: %w", err)
	}

	user := &User{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}
	id, err := r.store.Insert(ctx, user)
	if errors.Is(err, ErrUsernameExists) {
		// Lost a race with a concurrent insert. The UNIQUE constraint is
		// the real guard; the UsernameExists check above only shapes the
		// common-case message.
		return CreateUserResult{Message: msgUsernameTaken}, nil
	}
	if err != nil {
		return CreateUserResult{}, err
	}
	return CreateUserResult{UserID: id}, nil
}

// ChangePassword changes the acting user's own password after verifying
// their current one.
func (r *Repository) ChangePassword(ctx context.Context, actorID int64, currentPassword, newPassword string) (ChangePasswordResult, error) {
	user, err := r.store.GetByID(ctx, actorID)
	if errors.Is(err, ErrUserNotFound) {
		return ChangePasswordResult{Message: msgUserNotFound}, nil
	}
	if err != nil {
		return ChangePasswordResult{}, err
	}

	ok, err := VerifyPassword(currentPassword, user.PasswordHash)
	if err != nil {
		return ChangePasswordResult{}, fmt.Errorf("verifying password: %w", err)
	}
	if !ok {
		return ChangePasswordResult{Message: msgWrongCurrentPassword}, nil
	}

	if len(newPassword) < MinPasswordLength {
		return ChangePasswordResult{Message: msgPasswordTooShort}, nil
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		return ChangePasswordResult{}, fmt.Errorf("hashing password: %w", err)
	}
	if err := r.store.UpdatePassword(ctx, user.ID, hash); err != nil {
		return ChangePasswordResult{}, err
	}
	return ChangePasswordResult{}, nil
}

// HasPermission reports whether the acting user's role grants the
// permission. A missing user (stale session, deleted account) is false,
// never an error; the role is re-read on every call so role and
// active-status edits apply on the next check.
func (r *Repository) HasPermission(ctx context.Context, actorID int64, perm Permission) (bool, error) {
	user, err := r.store.GetByID(ctx, actorID)
	if errors.Is(err, ErrUserNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return HasPermission(user.Role, perm), nil
}

// InitializeDefaultUser creates the default administrator account if no
// admin exists yet. Safe to call on every start: the role-count check makes
// it a no-op once any admin is present.
func (r *Repository) InitializeDefaultUser(ctx context.Context) error {
	count, err := r.store.CountByRole(ctx, RoleAdmin)
	if err != nil {
		return fmt.Errorf("counting admin accounts: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := HashPassword(defaultAdminPassword)
	if err != nil {
		return fmt.Errorf("hashing default admin password: %w", err)
	}

	admin := &User{
		Username:     DefaultAdminUsername,
		PasswordHash: hash,
		Role:         RoleAdmin,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}
	if _, err := r.store.Insert(ctx, admin); err != nil {
		return fmt.Errorf("creating default admin: %w", err)
	}

	r.logger.Warn("default admin account created",
		"username", DefaultAdminUsername,
		"action_required", "change this password immediately",
	)
	return nil
}
