package auth

import (
	"errors"
	"fmt"
	"regexp"
	"time"
)

// usernamePattern defines the valid format for usernames:
// alphanumeric, dots, hyphens, underscores, 1-64 characters.
var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9._-]{1,64}$`)

// maxUsernameLength is the maximum allowed username length.
const maxUsernameLength = 64

// IsValidUsername checks if a username meets format requirements.
// Usernames must be 1-64 characters, alphanumeric with dots, hyphens, underscores.
func IsValidUsername(username string) bool {
	return len(username) <= maxUsernameLength && usernamePattern.MatchString(username)
}

// User represents an account known to the controller.
//
// The username is the immutable identity key; the permission set and the
// credential are mutable. The role label is derived from the permission set
// via Role() and is never stored.
type User struct {
	Username     string       `json:"username"`
	DisplayName  string       `json:"display_name"`
	PasswordHash string       `json:"-"` // argon2id PHC string, never serialised
	Permissions  []Permission `json:"permissions"`
	CreatedAt    time.Time    `json:"created_at"`
}

// NewUser creates a regular account with the default permission tags.
func NewUser(username, password, displayName string) (*User, error) {
	return newUser(username, password, displayName, DefaultPermissions())
}

// NewAdmin creates an administrator account: the default tags plus the
// administrator set.
func NewAdmin(username, password, displayName string) (*User, error) {
	perms := append(DefaultPermissions(), AdminPermissions()...)
	return newUser(username, password, displayName, perms)
}

func newUser(username, password, displayName string, perms []Permission) (*User, error) {
	if !IsValidUsername(username) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidUsername, username)
	}
	if displayName == "" {
		displayName = username
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	return &User{
		Username:     username,
		DisplayName:  displayName,
		PasswordHash: hash,
		Permissions:  perms,
		CreatedAt:    time.Now().UTC(),
	}, nil
}

// HasPermission reports whether the account holds the given tag.
func (u *User) HasPermission(perm Permission) bool {
	for _, p := range u.Permissions {
		if p == perm {
			return true
		}
	}
	return false
}

// Grant adds a permission tag to the account. Granting an already-held tag
// is a no-op.
func (u *User) Grant(perm Permission) {
	if u.HasPermission(perm) {
		return
	}
	u.Permissions = append(u.Permissions, perm)
}

// Revoke removes a permission tag from the account. Revoking an absent tag
// is a no-op.
func (u *User) Revoke(perm Permission) {
	for i, p := range u.Permissions {
		if p == perm {
			u.Permissions = append(u.Permissions[:i], u.Permissions[i+1:]...)
			return
		}
	}
}

// Role returns the derived presentation label for the account.
func (u *User) Role() Role {
	return RoleFor(u.Permissions)
}

// Authenticate checks a plaintext password against the stored credential.
func (u *User) Authenticate(password string) bool {
	ok, err := VerifyPassword(password, u.PasswordHash)
	return err == nil && ok
}

// ChangePassword replaces the credential after verifying the old one.
func (u *User) ChangePassword(oldPassword, newPassword string) error {
	if !u.Authenticate(oldPassword) {
		return ErrInvalidCredentials
	}
	hash, err := HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}
	u.PasswordHash = hash
	return nil
}

// ErrAuthentication is the common sentinel for every authentication and
// authorisation failure. The specific variants below all wrap it, so callers
// can match the whole family:
//
//	if errors.Is(err, auth.ErrAuthentication) {
//	    // session missing, credential wrong, or permission absent
//	}
var ErrAuthentication = errors.New("auth: authentication failed")

// Sentinel errors for auth operations.
var (
	// ErrNotAuthenticated is returned when an operation requires a session
	// and none is established.
	ErrNotAuthenticated = fmt.Errorf("%w: no authenticated session", ErrAuthentication)

	// ErrInvalidCredentials is returned for both unknown usernames and wrong
	// passwords. Deliberately generic: login failures must not reveal which
	// check failed.
	ErrInvalidCredentials = fmt.Errorf("%w: invalid credentials", ErrAuthentication)

	// ErrPermissionDenied is returned when the session's account lacks the
	// permission tag an operation requires.
	ErrPermissionDenied = fmt.Errorf("%w: permission denied", ErrAuthentication)

	// ErrInvalidUsername is returned when a username fails format validation.
	ErrInvalidUsername = errors.New("auth: invalid username")
)
