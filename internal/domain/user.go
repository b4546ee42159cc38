package domain

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Guest account conventions. Guest accounts carry a placeholder e-mail of
// the form guest_<random>@temp.local; the Guest flag, not the address,
// identifies them.
const (
	GuestName        = "Guest User"
	GuestEmailPrefix = "guest_"
	GuestEmailDomain = "temp.local"

	MaxUserNameLength = 100
	MaxEmailLength    = 255
)

// Common validation errors
var (
	ErrEmptyUserID         = errors.New("user ID cannot be empty")
	ErrEmptyUserName       = errors.New("name cannot be empty")
	ErrUserNameTooLong     = errors.New("name must be at most 100 characters long")
	ErrEmptyEmail          = errors.New("email cannot be empty")
	ErrInvalidEmail        = errors.New("invalid email format")
	ErrEmptyHashedPassword = errors.New("hashed password cannot be empty")
)

// User represents an account. Accounts are never hard-deleted; Active=false
// marks a deactivated account.
type User struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"` // Never expose password hash in JSON
	Active         bool      `json:"active"`
	Guest          bool      `json:"is_guest"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewUser creates an active User with a fresh ID and timestamps.
// The e-mail is normalized with NormalizeEmail. The password must already be
// hashed. Returns an error if validation fails.
func NewUser(name, email, hashedPassword string) (*User, error) {
	now := time.Now().UTC()
	user := &User{
		ID:             uuid.New(),
		Name:           strings.TrimSpace(name),
		Email:          NormalizeEmail(email),
		HashedPassword: hashedPassword,
		Active:         true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// NewGuestUser creates an active guest account whose placeholder e-mail is
// built from suffix.
func NewGuestUser(suffix, hashedPassword string) (*User, error) {
	user, err := NewUser(GuestName, GuestEmail(suffix), hashedPassword)
	if err != nil {
		return nil, err
	}
	user.Guest = true
	return user, nil
}

// Validate checks if the User has valid data.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return NewValidationError("id", "is required", ErrEmptyUserID)
	}

	if err := ValidateUserName(u.Name); err != nil {
		return err
	}

	if u.Email == "" {
		return NewValidationError("email", "is required", ErrEmptyEmail)
	}
	if utf8.RuneCountInString(u.Email) > MaxEmailLength || !validateEmailFormat(u.Email) {
		return NewValidationError("email", "has invalid format", ErrInvalidEmail)
	}

	if u.HashedPassword == "" {
		return NewValidationError("password", "hash is required", ErrEmptyHashedPassword)
	}

	return nil
}

// ValidateUserName checks the display name constraints.
func ValidateUserName(name string) error {
	if strings.TrimSpace(name) == "" {
		return NewValidationError("name", "is required", ErrEmptyUserName)
	}
	if utf8.RuneCountInString(name) > MaxUserNameLength {
		return NewValidationError("name", "must be at most 100 characters", ErrUserNameTooLong)
	}
	return nil
}

// IsGuest reports whether the account was provisioned as a guest.
func (u *User) IsGuest() bool {
	return u.Guest
}

// NormalizeEmail trims and lower-cases an address. E-mail uniqueness and
// lookups are case-insensitive because every address is stored normalized.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// GuestEmail builds the placeholder address for a guest with the given
// random suffix.
func GuestEmail(suffix string) string {
	return GuestEmailPrefix + suffix + "@" + GuestEmailDomain
}

// validateEmailFormat performs a basic structural check: one local part,
// an @, and a domain containing an inner dot.
func validateEmailFormat(email string) bool {
	at := strings.IndexByte(email, '@')
	if at <= 0 || at != strings.LastIndexByte(email, '@') || at == len(email)-1 {
		return false
	}
	if strings.ContainsAny(email, " \t\r\n") {
		return false
	}

	domainPart := email[at+1:]
	dot := strings.IndexByte(domainPart, '.')
	return dot > 0 && dot < len(domainPart)-1
}
