package service

import "errors"

// Sentinel errors returned by the services. Callers classify failures with
// errors.Is; the API layer maps them to HTTP status codes.
var (
	// ErrRegistrationFailed wraps every sign-up failure. A duplicate e-mail
	// additionally wraps store.ErrEmailExists.
	ErrRegistrationFailed = errors.New("registration failed")

	// ErrInvalidCredentials is returned by SignIn for an unknown e-mail and a
	// wrong password alike.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrGuestSessionFailed wraps infrastructure failures while provisioning
	// a guest account.
	ErrGuestSessionFailed = errors.New("guest session creation failed")

	// ErrTaskNotFound covers missing, foreign and soft-deleted tasks.
	ErrTaskNotFound = errors.New("task not found")

	// ErrUserNotFound indicates that the caller's account no longer exists
	// or has been deactivated.
	ErrUserNotFound = errors.New("user not found")
)
