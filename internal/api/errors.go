package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/gtask-api/internal/api/shared"
	"github.com/phrazzld/gtask-api/internal/domain"
	"github.com/phrazzld/gtask-api/internal/service"
	"github.com/phrazzld/gtask-api/internal/service/auth"
	"github.com/phrazzld/gtask-api/internal/store"
)

// Client-facing error messages
const (
	MsgValidationFailed   = "Validation failed"
	MsgInvalidBody        = "Invalid request body"
	MsgInvalidCredentials = "Invalid credentials"
	MsgInvalidToken       = "Invalid or expired token"
	MsgPasswordTooLong    = "password must be at most 72 bytes"
	MsgEmailExists        = "Email already exists"
	MsgRegistrationFailed = "Registration failed"
	MsgGuestSessionFailed = "There is an error when we create a guest session"
	MsgTaskNotFound       = "Task not found"
	MsgUserNotFound       = "User not found"
	MsgUnexpected         = "An unexpected error occurred"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes without
// exposing their types to clients. Checks run from most to least specific:
// a duplicate e-mail is also a registration failure, and a sign-up
// validation error is too.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, auth.ErrPasswordTooLong),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized

	case errors.Is(err, service.ErrTaskNotFound),
		errors.Is(err, service.ErrUserNotFound),
		store.IsNotFoundError(err):
		return http.StatusNotFound

	case store.IsDuplicateError(err):
		return http.StatusConflict

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a client-safe message for err.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return MsgUnexpected
	}

	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		return verr.Error()
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity):
		return MsgValidationFailed
	case errors.Is(err, auth.ErrPasswordTooLong):
		return MsgPasswordTooLong

	case errors.Is(err, service.ErrInvalidCredentials):
		return MsgInvalidCredentials
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, domain.ErrUnauthorized):
		return MsgInvalidToken

	case errors.Is(err, service.ErrTaskNotFound),
		errors.Is(err, store.ErrTaskNotFound):
		return MsgTaskNotFound
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, store.ErrUserNotFound):
		return MsgUserNotFound

	case errors.Is(err, store.ErrEmailExists):
		return MsgEmailExists

	case errors.Is(err, service.ErrRegistrationFailed):
		return MsgRegistrationFailed
	case errors.Is(err, service.ErrGuestSessionFailed):
		return MsgGuestSessionFailed

	default:
		return MsgUnexpected
	}
}

// HandleAPIError writes the error envelope for err. A non-empty message
// overrides the safe message derived from err.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, message string) {
	status := MapErrorToStatusCode(err)
	if message == "" {
		message = GetSafeErrorMessage(err)
	}

	var opts []shared.ResponseOption
	if status == http.StatusUnauthorized {
		opts = append(opts, shared.WithElevatedLogLevel())
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err, opts...)
}

// handleValidationError writes a 400 listing each failing field.
func handleValidationError(w http.ResponseWriter, r *http.Request, err error) {
	details := shared.ValidationMessages(err)
	message := MsgValidationFailed
	if len(details) > 0 {
		message = details[0]
	}
	shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, message, err, shared.WithDetails(details...))
}
