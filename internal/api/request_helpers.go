package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/gtask-api/internal/api/shared"
	"github.com/phrazzld/gtask-api/internal/domain"
	"github.com/phrazzld/gtask-api/internal/service"
)

// requireUserID extracts the authenticated account ID placed in the context
// by the auth middleware. It writes a 401 and returns false when absent.
func requireUserID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, ok := shared.UserIDFromContext(r.Context())
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, MsgInvalidToken)
		return uuid.Nil, false
	}
	return userID, true
}

// getPathUUID parses a UUID path parameter. A malformed ID can never name an
// existing task, so it is reported as not found.
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, paramName))
	if err != nil || id == uuid.Nil {
		return uuid.Nil, service.ErrTaskNotFound
	}
	return id, nil
}

// handleUserIDAndTaskID extracts both the caller and the {id} path
// parameter, writing the error response if either is missing.
func handleUserIDAndTaskID(w http.ResponseWriter, r *http.Request) (uuid.UUID, uuid.UUID, bool) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}

	taskID, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return uuid.Nil, uuid.Nil, false
	}
	return userID, taskID, true
}

// decodeAndValidate decodes the JSON body into v and runs struct
// validation, writing a 400 on failure.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := shared.DecodeJSON(w, r, v); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, MsgInvalidBody, err)
		return false
	}
	if err := shared.ValidateRequest(v); err != nil {
		handleValidationError(w, r, err)
		return false
	}
	return true
}
