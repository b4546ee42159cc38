package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/gtask-api/internal/api/shared"
	"github.com/phrazzld/gtask-api/internal/platform/logger"
	"github.com/phrazzld/gtask-api/internal/service"
)

// Profile success messages
const (
	MsgProfileUpdated     = "Profile updated successfully"
	MsgAccountDeactivated = "Account deactivated successfully"
)

// UserHandler serves the caller's own account under /api/users/me.
type UserHandler struct {
	userService service.UserService
	logger      *slog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService service.UserService, logger *slog.Logger) *UserHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserHandler{
		userService: userService,
		logger:      logger.With(slog.String("component", "user_handler")),
	}
}

// GetProfile handles GET /api/users/me.
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	user, err := h.userService.GetProfile(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, shared.DefaultSuccessMessage, profileResponse(user))
}

// UpdateProfile handles PATCH /api/users/me.
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.userService.UpdateName(r.Context(), userID, req.Name)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, MsgProfileUpdated, profileResponse(user))
}

// Deactivate handles DELETE /api/users/me. Issued tokens stay valid until
// they expire; the account can no longer sign in.
func (h *UserHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	if err := h.userService.Deactivate(r.Context(), userID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).Info("account deactivated",
		slog.String("user_id", userID.String()))
	shared.RespondWithSuccess(w, r, http.StatusOK, MsgAccountDeactivated, nil)
}
