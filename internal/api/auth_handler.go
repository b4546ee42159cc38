package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/gtask-api/internal/api/shared"
	"github.com/phrazzld/gtask-api/internal/service"
)

// Authentication success messages
const (
	MsgSignUpSuccess = "User registered successfully"
	MsgSignInSuccess = "Login successful"
	MsgGuestSuccess  = "Guest session created successfully"
)

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	authService service.AuthService
	logger      *slog.Logger
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(authService service.AuthService, logger *slog.Logger) *AuthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthHandler{
		authService: authService,
		logger:      logger.With(slog.String("component", "auth_handler")),
	}
}

// SignUp handles POST /api/auth/signup.
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req SignUpRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.authService.SignUp(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusCreated, MsgSignUpSuccess, authResponse(result))
}

// SignIn handles POST /api/auth/signin.
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req SignInRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.authService.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, MsgSignInSuccess, authResponse(result))
}

// CreateGuestSession handles POST /api/auth/guest. The request body is
// ignored.
func (h *AuthHandler) CreateGuestSession(w http.ResponseWriter, r *http.Request) {
	result, err := h.authService.CreateGuestSession(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, MsgGuestSessionFailed)
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusCreated, MsgGuestSuccess, authResponse(result))
}
