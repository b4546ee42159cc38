package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/phrazzld/gtask-api/internal/api/shared"
)

// DefaultHealthTimeout bounds the database ping of a health check.
const DefaultHealthTimeout = 2 * time.Second

// Pinger reports whether a dependency is reachable. *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthStatus is the body of a health check.
type HealthStatus struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// HealthHandler serves GET /health.
type HealthHandler struct {
	db      Pinger
	timeout time.Duration
	logger  *slog.Logger
}

// NewHealthHandler creates a HealthHandler that pings db on every request.
func NewHealthHandler(db Pinger, logger *slog.Logger) *HealthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthHandler{
		db:      db,
		timeout: DefaultHealthTimeout,
		logger:  logger.With(slog.String("component", "health_handler")),
	}
}

// ServeHTTP implements http.Handler.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		h.logger.Error("database ping failed", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusServiceUnavailable, "Service unavailable",
			shared.WithDetails("database unreachable"))
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, shared.DefaultSuccessMessage,
		HealthStatus{Status: "ok", Database: "ok"})
}
