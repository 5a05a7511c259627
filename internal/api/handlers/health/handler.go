package health

import (
	"context"
	"net/http"
	"time"

	"github.com/m04kA/SMC-DetailingService/internal/api/handlers"
)

// Pinger проверка доступности базы данных
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Logger interface {
	Warn(format string, v ...interface{})
}

type Handler struct {
	db      Pinger
	timeout time.Duration
	logger  Logger
}

func NewHandler(db Pinger, logger Logger) *Handler {
	return &Handler{
		db:      db,
		timeout: 2 * time.Second,
		logger:  logger,
	}
}

// Handle GET /api/v1/health
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		h.logger.Warn("GET /health - Database unavailable: %v", err)
		handlers.RespondJSON(w, http.StatusServiceUnavailable, handlers.StatusResponse{Status: "unavailable", Message: "database"})
		return
	}

	handlers.RespondJSON(w, http.StatusOK, handlers.StatusResponse{Status: "ok"})
}
