package release_hold

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-DetailingService/internal/api/handlers"
	holdSlot "github.com/m04kA/SMC-DetailingService/internal/usecase/hold_slot"
)

const msgReleased = "удержание снято"

type Handler struct {
	useCase ReleaseUseCase
	logger  Logger
}

func NewHandler(useCase ReleaseUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/businesses/{businessId}/holds/release
// Всегда отвечает 200, даже если удержания не было
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	businessID, err := strconv.ParseInt(vars["businessId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /businesses/{id}/holds/release - Invalid business ID: %v", err)
		h.respond(w)
		return
	}

	var req ReleaseHoldRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /businesses/{id}/holds/release - Invalid request body: %v", err)
		h.respond(w)
		return
	}

	err = h.useCase.Release(r.Context(), &holdSlot.ReleaseRequest{
		BusinessID: businessID,
		Date:       req.Date,
		Time:       req.Time,
	})
	if err != nil {
		h.logger.Warn("POST /businesses/{id}/holds/release - Release skipped: business_id=%d, error=%v", businessID, err)
	} else {
		h.logger.Info("POST /businesses/{id}/holds/release - Hold released: business_id=%d, date=%s, time=%s",
			businessID, req.Date, req.Time)
	}
	h.respond(w)
}

func (h *Handler) respond(w http.ResponseWriter) {
	handlers.RespondJSON(w, http.StatusOK, handlers.StatusResponse{Status: "released", Message: msgReleased})
}
