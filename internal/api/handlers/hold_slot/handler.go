package hold_slot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-DetailingService/internal/api/handlers"
	holdSlot "github.com/m04kA/SMC-DetailingService/internal/usecase/hold_slot"
)

const (
	msgInvalidBusinessID  = "некорректный ID бизнеса"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные дата, время или услуга"
	msgBusinessNotFound   = "бизнес не найден"
	msgServiceNotFound    = "услуга не найдена"
	msgSlotContested      = "слот временно удерживается другим клиентом"
	msgSlotHeld           = "слот удерживается"
)

type Handler struct {
	useCase HoldUseCase
	logger  Logger
}

func NewHandler(useCase HoldUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/businesses/{businessId}/holds
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	businessID, err := strconv.ParseInt(vars["businessId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /businesses/{id}/holds - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	var req HoldSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /businesses/{id}/holds - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Hold(r.Context(), req.ToUseCaseRequest(businessID))
	if err != nil {
		switch {
		case errors.Is(err, holdSlot.ErrInvalidInput):
			h.logger.Warn("POST /businesses/{id}/holds - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, holdSlot.ErrBusinessNotFound):
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, holdSlot.ErrServiceNotFound):
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, holdSlot.ErrSlotContested):
			h.logger.Warn("POST /businesses/{id}/holds - Slot contested: business_id=%d, date=%s, time=%s",
				businessID, req.Date, req.Time)
			handlers.RespondConflict(w, msgSlotContested)

		default:
			h.logger.Error("POST /businesses/{id}/holds - Failed to hold slot: business_id=%d, error=%v", businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /businesses/{id}/holds - Slot held: business_id=%d, date=%s, time=%s",
		businessID, req.Date, req.Time)
	handlers.RespondJSON(w, http.StatusOK, HoldSlotResponse{
		Status:    "held",
		Message:   msgSlotHeld,
		ExpiresIn: int(result.ExpiresIn.Seconds()),
	})
}
