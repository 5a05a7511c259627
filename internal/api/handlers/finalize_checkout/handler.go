package finalize_checkout

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-DetailingService/internal/api/handlers"
	checkoutUC "github.com/m04kA/SMC-DetailingService/internal/usecase/checkout"
)

const (
	msgMissingSession      = "отсутствует ID сессии"
	msgSessionNotFound     = "сессия оформления не найдена или уже подтверждена"
	msgPaymentNotCompleted = "оплата не завершена"
	msgSlotTaken           = "выбранное время уже занято"
	msgProviderUnavailable = "платежный сервис недоступен, попробуйте позже"
	msgNotFound            = "бизнес или услуга не найдены"
)

type Handler struct {
	useCase FinalizeUseCase
	logger  Logger
}

func NewHandler(useCase FinalizeUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/checkout/{sessionId}/finalize
// Сюда возвращает клиента платежный провайдер после оплаты
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]
	if sessionID == "" {
		handlers.RespondBadRequest(w, msgMissingSession)
		return
	}

	result, err := h.useCase.Finalize(r.Context(), sessionID)
	if err != nil {
		switch {
		case errors.Is(err, checkoutUC.ErrSessionNotFound):
			h.logger.Warn("GET /checkout/{id}/finalize - Session not found: session=%s", sessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)

		case errors.Is(err, checkoutUC.ErrPaymentNotCompleted):
			h.logger.Warn("GET /checkout/{id}/finalize - Payment not completed: session=%s", sessionID)
			handlers.RespondPaymentRequired(w, msgPaymentNotCompleted)

		case errors.Is(err, checkoutUC.ErrSlotTaken):
			h.logger.Warn("GET /checkout/{id}/finalize - Slot taken: session=%s", sessionID)
			handlers.RespondConflict(w, msgSlotTaken)

		case errors.Is(err, checkoutUC.ErrBusinessNotFound), errors.Is(err, checkoutUC.ErrServiceNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, checkoutUC.ErrProviderUnavailable):
			h.logger.Error("GET /checkout/{id}/finalize - Payment provider unavailable: %v", err)
			handlers.RespondBadGateway(w, msgProviderUnavailable)

		default:
			h.logger.Error("GET /checkout/{id}/finalize - Failed to finalize: session=%s, error=%v", sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /checkout/{id}/finalize - Booking confirmed: session=%s, booking_id=%d, warnings=%d",
		sessionID, result.Booking.ID, len(result.Warnings))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
