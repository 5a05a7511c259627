package checkout

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-DetailingService/internal/api/handlers"
	checkoutUC "github.com/m04kA/SMC-DetailingService/internal/usecase/checkout"
)

const (
	msgInvalidBusinessID   = "некорректный ID бизнеса"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgBusinessNotFound    = "бизнес не найден"
	msgServiceNotFound     = "услуга не найдена"
	msgProviderUnavailable = "платежный сервис недоступен, попробуйте позже"
)

type Handler struct {
	useCase CheckoutUseCase
	logger  Logger
}

func NewHandler(useCase CheckoutUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/businesses/{businessId}/checkout
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	businessID, err := strconv.ParseInt(vars["businessId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /businesses/{id}/checkout - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	var req CheckoutRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /businesses/{id}/checkout - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Checkout(r.Context(), req.ToUseCaseRequest(businessID))
	if err != nil {
		switch {
		case errors.Is(err, checkoutUC.ErrValidation):
			// Сообщение содержит список незаполненных полей
			h.logger.Warn("POST /businesses/{id}/checkout - Validation failed: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, checkoutUC.ErrBusinessNotFound):
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, checkoutUC.ErrServiceNotFound):
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, checkoutUC.ErrProviderUnavailable):
			h.logger.Error("POST /businesses/{id}/checkout - Payment provider unavailable: %v", err)
			handlers.RespondBadGateway(w, msgProviderUnavailable)

		default:
			h.logger.Error("POST /businesses/{id}/checkout - Failed to checkout: business_id=%d, error=%v", businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /businesses/{id}/checkout - Checkout session created: business_id=%d, session=%s",
		businessID, result.SessionID)
	handlers.RespondJSON(w, http.StatusOK, CheckoutResponse{
		SessionID:  result.SessionID,
		SessionURL: result.SessionURL,
	})
}
