package checkout

import "errors"

var (
	// ErrValidation возвращается, когда не заполнены обязательные поля формы
	ErrValidation = errors.New("missing or invalid fields")

	// ErrBusinessNotFound возвращается, когда бизнес не найден
	ErrBusinessNotFound = errors.New("business not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена или неактивна
	ErrServiceNotFound = errors.New("service not found")

	// ErrSessionNotFound возвращается, когда черновик не найден или уже подтвержден
	ErrSessionNotFound = errors.New("checkout session not found")

	// ErrPaymentNotCompleted возвращается, когда оплата по сессии не завершена
	ErrPaymentNotCompleted = errors.New("payment not completed")

	// ErrProviderUnavailable возвращается при недоступности платежного провайдера
	ErrProviderUnavailable = errors.New("payment provider unavailable")

	// ErrSlotTaken возвращается, когда слот заняли до подтверждения оплаты
	ErrSlotTaken = errors.New("time slot is no longer available")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
