package payment

import "errors"

var (
	// ErrProvider возвращается при ошибках платежного провайдера (сеть, 5xx, ключ)
	ErrProvider = errors.New("payment client: provider error")

	// ErrSessionNotFound возвращается, когда платежная сессия не найдена у провайдера
	ErrSessionNotFound = errors.New("payment client: session not found")
)
