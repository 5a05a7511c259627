package googlemaps

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента (сеть, таймаут)
	ErrInternal = errors.New("googlemaps client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от API
	ErrInvalidResponse = errors.New("googlemaps client: invalid response")

	// ErrRequestDenied возвращается, когда API отклонил запрос (ключ, квота)
	ErrRequestDenied = errors.New("googlemaps client: request denied")

	// ErrNoRoute возвращается, когда маршрут между адресами не найден
	ErrNoRoute = errors.New("googlemaps client: no route between addresses")

	// ErrInvalidDuration возвращается, когда текст длительности не удалось разобрать
	ErrInvalidDuration = errors.New("googlemaps client: invalid duration text")
)
