package slots

import "errors"

var (
	// ErrInvalidDuration возвращается при неположительной длительности услуги
	ErrInvalidDuration = errors.New("slots: service duration must be positive")

	// ErrInvalidHours возвращается при некорректных часах работы
	ErrInvalidHours = errors.New("slots: invalid business hours")
)
