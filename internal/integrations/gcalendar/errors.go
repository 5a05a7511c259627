package gcalendar

import "errors"

var (
	// ErrInternal возвращается при ошибках обращения к Google Calendar
	ErrInternal = errors.New("gcalendar client: internal error")

	// ErrInvalidEvent возвращается, когда событие календаря не удалось разобрать
	ErrInvalidEvent = errors.New("gcalendar client: invalid event")
)
