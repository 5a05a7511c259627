package travel

import "errors"

var (
	// ErrNoData возвращается, когда оценку получить не удалось (ошибка, таймаут, нет маршрута)
	ErrNoData = errors.New("travel: no travel data")

	// ErrInvalidAddress возвращается при пустом адресе
	ErrInvalidAddress = errors.New("travel: empty origin or destination")
)
