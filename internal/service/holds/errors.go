package holds

import "errors"

var (
	// ErrSlotContested возвращается, когда слот уже удерживается другим клиентом
	ErrSlotContested = errors.New("holds: slot is being booked by another customer")

	// ErrInvalidKey возвращается при пустой дате или времени в ключе
	ErrInvalidKey = errors.New("holds: invalid hold key")
)
