package notifications

import "errors"

var (
	// ErrInvalidBooking возвращается, когда данных брони недостаточно для письма
	ErrInvalidBooking = errors.New("notifications: invalid booking data")

	// ErrSend возвращается при ошибке отправки подтверждения
	ErrSend = errors.New("notifications: failed to send confirmation")
)
