package mailer

import "errors"

var (
	// ErrSend возвращается при ошибке отправки письма по SMTP
	ErrSend = errors.New("mailer: failed to send message")

	// ErrInvalidMessage возвращается, когда у письма нет получателя
	ErrInvalidMessage = errors.New("mailer: invalid message")
)
