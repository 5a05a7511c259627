package mailer

import (
	"context"
	"fmt"
	"io"

	"gopkg.in/gomail.v2"
)

// Logger интерфейс логгера
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Sender отправка готового gomail-сообщения
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// Client SMTP клиент
type Client struct {
	sender   Sender
	from     string
	fromName string
	log      Logger
}

// NewClient создает SMTP клиента
func NewClient(host string, port int, username, password string, ssl bool, from, fromName string, log Logger) *Client {
	d := gomail.NewDialer(host, port, username, password)
	d.SSL = ssl
	return NewClientWithSender(d, from, fromName, log)
}

// NewClientWithSender создает клиента поверх произвольного Sender
func NewClientWithSender(sender Sender, from, fromName string, log Logger) *Client {
	return &Client{sender: sender, from: from, fromName: fromName, log: log}
}

// Send отправляет письмо
// gomail не принимает контекст, поэтому отмена проверяется только перед отправкой
func (c *Client) Send(ctx context.Context, msg Message) error {
	if msg.To == "" {
		return fmt.Errorf("%w: empty recipient", ErrInvalidMessage)
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrSend, err)
	}

	m := c.build(msg)

	if err := c.sender.DialAndSend(m); err != nil {
		c.log.Error("Send: smtp error to=%s subject=%q: %v", msg.To, msg.Subject, err)
		return fmt.Errorf("%w: %v", ErrSend, err)
	}

	c.log.Info("Send: message delivered to=%s subject=%q", msg.To, msg.Subject)
	return nil
}

func (c *Client) build(msg Message) *gomail.Message {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", c.from, c.fromName)
	m.SetAddressHeader("To", msg.To, msg.ToName)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Body)

	for _, a := range msg.Attachments {
		data := a.Data
		m.Attach(a.Name,
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(data)
				return err
			}),
			gomail.SetHeader(map[string][]string{
				"Content-Type": {a.ContentType},
			}),
		)
	}

	return m
}
