package mailer

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"github.com/m04kA/SMC-DetailingService/pkg/logger"
)

type recordingSender struct {
	messages []*gomail.Message
	err      error
}

func (s *recordingSender) DialAndSend(m ...*gomail.Message) error {
	s.messages = append(s.messages, m...)
	return s.err
}

func TestSend_BuildsMessageWithAttachment(t *testing.T) {
	sender := &recordingSender{}
	client := NewClientWithSender(sender, "book@example.com", "Silent Wash", logger.NewDiscard())

	err := client.Send(context.Background(), Message{
		To:      "jane@example.com",
		ToName:  "Jane",
		Subject: "Booking confirmed",
		Body:    "See you soon",
		Attachments: []Attachment{
			{Name: "invite.ics", ContentType: "text/calendar; method=REQUEST", Data: []byte("BEGIN:VCALENDAR")},
		},
	})
	require.NoError(t, err)
	require.Len(t, sender.messages, 1)

	var buf bytes.Buffer
	_, err = sender.messages[0].WriteTo(&buf)
	require.NoError(t, err)

	raw := buf.String()
	assert.Contains(t, raw, "Subject: Booking confirmed")
	assert.Contains(t, raw, "text/calendar; method=REQUEST")
	assert.Contains(t, raw, "invite.ics")
}

func TestSend_Errors(t *testing.T) {
	sender := &recordingSender{err: errors.New("connection refused")}
	client := NewClientWithSender(sender, "book@example.com", "", logger.NewDiscard())

	err := client.Send(context.Background(), Message{To: "jane@example.com"})
	assert.ErrorIs(t, err, ErrSend)

	err = client.Send(context.Background(), Message{})
	assert.ErrorIs(t, err, ErrInvalidMessage)
}
