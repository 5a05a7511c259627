package notifications

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-DetailingService/internal/domain"
	"github.com/m04kA/SMC-DetailingService/internal/integrations/mailer"
)

// Confirmation данные подтвержденной записи для письма клиенту
type Confirmation struct {
	Booking  *domain.Booking
	Business *domain.Business
	Service  *domain.Service
	Customer *domain.Customer
	Vehicle  *string
}

// Service отправляет клиенту подтверждение записи с .ics приглашением
type Service struct {
	mailer Mailer
	logger Logger
	now    func() time.Time
}

// NewService создает сервис уведомлений
func NewService(m Mailer, logger Logger) *Service {
	return &Service{
		mailer: m,
		logger: logger,
		now:    time.Now,
	}
}

// SendConfirmation собирает и отправляет письмо с приглашением
func (s *Service) SendConfirmation(ctx context.Context, c Confirmation) error {
	msg, err := s.Compose(c)
	if err != nil {
		return err
	}

	if err := s.mailer.Send(ctx, msg); err != nil {
		s.logger.Error("SendConfirmation: booking=%d to=%s: %v", c.Booking.ID, msg.To, err)
		return fmt.Errorf("%w: SendConfirmation: %w", ErrSend, err)
	}

	s.logger.Info("SendConfirmation: booking=%d sent to %s", c.Booking.ID, msg.To)
	return nil
}

// Compose формирует письмо-подтверждение
func (s *Service) Compose(c Confirmation) (mailer.Message, error) {
	if c.Booking == nil || c.Business == nil || c.Service == nil || c.Customer == nil {
		return mailer.Message{}, fmt.Errorf("%w: Compose - missing booking parts", ErrInvalidBooking)
	}

	loc := c.Business.Location()
	start := c.Booking.StartTime.In(loc)
	end := c.Booking.EndTime.In(loc)

	invite, err := BuildInvite(Invite{
		UID:            fmt.Sprintf("booking-%d@%s", c.Booking.ID, inviteDomain(c.Business)),
		Summary:        fmt.Sprintf("%s - %s", c.Service.Name, c.Business.Name),
		Description:    describe(c),
		Location:       c.Booking.Location,
		Start:          c.Booking.StartTime,
		End:            c.Booking.EndTime,
		OrganizerName:  c.Business.Name,
		OrganizerEmail: c.Business.Email,
		AttendeeName:   c.Customer.Name,
		AttendeeEmail:  c.Customer.Email,
		Stamp:          s.now(),
	})
	if err != nil {
		return mailer.Message{}, err
	}

	var body strings.Builder
	fmt.Fprintf(&body, "Hi %s,\n\n", c.Customer.Name)
	fmt.Fprintf(&body, "Your %s appointment with %s is confirmed.\n\n", c.Service.Name, c.Business.Name)
	fmt.Fprintf(&body, "Date: %s\n", start.Format("Monday, January 2, 2006"))
	fmt.Fprintf(&body, "Time: %s - %s\n", start.Format("3:04 PM"), end.Format("3:04 PM"))
	if c.Booking.Location != "" {
		fmt.Fprintf(&body, "Address: %s\n", c.Booking.Location)
	}
	if c.Vehicle != nil && *c.Vehicle != "" {
		fmt.Fprintf(&body, "Vehicle: %s\n", *c.Vehicle)
	}
	if c.Booking.Notes != nil && *c.Booking.Notes != "" {
		fmt.Fprintf(&body, "Notes: %s\n", *c.Booking.Notes)
	}
	body.WriteString("\nA calendar invite is attached.\n")
	if c.Business.Phone != "" {
		fmt.Fprintf(&body, "Questions? Call us at %s.\n", c.Business.Phone)
	}

	return mailer.Message{
		To:      c.Customer.Email,
		ToName:  c.Customer.Name,
		Subject: fmt.Sprintf("Booking confirmed: %s on %s", c.Service.Name, start.Format("Jan 2 at 3:04 PM")),
		Body:    body.String(),
		Attachments: []mailer.Attachment{{
			Name:        InviteFileName,
			ContentType: InviteContentType,
			Data:        invite,
		}},
	}, nil
}

func describe(c Confirmation) string {
	parts := []string{fmt.Sprintf("Service: %s", c.Service.Name)}
	if c.Vehicle != nil && *c.Vehicle != "" {
		parts = append(parts, "Vehicle: "+*c.Vehicle)
	}
	if c.Business.Phone != "" {
		parts = append(parts, "Contact: "+c.Business.Phone)
	}
	return strings.Join(parts, "\n")
}

func inviteDomain(b *domain.Business) string {
	if at := strings.LastIndex(b.Email, "@"); at >= 0 && at < len(b.Email)-1 {
		return b.Email[at+1:]
	}
	return "smc.local"
}
