package gcalendar

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/m04kA/SMC-DetailingService/internal/domain"
	"github.com/m04kA/SMC-DetailingService/pkg/retry"
)

// Logger интерфейс логгера
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент Google Calendar
// Каждый вызов повторяется при временных ошибках согласно policy
type Client struct {
	svc    *calendar.Service
	policy retry.Policy
	log    Logger
}

// NewClient создает клиента по файлу сервисного аккаунта
func NewClient(ctx context.Context, credentialsFile string, policy retry.Policy, log Logger) (*Client, error) {
	svc, err := calendar.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(calendar.CalendarEventsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: create calendar service: %v", ErrInternal, err)
	}
	return NewClientWithService(svc, policy, log), nil
}

// NewClientWithService создает клиента поверх готового calendar.Service
func NewClientWithService(svc *calendar.Service, policy retry.Policy, log Logger) *Client {
	policy.Retryable = isTransient
	return &Client{svc: svc, policy: policy, log: log}
}

// ListBusy возвращает занятые интервалы календаря в [from, to)
// События, созданные сервисом (брони и дорога), пропускаются: брони читаются из БД
func (c *Client) ListBusy(ctx context.Context, calendarID string, from, to time.Time, loc *time.Location) ([]domain.BusyInterval, error) {
	var events *calendar.Events

	err := retry.Do(ctx, c.policy, func() error {
		var err error
		events, err = c.svc.Events.List(calendarID).
			TimeMin(from.Format(time.RFC3339)).
			TimeMax(to.Format(time.RFC3339)).
			SingleEvents(true).
			OrderBy("startTime").
			Context(ctx).
			Do()
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%w: list events calendar=%s: %v", ErrInternal, calendarID, err)
	}

	busy := make([]domain.BusyInterval, 0, len(events.Items))
	for _, ev := range events.Items {
		if ev.Status == "cancelled" || ev.Transparency == "transparent" || isOwnEvent(ev) {
			continue
		}

		interval, err := toBusyInterval(ev, loc)
		if err != nil {
			c.log.Warn("ListBusy: skipping event %s: %v", ev.Id, err)
			continue
		}
		busy = append(busy, interval)
	}

	return busy, nil
}

// CreateBookingEvent создает событие брони и возвращает его ID
func (c *Client) CreateBookingEvent(ctx context.Context, calendarID string, ev Event) (string, error) {
	return c.insert(ctx, calendarID, ev, sourceBooking)
}

// CreateTravelBlock создает блок дороги (серый цвет)
func (c *Client) CreateTravelBlock(ctx context.Context, calendarID string, ev Event) (string, error) {
	if ev.ColorID == "" {
		ev.ColorID = ColorTravel
	}
	return c.insert(ctx, calendarID, ev, sourceTravel)
}

func (c *Client) insert(ctx context.Context, calendarID string, ev Event, source string) (string, error) {
	event := &calendar.Event{
		Summary:     ev.Summary,
		Description: ev.Description,
		Location:    ev.Location,
		ColorId:     ev.ColorID,
		Start:       &calendar.EventDateTime{DateTime: ev.Start.Format(time.RFC3339), TimeZone: ev.Start.Location().String()},
		End:         &calendar.EventDateTime{DateTime: ev.End.Format(time.RFC3339), TimeZone: ev.End.Location().String()},
		ExtendedProperties: &calendar.EventExtendedProperties{
			Private: map[string]string{sourceProperty: source},
		},
	}

	var created *calendar.Event
	err := retry.Do(ctx, c.policy, func() error {
		var err error
		created, err = c.svc.Events.Insert(calendarID, event).Context(ctx).Do()
		if err != nil {
			c.log.Warn("CalendarInsert: attempt failed calendar=%s: %v", calendarID, err)
		}
		return err
	})
	if err != nil {
		return "", fmt.Errorf("%w: insert event calendar=%s: %v", ErrInternal, calendarID, err)
	}

	return created.Id, nil
}

func toBusyInterval(ev *calendar.Event, loc *time.Location) (domain.BusyInterval, error) {
	if ev.Start == nil || ev.End == nil {
		return domain.BusyInterval{}, ErrInvalidEvent
	}

	start, err := parseEventTime(ev.Start, loc)
	if err != nil {
		return domain.BusyInterval{}, err
	}
	end, err := parseEventTime(ev.End, loc)
	if err != nil {
		return domain.BusyInterval{}, err
	}
	if !start.Before(end) {
		return domain.BusyInterval{}, fmt.Errorf("%w: start %s not before end %s", ErrInvalidEvent, start, end)
	}

	return domain.BusyInterval{Start: start, End: end, Location: ev.Location}, nil
}

// parseEventTime понимает и события со временем, и события на весь день
func parseEventTime(t *calendar.EventDateTime, loc *time.Location) (time.Time, error) {
	if t.DateTime != "" {
		parsed, err := time.Parse(time.RFC3339, t.DateTime)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidEvent, err)
		}
		return parsed.In(loc), nil
	}
	if t.Date != "" {
		parsed, err := time.ParseInLocation(domain.DateFormat, t.Date, loc)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidEvent, err)
		}
		return parsed, nil
	}
	return time.Time{}, ErrInvalidEvent
}

func isOwnEvent(ev *calendar.Event) bool {
	if ev.ExtendedProperties == nil {
		return false
	}
	_, ok := ev.ExtendedProperties.Private[sourceProperty]
	return ok
}

// isTransient отделяет временные ошибки (сеть, TLS, 429, 5xx) от постоянных
func isTransient(err error) bool {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusTooManyRequests || apiErr.Code >= http.StatusInternalServerError
	}
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}
