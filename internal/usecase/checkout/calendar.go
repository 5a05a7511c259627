package checkout

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-DetailingService/internal/domain"
	"github.com/m04kA/SMC-DetailingService/internal/integrations/gcalendar"
	"github.com/m04kA/SMC-DetailingService/pkg/ptr"
)

// syncCalendar создает событие брони и блоки дороги до соседних выездов
// Возвращает предупреждения; ошибки не прерывают оформление
func (uc *UseCase) syncCalendar(ctx context.Context, c *ConfirmedBooking) []string {
	if uc.Calendar == nil || c.Business.CalendarID == nil || *c.Business.CalendarID == "" {
		return nil
	}
	calendarID := *c.Business.CalendarID
	loc := c.Business.Location()
	b := c.Booking

	_, err := uc.Calendar.CreateBookingEvent(ctx, calendarID, gcalendar.Event{
		Summary:     "Car Detail - " + c.Service.Name,
		Description: eventDescription(c),
		Location:    b.Location,
		Start:       b.StartTime.In(loc),
		End:         b.EndTime.In(loc),
	})
	if err != nil {
		uc.logger.Warn("Finalize: calendar event for booking=%d failed: %v", b.ID, err)
		return []string{"calendar event could not be created"}
	}

	if uc.Travel == nil || b.Location == "" {
		return nil
	}

	prev, next, err := uc.adjacent(ctx, b, loc)
	if err != nil {
		uc.logger.Warn("Finalize: failed to load adjacent bookings for booking=%d: %v", b.ID, err)
		return []string{"travel blocks could not be created"}
	}

	var warnings []string
	if prev != nil {
		// Дорога от предыдущего выезда заканчивается к началу брони
		if est, err := uc.Travel.Lookup(ctx, prev.Location, b.Location, prev.EndTime); err != nil {
			uc.logger.Warn("Finalize: travel from booking=%d unavailable: %v", prev.ID, err)
		} else {
			total := time.Duration(est.Minutes)*time.Minute + uc.cfg.Buffer
			if err := uc.travelBlock(ctx, calendarID, prev.Location, b.Location, est, b.StartTime.Add(-total).In(loc), b.StartTime.In(loc)); err != nil {
				warnings = append(warnings, "travel block from previous booking could not be created")
			}
		}
	}
	if next != nil {
		if est, err := uc.Travel.Lookup(ctx, b.Location, next.Location, b.EndTime); err != nil {
			uc.logger.Warn("Finalize: travel to booking=%d unavailable: %v", next.ID, err)
		} else {
			total := time.Duration(est.Minutes)*time.Minute + uc.cfg.Buffer
			if err := uc.travelBlock(ctx, calendarID, b.Location, next.Location, est, b.EndTime.In(loc), b.EndTime.Add(total).In(loc)); err != nil {
				warnings = append(warnings, "travel block to next booking could not be created")
			}
		}
	}

	return warnings
}

func (uc *UseCase) travelBlock(ctx context.Context, calendarID, from, to string, est *domain.TravelEstimate, start, end time.Time) error {
	_, err := uc.Calendar.CreateTravelBlock(ctx, calendarID, gcalendar.Event{
		Summary:     "Travel Time",
		Description: fmt.Sprintf("Travel from %s to %s\nEstimated: %d minutes", from, to, est.Minutes),
		Start:       start,
		End:         end,
	})
	if err != nil {
		uc.logger.Warn("Finalize: travel block %s -> %s failed: %v", from, to, err)
	}
	return err
}

// adjacent находит ближайшие брони с адресом до и после b в тот же день
func (uc *UseCase) adjacent(ctx context.Context, b *domain.Booking, loc *time.Location) (prev, next *domain.Booking, err error) {
	local := b.StartTime.In(loc)
	from := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	to := from.AddDate(0, 0, 1)

	day, err := uc.Ledger.ListActive(ctx, domain.BusinessBookingsFilter{
		BusinessID: b.BusinessID,
		From:       &from,
		To:         &to,
	})
	if err != nil {
		return nil, nil, err
	}

	for _, other := range day {
		if other.ID == b.ID {
			continue
		}
		if !other.EndTime.After(b.StartTime) && (prev == nil || other.EndTime.After(prev.EndTime)) {
			prev = other
		}
		if !other.StartTime.Before(b.EndTime) && (next == nil || other.StartTime.Before(next.StartTime)) {
			next = other
		}
	}

	if prev != nil && prev.Location == "" {
		prev = nil
	}
	if next != nil && next.Location == "" {
		next = nil
	}
	return prev, next, nil
}

func eventDescription(c *ConfirmedBooking) string {
	lines := []string{
		"Booking Details:",
		"Customer: " + c.Customer.Name,
		"Service: " + c.Service.Name,
		"Vehicle: " + orDefault(c.Vehicle, "Not specified"),
		"Phone: " + c.Customer.Phone,
		"Email: " + c.Customer.Email,
		"Special Instructions: " + orDefault(c.Booking.Notes, "None"),
	}
	return strings.Join(lines, "\n")
}

func orDefault(s *string, def string) string {
	if v := ptr.Value(s); v != "" {
		return v
	}
	return def
}
