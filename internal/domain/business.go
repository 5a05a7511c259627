package domain

import "time"

// Business бизнес детейлинга (один детейлер или команда)
type Business struct {
	ID          int64
	OwnerUserID int64
	Name        string
	Email       string
	Phone       string
	Timezone    string  // IANA, по умолчанию America/New_York
	CalendarID  *string // Google Calendar, если подключен
	HomeAddress *string // Точка старта первого выезда
	BookingURL  *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Location returns the business time zone, falling back to the default
func (b *Business) Location() *time.Location {
	if b.Timezone != "" {
		if loc, err := time.LoadLocation(b.Timezone); err == nil {
			return loc
		}
	}
	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// IsOwner returns true if userID owns the business
func (b *Business) IsOwner(userID int64) bool {
	return b.OwnerUserID == userID
}

// Service услуга детейлинга
type Service struct {
	ID              int64
	BusinessID      int64
	Name            string
	Description     *string
	DurationMinutes int
	PriceCents      int64
	Active          bool
}

// Duration returns the service duration
func (s *Service) Duration() time.Duration {
	return time.Duration(s.DurationMinutes) * time.Minute
}

// Customer клиент. Ищется по email при оплате
type Customer struct {
	ID        int64
	UserID    *int64
	Name      string
	Email     string
	Phone     string
	CreatedAt time.Time
}
