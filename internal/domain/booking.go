package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// Booking represents a detailing appointment
// Интервал [StartTime, EndTime) полуоткрытый: соприкасающиеся брони не пересекаются
type Booking struct {
	ID         int64
	BusinessID int64
	ServiceID  int64
	CustomerID int64
	StartTime  time.Time
	EndTime    time.Time
	Status     BookingStatus
	Location   string // Адрес клиента, куда выезжает детейлер. Может быть пустым
	Notes      *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still occupies the schedule
func (b *Booking) IsActive() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// Overlaps returns true if [start, end) intersects the booking interval
func (b *Booking) Overlaps(start, end time.Time) bool {
	return b.StartTime.Before(end) && start.Before(b.EndTime)
}

// Duration returns the booked duration
func (b *Booking) Duration() time.Duration {
	return b.EndTime.Sub(b.StartTime)
}

// BookingDraft данные для создания бронирования
// Если End нулевой, он вычисляется из длительности услуги
type BookingDraft struct {
	BusinessID int64
	ServiceID  int64
	CustomerID int64
	Start      time.Time
	End        time.Time
	Location   string
	Notes      *string
	Status     BookingStatus
}

// Actor пользователь, выполняющий действие (из заголовка X-User-ID)
type Actor struct {
	UserID int64
}

// BusinessBookingsFilter фильтр для получения бронирований бизнеса
type BusinessBookingsFilter struct {
	BusinessID      int64      // Обязательный параметр
	From            *time.Time // Начало периода (включительно)
	To              *time.Time // Конец периода (не включительно)
	IncludeInactive bool       // Включать ли отменённые и завершённые
}
