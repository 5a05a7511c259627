package domain

// Default scheduling values
const (
	DefaultStepMinutes     = 10
	DefaultBufferMinutes   = 15
	DefaultHoldTTLSeconds  = 300 // 5 минут
	DefaultTimezone        = "America/New_York"
	DefaultTravelTimeout   = 3 // секунды
	DefaultTravelCacheSize = 128
)

// Business validation constants
const (
	MinServiceDurationMinutes = 5
	MaxServiceDurationMinutes = 720 // 12 часов
	MaxNotesLength            = 500
	MaxAddressLength          = 300
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses статусы, которые занимают расписание
// Используется при проверке пересечений и подборе слотов
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}
