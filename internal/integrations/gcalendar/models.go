package gcalendar

import "time"

const (
	// ColorTravel цвет (graphite) блоков дороги
	ColorTravel = "8"

	sourceProperty = "smc_source"
	sourceBooking  = "booking"
	sourceTravel   = "travel"
)

// Event событие для записи в календарь
type Event struct {
	Summary     string
	Description string
	Location    string
	Start       time.Time
	End         time.Time
	ColorID     string
}
