package domain

import (
	"time"

	"github.com/m04kA/SMC-DetailingService/pkg/types"
)

// Slot свободный интервал для записи
type Slot struct {
	Start time.Time
	End   time.Time
}

// StartDisplay returns the start in 12-hour form, e.g. "9:30 AM"
func (s Slot) StartDisplay() string {
	return s.Start.Format(types.DisplayLayout)
}

// EndDisplay returns the end in 12-hour form
func (s Slot) EndDisplay() string {
	return s.End.Format(types.DisplayLayout)
}

// Duration returns the slot length
func (s Slot) Duration() time.Duration {
	return s.End.Sub(s.Start)
}

// BusyInterval интервал занятости детейлера: бронь или событие календаря
type BusyInterval struct {
	Start    time.Time
	End      time.Time
	Location string
}

// HasLocation returns true if the interval is tied to an address
func (b BusyInterval) HasLocation() bool {
	return b.Location != ""
}

// HoldKey ключ удержания слота
type HoldKey struct {
	BusinessID int64
	Date       string // YYYY-MM-DD
	Time       types.TimeString
}

// String returns "date time" form used in logs
func (k HoldKey) String() string {
	return k.Date + " " + k.Time.String()
}

// TravelEstimate результат оценки времени в пути
type TravelEstimate struct {
	DurationText string
	Minutes      int
}
