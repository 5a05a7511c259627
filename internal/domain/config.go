package domain

import (
	"time"

	"github.com/m04kA/SMC-DetailingService/pkg/types"
)

// BusinessHours часы работы бизнеса в конкретный день недели
// Отсутствие записи или IsClosed означает, что слотов в этот день нет
type BusinessHours struct {
	BusinessID int64
	DayOfWeek  time.Weekday // Воскресенье = 0, как в time.Weekday
	StartTime  types.TimeString
	EndTime    types.TimeString
	IsClosed   bool
}

// IsOpen returns true if the business accepts bookings on this day
func (h *BusinessHours) IsOpen() bool {
	return h != nil && !h.IsClosed && h.StartTime.IsBefore(h.EndTime)
}

// Window returns the working window for the given date in loc
func (h *BusinessHours) Window(date time.Time, loc *time.Location) (time.Time, time.Time) {
	return h.StartTime.On(date, loc), h.EndTime.On(date, loc)
}

// ScheduleRules параметры алгоритма подбора слотов
type ScheduleRules struct {
	StepMinutes   int // Шаг перебора кандидатов
	BufferMinutes int // Запас между выездами
}

// EffectiveStep returns the step, falling back to the default
func (r ScheduleRules) EffectiveStep() time.Duration {
	if r.StepMinutes <= 0 {
		return DefaultStepMinutes * time.Minute
	}
	return time.Duration(r.StepMinutes) * time.Minute
}

// EffectiveBuffer returns the buffer, never less than DefaultBufferMinutes
func (r ScheduleRules) EffectiveBuffer() time.Duration {
	if r.BufferMinutes < DefaultBufferMinutes {
		return DefaultBufferMinutes * time.Minute
	}
	return time.Duration(r.BufferMinutes) * time.Minute
}
