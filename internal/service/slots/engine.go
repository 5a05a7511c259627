package slots

import (
	"context"
	"sort"
	"time"

	"github.com/m04kA/SMC-DetailingService/internal/domain"
)

// roundTo граница округления вверх для начала слота
const roundTo = 10 * time.Minute

// Engine подбирает свободные слоты с учетом броней, буфера и времени в пути
// Не хранит состояние и безопасен для конкурентного использования
type Engine struct {
	step   time.Duration
	buffer time.Duration
	travel TravelEstimator
	logger Logger
}

// NewEngine создает движок подбора слотов
// travel может быть nil - тогда используется только фиксированный буфер
func NewEngine(rules domain.ScheduleRules, travel TravelEstimator, logger Logger) *Engine {
	return &Engine{
		step:   rules.EffectiveStep(),
		buffer: rules.EffectiveBuffer(),
		travel: travel,
		logger: logger,
	}
}

// AvailableSlots возвращает свободные слоты, упорядоченные по времени начала
//
// Кандидат [t, t+duration) перебирается с шагом step и отклоняется, если:
//  1. пересекается с занятым интервалом - t переносится на максимальный конец пересекающихся;
//  2. не выдерживает буфер после предыдущего интервала (prev.end + дорога + buffer, с округлением вверх до 10 минут
//     если дорога известна) - t переносится на этот момент;
//  3. не оставляет slot.end + дорога + buffer до следующего интервала - t переносится на его начало.
func (e *Engine) AvailableSlots(ctx context.Context, req Request) ([]domain.Slot, error) {
	if req.Duration <= 0 {
		return nil, ErrInvalidDuration
	}
	if !req.Hours.IsOpen() {
		return []domain.Slot{}, nil
	}

	loc := req.Location
	if loc == nil {
		loc = time.UTC
	}

	dayStart, dayEnd := req.Hours.Window(req.Date, loc)
	if !dayStart.Before(dayEnd) {
		return nil, ErrInvalidHours
	}

	// Сегодня: не предлагаем слоты в прошлом
	now := req.Now.In(loc)
	if sameDay(now, dayStart) {
		if rounded := roundUp(now, roundTo); rounded.After(dayStart) {
			dayStart = rounded
		}
	}

	busy := sortedBusy(req.Busy)
	slots := make([]domain.Slot, 0)

	t := dayStart
	for !t.Add(req.Duration).After(dayEnd) {
		end := t.Add(req.Duration)

		if latest, ok := overlapEnd(busy, t, end); ok {
			t = latest
			continue
		}

		if prev, ok := predecessor(busy, t); ok {
			if earliest := e.earliestAfter(ctx, prev, req.Destination); t.Before(earliest) {
				t = earliest
				continue
			}
		}

		if next, ok := successor(busy, end); ok {
			travel := e.travelMinutes(ctx, req.Destination, next.Location, end)
			if end.Add(travel + e.buffer).After(next.Start) {
				t = next.Start
				continue
			}
		}

		slots = append(slots, domain.Slot{Start: t, End: end})
		t = t.Add(e.step)
	}

	return slots, nil
}

// earliestAfter возвращает самое раннее допустимое начало после интервала prev
func (e *Engine) earliestAfter(ctx context.Context, prev domain.BusyInterval, destination string) time.Time {
	if e.canEstimate(prev.Location, destination) {
		if minutes, ok := e.travel.Estimate(ctx, prev.Location, destination, prev.End); ok {
			return roundUp(prev.End.Add(time.Duration(minutes)*time.Minute+e.buffer), roundTo)
		}
		e.logger.Warn("AvailableSlots: no travel data from %q to %q, using flat buffer", prev.Location, destination)
	}
	return prev.End.Add(e.buffer)
}

// travelMinutes возвращает время в пути или 0, если данных нет
func (e *Engine) travelMinutes(ctx context.Context, origin, destination string, departure time.Time) time.Duration {
	if !e.canEstimate(origin, destination) {
		return 0
	}
	minutes, ok := e.travel.Estimate(ctx, origin, destination, departure)
	if !ok {
		e.logger.Warn("AvailableSlots: no travel data from %q to %q, using flat buffer", origin, destination)
		return 0
	}
	return time.Duration(minutes) * time.Minute
}

func (e *Engine) canEstimate(origin, destination string) bool {
	return e.travel != nil && origin != "" && destination != ""
}

// overlapEnd возвращает максимальный конец среди интервалов, пересекающих [start, end)
// Соприкасающиеся интервалы не пересекаются
func overlapEnd(busy []domain.BusyInterval, start, end time.Time) (time.Time, bool) {
	var latest time.Time
	found := false

	for _, b := range busy {
		if b.Start.Before(end) && start.Before(b.End) {
			if !found || b.End.After(latest) {
				latest = b.End
				found = true
			}
		}
	}

	return latest, found
}

// predecessor возвращает интервал с самым поздним концом не позже t
// При равных концах предпочитается интервал с адресом
func predecessor(busy []domain.BusyInterval, t time.Time) (domain.BusyInterval, bool) {
	var prev domain.BusyInterval
	found := false

	for _, b := range busy {
		if b.End.After(t) {
			continue
		}
		if !found || b.End.After(prev.End) || (b.End.Equal(prev.End) && !prev.HasLocation() && b.HasLocation()) {
			prev = b
			found = true
		}
	}

	return prev, found
}

// successor возвращает интервал с самым ранним началом не раньше end
func successor(busy []domain.BusyInterval, end time.Time) (domain.BusyInterval, bool) {
	for _, b := range busy {
		if !b.Start.Before(end) {
			return b, true
		}
	}
	return domain.BusyInterval{}, false
}

func sortedBusy(busy []domain.BusyInterval) []domain.BusyInterval {
	sorted := make([]domain.BusyInterval, 0, len(busy))
	for _, b := range busy {
		if b.Start.Before(b.End) {
			sorted = append(sorted, b)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})
	return sorted
}

// roundUp округляет вверх до границы step по локальным настенным часам
func roundUp(t time.Time, step time.Duration) time.Time {
	elapsed := time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second +
		time.Duration(t.Nanosecond())

	rounded := elapsed.Truncate(step)
	if rounded < elapsed {
		rounded += step
	}
	if rounded == elapsed {
		return t
	}

	y, m, d := t.Date()
	return time.Date(y, m, d, 0, int(rounded/time.Minute), 0, 0, t.Location())
}

func sameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
