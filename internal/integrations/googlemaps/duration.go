package googlemaps

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseDurationText переводит текст вида "1 hour 5 mins" в минуты
// Поддерживаются единицы day, hour, min (в единственном и множественном числе)
func ParseDurationText(text string) (int, error) {
	fields := strings.Fields(strings.ToLower(text))
	if len(fields) == 0 || len(fields)%2 != 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, text)
	}

	total := 0
	for i := 0; i < len(fields); i += 2 {
		n, err := strconv.Atoi(fields[i])
		if err != nil || n < 0 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, text)
		}

		switch unit := strings.TrimSuffix(fields[i+1], "s"); unit {
		case "day":
			total += n * 24 * 60
		case "hour", "hr":
			total += n * 60
		case "min", "minute":
			total += n
		default:
			return 0, fmt.Errorf("%w: unknown unit %q", ErrInvalidDuration, fields[i+1])
		}
	}

	return total, nil
}
