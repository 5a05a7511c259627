package get_business_bookings

import (
	"fmt"
	"strconv"
	"time"

	"github.com/m04kA/SMC-DetailingService/internal/domain"
)

// ToFilter создает фильтр из query параметров
// from и to - даты YYYY-MM-DD в часовом поясе UTC; to включительно
func ToFilter(businessID int64, fromStr, toStr, includeInactiveStr string) (domain.BusinessBookingsFilter, error) {
	filter := domain.BusinessBookingsFilter{BusinessID: businessID}

	if fromStr != "" {
		from, err := time.Parse(domain.DateFormat, fromStr)
		if err != nil {
			return filter, fmt.Errorf("invalid from: %w", err)
		}
		filter.From = &from
	}

	if toStr != "" {
		to, err := time.Parse(domain.DateFormat, toStr)
		if err != nil {
			return filter, fmt.Errorf("invalid to: %w", err)
		}
		to = to.AddDate(0, 0, 1)
		filter.To = &to
	}

	if filter.From != nil && filter.To != nil && !filter.From.Before(*filter.To) {
		return filter, fmt.Errorf("from must not be after to")
	}

	if includeInactiveStr != "" {
		include, err := strconv.ParseBool(includeInactiveStr)
		if err != nil {
			return filter, fmt.Errorf("invalid includeInactive: %w", err)
		}
		filter.IncludeInactive = include
	}

	return filter, nil
}
