package get_available_slots

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-DetailingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BusinessID <= 0 {
		return fmt.Errorf("%w: businessID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: service must be positive", ErrInvalidInput)
	}

	if req.Date == "" {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if len(req.Address) > domain.MaxAddressLength {
		return fmt.Errorf("%w: address is too long", ErrInvalidInput)
	}

	return nil
}

// parseDate разбирает дату запроса в часовом поясе бизнеса
func parseDate(date string, loc *time.Location) (time.Time, error) {
	d, err := time.ParseInLocation(domain.DateFormat, date, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date must be in YYYY-MM-DD format", ErrInvalidInput)
	}
	return d, nil
}

// destination полный адрес клиента с квартирой
func destination(req *Request) string {
	address := strings.TrimSpace(req.Address)
	if address == "" {
		return ""
	}
	if req.Unit != nil && strings.TrimSpace(*req.Unit) != "" {
		return address + ", " + strings.TrimSpace(*req.Unit)
	}
	return address
}
