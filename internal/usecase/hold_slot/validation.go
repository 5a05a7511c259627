package hold_slot

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-DetailingService/internal/domain"
	"github.com/m04kA/SMC-DetailingService/pkg/types"
)

// parseKey проверяет дату и время и строит ключ удержания
func parseKey(businessID int64, date, clock string) (domain.HoldKey, error) {
	if businessID <= 0 {
		return domain.HoldKey{}, fmt.Errorf("%w: businessID must be positive", ErrInvalidInput)
	}

	if _, err := time.Parse(domain.DateFormat, date); err != nil {
		return domain.HoldKey{}, fmt.Errorf("%w: date must be in YYYY-MM-DD format", ErrInvalidInput)
	}

	t, err := types.NewTimeStringFromString(clock)
	if err != nil {
		return domain.HoldKey{}, fmt.Errorf("%w: invalid time: %v", ErrInvalidInput, err)
	}

	return domain.HoldKey{BusinessID: businessID, Date: date, Time: t}, nil
}
