package checkout

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/SMC-DetailingService/internal/domain"
	"github.com/m04kA/SMC-DetailingService/pkg/types"
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if label := f.Tag.Get("label"); label != "" {
			return label
		}
		return f.Name
	})
	return v
}

// validateRequest проверяет форму и перечисляет все некорректные поля
func validateRequest(v *validator.Validate, req *Request) error {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Phone = strings.TrimSpace(req.Phone)
	req.Address = strings.TrimSpace(req.Address)

	err := v.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	return fmt.Errorf("%w: %s", ErrValidation, strings.Join(fields, ", "))
}

// parseStart разбирает дату и время слота в часовом поясе бизнеса
func parseStart(date, clock string, loc *time.Location) (time.Time, types.TimeString, error) {
	day, err := time.ParseInLocation(domain.DateFormat, date, loc)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("%w: date", ErrValidation)
	}

	t, err := types.NewTimeStringFromString(clock)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("%w: time", ErrValidation)
	}

	return t.On(day, loc), t, nil
}
