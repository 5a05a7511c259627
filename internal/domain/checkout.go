package domain

import (
	"time"

	"github.com/m04kA/SMC-DetailingService/pkg/types"
)

// CheckoutDraft данные формы записи между созданием платежной сессии и её подтверждением
type CheckoutDraft struct {
	SessionID        string
	BusinessID       int64
	ServiceID        int64
	Date             string // YYYY-MM-DD
	Time             types.TimeString
	Name             string
	Email            string
	Phone            string
	Address          string
	Unit             *string
	Vehicle          *string
	Notes            *string
	PaymentSessionID *string
	CreatedAt        time.Time
}

// FullAddress returns address with unit appended when present
func (d *CheckoutDraft) FullAddress() string {
	if d.Unit != nil && *d.Unit != "" {
		return d.Address + ", " + *d.Unit
	}
	return d.Address
}

// HoldKey returns the hold key for the drafted slot
func (d *CheckoutDraft) HoldKey() HoldKey {
	return HoldKey{BusinessID: d.BusinessID, Date: d.Date, Time: d.Time}
}
