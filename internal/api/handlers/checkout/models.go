package checkout

import (
	checkoutUC "github.com/m04kA/SMC-DetailingService/internal/usecase/checkout"
)

// CheckoutRequest HTTP request model
type CheckoutRequest struct {
	ServiceID int64   `json:"serviceId"`
	Date      string  `json:"date"`
	Time      string  `json:"time"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Phone     string  `json:"phone"`
	Address   string  `json:"address"`
	Unit      *string `json:"unit,omitempty"`
	Vehicle   *string `json:"vehicle,omitempty"`
	Notes     *string `json:"notes,omitempty"`
}

// CheckoutResponse HTTP response model
type CheckoutResponse struct {
	SessionID  string `json:"sessionId"`
	SessionURL string `json:"sessionUrl"`
}

// ToUseCaseRequest конвертирует HTTP request в модель use case
func (r *CheckoutRequest) ToUseCaseRequest(businessID int64) *checkoutUC.Request {
	return &checkoutUC.Request{
		BusinessID: businessID,
		ServiceID:  r.ServiceID,
		Date:       r.Date,
		Time:       r.Time,
		Name:       r.Name,
		Email:      r.Email,
		Phone:      r.Phone,
		Address:    r.Address,
		Unit:       r.Unit,
		Vehicle:    r.Vehicle,
		Notes:      r.Notes,
	}
}
