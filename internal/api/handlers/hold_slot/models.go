package hold_slot

import (
	holdSlot "github.com/m04kA/SMC-DetailingService/internal/usecase/hold_slot"
)

// HoldSlotRequest HTTP request model
type HoldSlotRequest struct {
	Date      string `json:"date"`
	Time      string `json:"time"`
	ServiceID int64  `json:"serviceId"`
}

// HoldSlotResponse HTTP response model
type HoldSlotResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	ExpiresIn int    `json:"expiresIn"` // секунды
}

// ToUseCaseRequest конвертирует HTTP request в модель use case
func (r *HoldSlotRequest) ToUseCaseRequest(businessID int64) *holdSlot.HoldRequest {
	return &holdSlot.HoldRequest{
		BusinessID: businessID,
		ServiceID:  r.ServiceID,
		Date:       r.Date,
		Time:       r.Time,
	}
}
