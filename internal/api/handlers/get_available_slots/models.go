package get_available_slots

import (
	getAvailableSlots "github.com/m04kA/SMC-DetailingService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date  string          `json:"date"`
	Slots []AvailableSlot `json:"slots"`
}

// AvailableSlot модель временного слота
type AvailableSlot struct {
	Start    string `json:"start"`
	End      string `json:"end"`
	StartsAt string `json:"startsAt"`
	EndsAt   string `json:"endsAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			Start:    slot.Start,
			End:      slot.End,
			StartsAt: slot.StartsAt,
			EndsAt:   slot.EndsAt,
		}
	}

	return &AvailableSlotsResponse{
		Date:  resp.Date,
		Slots: slots,
	}
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(businessID, serviceID int64, date, address, unit string) *getAvailableSlots.Request {
	req := &getAvailableSlots.Request{
		BusinessID: businessID,
		ServiceID:  serviceID,
		Date:       date,
		Address:    address,
	}
	if unit != "" {
		req.Unit = &unit
	}
	return req
}
