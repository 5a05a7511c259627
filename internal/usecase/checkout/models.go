package checkout

import (
	"github.com/m04kA/SMC-DetailingService/internal/domain"
)

// Request данные формы записи
// Тег label задает имя поля в сообщении об ошибке валидации
type Request struct {
	BusinessID int64   `validate:"required" label:"businessId"`
	ServiceID  int64   `validate:"required" label:"service"`
	Date       string  `validate:"required" label:"date"`
	Time       string  `validate:"required" label:"time"`
	Name       string  `validate:"required" label:"name"`
	Email      string  `validate:"required,email" label:"email"`
	Phone      string  `validate:"required" label:"phone"`
	Address    string  `validate:"required,max=300" label:"address"`
	Unit       *string `label:"unit"`
	Vehicle    *string `label:"vehicle"`
	Notes      *string `validate:"omitempty,max=500" label:"notes"`
}

// PaymentRedirect ссылка на страницу оплаты
type PaymentRedirect struct {
	SessionID  string
	SessionURL string
}

// ConfirmedBooking результат подтверждения записи
// Warnings содержит сбои календаря и почты, которые не отменяют запись
type ConfirmedBooking struct {
	Booking  *domain.Booking
	Business *domain.Business
	Service  *domain.Service
	Customer *domain.Customer
	Vehicle  *string
	Warnings []string
}
