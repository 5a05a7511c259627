package finalize_checkout

import (
	"context"

	checkoutUC "github.com/m04kA/SMC-DetailingService/internal/usecase/checkout"
)

type FinalizeUseCase interface {
	Finalize(ctx context.Context, sessionID string) (*checkoutUC.ConfirmedBooking, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
