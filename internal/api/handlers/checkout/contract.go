package checkout

import (
	"context"

	checkoutUC "github.com/m04kA/SMC-DetailingService/internal/usecase/checkout"
)

type CheckoutUseCase interface {
	Checkout(ctx context.Context, req *checkoutUC.Request) (*checkoutUC.PaymentRedirect, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
