package hold_slot

import (
	"context"

	holdSlot "github.com/m04kA/SMC-DetailingService/internal/usecase/hold_slot"
)

type HoldUseCase interface {
	Hold(ctx context.Context, req *holdSlot.HoldRequest) (*holdSlot.HoldResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
