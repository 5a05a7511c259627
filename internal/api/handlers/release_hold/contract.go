package release_hold

import (
	"context"

	holdSlot "github.com/m04kA/SMC-DetailingService/internal/usecase/hold_slot"
)

type ReleaseUseCase interface {
	Release(ctx context.Context, req *holdSlot.ReleaseRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
