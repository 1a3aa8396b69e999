package handle_return

import (
	"context"

	handleReturn "github.com/m04kA/SMC-SalonCheckout/internal/usecase/handle_return"
)

type HandleReturnUseCase interface {
	Execute(ctx context.Context, req *handleReturn.Request) *handleReturn.Response
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
