package retry_payment

import (
	"context"

	paymentsModels "github.com/m04kA/SMC-SalonCheckout/internal/service/payments/models"
	retryPayment "github.com/m04kA/SMC-SalonCheckout/internal/usecase/retry_payment"
)

type RetryPaymentUseCase interface {
	Execute(ctx context.Context, req *retryPayment.Request) (*paymentsModels.DispatchResult, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
