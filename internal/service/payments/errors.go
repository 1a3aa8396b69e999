package payments

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("payments: invalid input data")

	// ErrUnsupportedMethod возвращается для неизвестного способа оплаты
	ErrUnsupportedMethod = errors.New("payments: unsupported payment method")

	// ErrPayAtSalonFailed возвращается, когда PaymentService не принял оплату в салоне
	ErrPayAtSalonFailed = errors.New("payments: failed to setup pay-at-salon")

	// ErrPaymentLinkFailed возвращается, когда PaymentService не создал ссылку на оплату
	ErrPaymentLinkFailed = errors.New("payments: failed to create payment link")

	// ErrPaymentLinkMissing возвращается, когда ответ 2xx не содержит ссылки
	ErrPaymentLinkMissing = errors.New("payments: payment link not generated")

	// ErrHandoffFailed возвращается, когда не удалось сохранить запись перед переходом на шлюз
	ErrHandoffFailed = errors.New("payments: failed to store pending payment")
)
