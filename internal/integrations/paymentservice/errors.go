package paymentservice

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента (запрос не отправлен или не дошел)
	ErrInternal = errors.New("paymentservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("paymentservice client: invalid response")

	// ErrRejected возвращается, когда сервис ответил статусом вне 2xx
	ErrRejected = errors.New("paymentservice client: request rejected")
)
