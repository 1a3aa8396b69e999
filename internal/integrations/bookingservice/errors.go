package bookingservice

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("bookingservice client: booking not found")

	// ErrInternal возвращается при внутренних ошибках клиента (запрос не отправлен или не дошел)
	ErrInternal = errors.New("bookingservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("bookingservice client: invalid response")

	// ErrRejected возвращается, когда сервис ответил статусом вне 2xx
	// Текст ошибки сервиса доступен через upstream.MessageOr
	ErrRejected = errors.New("bookingservice client: request rejected")
)
