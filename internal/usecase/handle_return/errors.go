package handle_return

import "errors"

var (
	// ErrInvalidBookingID возвращается при некорректном ID бронирования
	ErrInvalidBookingID = errors.New("invalid booking id")

	// ErrNothingToPickUp возвращается, когда для бронирования нет записи об оплате
	ErrNothingToPickUp = errors.New("no payment success record for booking")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
