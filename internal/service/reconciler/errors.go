package reconciler

import "errors"

var (
	// ErrInvalidBookingID возвращается для неположительного ID бронирования
	ErrInvalidBookingID = errors.New("reconciler: invalid booking id")

	// ErrInternal возвращается при ошибке чтения состояния подтверждения
	ErrInternal = errors.New("reconciler: internal error")
)
