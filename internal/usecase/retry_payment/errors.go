package retry_payment

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInvalidPaymentMethod возвращается для неизвестного способа оплаты
	ErrInvalidPaymentMethod = errors.New("invalid payment method")

	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrAccessDenied возвращается, когда бронирование принадлежит другому клиенту
	ErrAccessDenied = errors.New("access denied")

	// ErrBookingCancelled возвращается для отмененного бронирования
	ErrBookingCancelled = errors.New("booking is cancelled")

	// ErrAlreadyPaid возвращается, когда оплата бронирования уже завершена
	ErrAlreadyPaid = errors.New("booking is already paid")

	// ErrInvalidAmount возвращается, когда сумму к оплате не удалось определить
	ErrInvalidAmount = errors.New("booking amount cannot be determined")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
