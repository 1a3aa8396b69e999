package offeringservice

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("offeringservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("offeringservice client: invalid response")

	// ErrServiceDegraded возвращается, когда каталог салона недоступен
	// Создание бронирования без каталога невозможно: нельзя проверить услуги и посчитать сумму
	ErrServiceDegraded = errors.New("offeringservice unavailable: catalog cannot be loaded")
)
