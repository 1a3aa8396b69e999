package handoff

import "errors"

var (
	// ErrRecordNotFound возвращается, когда записи нет или срок её жизни истек
	ErrRecordNotFound = errors.New("handoff.repository: record not found")

	// ErrInvalidRecord возвращается при попытке сохранить некорректную запись
	ErrInvalidRecord = errors.New("handoff.repository: invalid record")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("handoff.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения запроса
	ErrExecQuery = errors.New("handoff.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("handoff.repository: failed to scan row")

	// ErrCodec возвращается при ошибке сериализации записи для Redis
	ErrCodec = errors.New("handoff.repository: failed to encode record")
)
