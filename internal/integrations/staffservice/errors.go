package staffservice

import "errors"

var (
	// ErrStylistNotFound возвращается, когда мастер не найден в справочнике
	ErrStylistNotFound = errors.New("staffservice client: stylist not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("staffservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("staffservice client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation.
	// Имя мастера заменяется его id.
	ErrServiceDegraded = errors.New("staffservice unavailable: graceful degradation applied")
)
