package get_stylist_slots

import "errors"

var (
	// ErrInvalidDate возвращается, когда дата в прошлом
	ErrInvalidDate = errors.New("get_stylist_slots: invalid date")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_stylist_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_stylist_slots: internal error")
)
