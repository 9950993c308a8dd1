package reschedule_appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("reschedule_appointment: appointment not found")

	// ErrInvalidStatus возвращается, когда запись в текущем статусе нельзя перенести
	ErrInvalidStatus = errors.New("reschedule_appointment: appointment cannot be rescheduled in its current status")

	// ErrInvalidDate возвращается, когда новая дата в прошлом
	ErrInvalidDate = errors.New("reschedule_appointment: invalid appointment date")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reschedule_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_appointment: internal error")
)
