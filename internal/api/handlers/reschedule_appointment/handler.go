package reschedule_appointment

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/appointments/models"
	rescheduleAppointment "github.com/m04kA/SMC-SalonBooking/internal/usecase/reschedule_appointment"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidDateTime      = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgInvalidInput         = "некорректные данные переноса"
	msgPastDate             = "дата записи в прошлом"
	msgNotFound             = "запись не найдена"
	msgInvalidStatus        = "запись нельзя перенести в текущем статусе"
)

type Handler struct {
	useCase RescheduleAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase RescheduleAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/appointments/{appointmentId}/reschedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	appointmentID := mux.Vars(r)["appointmentId"]
	if appointmentID == "" {
		h.logger.Warn("PATCH /appointments/{id}/reschedule - Missing appointment ID")
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	var req RescheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /appointments/{id}/reschedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(appointmentID)
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id}/reschedule - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var rejected *domain.BookingRejectedError
		switch {
		case errors.As(err, &rejected):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Reschedule rejected: appointment_id=%s, errors=%v",
				appointmentID, rejected.Result.Errors)
			handlers.RespondJSON(w, http.StatusConflict, models.FromValidationResult(rejected.Result))

		case errors.Is(err, rescheduleAppointment.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Appointment not found: appointment_id=%s", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, rescheduleAppointment.ErrInvalidStatus):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Invalid status: appointment_id=%s", appointmentID)
			handlers.RespondConflict(w, msgInvalidStatus)

		case errors.Is(err, rescheduleAppointment.ErrInvalidDate):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Past date: %s", req.AppointmentDate)
			handlers.RespondBadRequest(w, msgPastDate)

		case errors.Is(err, rescheduleAppointment.ErrInvalidInput):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /appointments/{id}/reschedule - Failed to reschedule: appointment_id=%s, error=%v", appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /appointments/{id}/reschedule - Appointment rescheduled successfully: appointment_id=%s, date=%s, time=%s",
		appointmentID, result.Appointment.AppointmentDate, result.Appointment.AppointmentTime)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainAppointment(result.Appointment))
}
