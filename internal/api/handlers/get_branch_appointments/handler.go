package get_branch_appointments

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/service/appointments"
)

const (
	msgInvalidBranchID  = "некорректный ID филиала"
	msgInvalidParams    = "некорректные параметры запроса"
	msgInvalidStatus    = "неизвестный статус записи"
	msgInvalidTimeRange = "начало периода позже конца"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/branches/{branchId}/appointments
// Query params: date, startDate, endDate, status, stylistId, includeInactive (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	branchID := mux.Vars(r)["branchId"]
	if branchID == "" {
		h.logger.Warn("GET /branches/{id}/appointments - Missing branch ID")
		handlers.RespondBadRequest(w, msgInvalidBranchID)
		return
	}

	serviceReq, err := ToServiceRequest(branchID, r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /branches/{id}/appointments - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.ListBranchAppointments(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidStatus):
			h.logger.Warn("GET /branches/{id}/appointments - Invalid status: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, appointments.ErrInvalidTimeRange):
			h.logger.Warn("GET /branches/{id}/appointments - Invalid time range: branch_id=%s", branchID)
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /branches/{id}/appointments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /branches/{id}/appointments - Failed to list appointments: branch_id=%s, error=%v",
				branchID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /branches/{id}/appointments - Appointments retrieved successfully: branch_id=%s, count=%d",
		branchID, len(result.Appointments))
	handlers.RespondJSON(w, http.StatusOK, result)
}
