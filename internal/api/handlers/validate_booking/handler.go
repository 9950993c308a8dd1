package validate_booking

import (
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/service/appointments/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateTime    = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
)

type Handler struct {
	useCase ValidateBookingUseCase
	logger  Logger
}

func NewHandler(useCase ValidateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/validate
// Всегда отвечает 200 с результатом проверки, кроме ошибок формата и внутренних сбоев
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req ValidateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/validate - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings/validate - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		h.logger.Error("POST /bookings/validate - Failed to validate booking: branch_id=%s, error=%v", req.BranchID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /bookings/validate - Booking validated: branch_id=%s, valid=%t, errors=%d",
		req.BranchID, result.Result.IsValid, len(result.Result.Errors))
	handlers.RespondJSON(w, http.StatusOK, models.FromValidationResult(result.Result))
}
