package get_stylist_slots

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	getStylistSlots "github.com/m04kA/SMC-SalonBooking/internal/usecase/get_stylist_slots"
)

const (
	msgMissingDate     = "дата обязательна"
	msgMissingBranchID = "ID филиала обязателен"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgPastDate        = "дата в прошлом"
	msgInvalidInput    = "некорректные параметры запроса"
)

type Handler struct {
	useCase GetStylistSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetStylistSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/stylists/{stylistId}/available-slots
// Query params: date, branchId (required), excludeAppointmentId (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	stylistID := mux.Vars(r)["stylistId"]
	query := r.URL.Query()

	dateStr := query.Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /stylists/{id}/available-slots - Missing date: stylist_id=%s", stylistID)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	branchID := query.Get("branchId")
	if branchID == "" {
		h.logger.Warn("GET /stylists/{id}/available-slots - Missing branch ID: stylist_id=%s", stylistID)
		handlers.RespondBadRequest(w, msgMissingBranchID)
		return
	}

	useCaseReq, err := ToUseCaseRequest(stylistID, branchID, dateStr, query.Get("excludeAppointmentId"))
	if err != nil {
		h.logger.Warn("GET /stylists/{id}/available-slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getStylistSlots.ErrInvalidDate):
			h.logger.Warn("GET /stylists/{id}/available-slots - Past date: stylist_id=%s, date=%s", stylistID, dateStr)
			handlers.RespondBadRequest(w, msgPastDate)

		case errors.Is(err, getStylistSlots.ErrInvalidInput):
			h.logger.Warn("GET /stylists/{id}/available-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /stylists/{id}/available-slots - Failed to get slots: stylist_id=%s, error=%v", stylistID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /stylists/{id}/available-slots - Slots retrieved successfully: stylist_id=%s, slots_count=%d",
		stylistID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
