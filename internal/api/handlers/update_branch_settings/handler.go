package update_branch_settings

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBooking/internal/service/branches"
	"github.com/m04kA/SMC-SalonBooking/internal/service/branches/models"
)

const (
	msgInvalidBranchID    = "некорректный ID филиала"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidData        = "некорректные данные настроек"
)

type Handler struct {
	service SettingsService
	logger  Logger
}

func NewHandler(service SettingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/branches/{branchId}/settings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	branchID := mux.Vars(r)["branchId"]
	if branchID == "" {
		h.logger.Warn("PUT /branches/{id}/settings - Missing branch ID")
		handlers.RespondBadRequest(w, msgInvalidBranchID)
		return
	}

	userID, _ := middleware.GetUserID(r.Context())

	var req models.UpdateSettingsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /branches/{id}/settings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.BranchID = branchID

	settings, err := h.service.UpdateSettings(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, branches.ErrInvalidInput):
			h.logger.Warn("PUT /branches/{id}/settings - Invalid data: branch_id=%s, error=%v", branchID, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("PUT /branches/{id}/settings - Failed to update settings: branch_id=%s, error=%v", branchID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /branches/{id}/settings - Settings updated successfully: branch_id=%s, user_id=%d", branchID, userID)
	handlers.RespondJSON(w, http.StatusOK, settings)
}
