package get_branch_settings

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
)

const msgInvalidBranchID = "некорректный ID филиала"

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

// Handle GET /api/v1/branches/{branchId}/settings
// Для филиала без сохраненных настроек возвращаются настройки по умолчанию
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	branchID := mux.Vars(r)["branchId"]
	if branchID == "" {
		h.logger.Warn("GET /branches/{id}/settings - Missing branch ID")
		handlers.RespondBadRequest(w, msgInvalidBranchID)
		return
	}

	settings, err := h.service.GetSettingsResponse(r.Context(), branchID)
	if err != nil {
		h.logger.Error("GET /branches/{id}/settings - Failed to get settings: branch_id=%s, error=%v", branchID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /branches/{id}/settings - Settings retrieved successfully: branch_id=%s", branchID)
	handlers.RespondJSON(w, http.StatusOK, settings)
}
