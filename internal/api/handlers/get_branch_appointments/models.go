package get_branch_appointments

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/m04kA/SMC-SalonBooking/internal/service/appointments/models"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// ToServiceRequest формирует запрос к сервису из query параметров
// date задает один день, startDate/endDate задают период
func ToServiceRequest(branchID string, query url.Values) (*models.ListAppointmentsRequest, error) {
	req := &models.ListAppointmentsRequest{
		BranchID:        branchID,
		IncludeInactive: false, // По умолчанию только активные
	}

	if dateStr := query.Get("date"); dateStr != "" {
		date, err := types.ParseDate(dateStr)
		if err != nil {
			return nil, err
		}
		req.StartDate = &date
		req.EndDate = &date
	}

	if startStr := query.Get("startDate"); startStr != "" {
		start, err := types.ParseDate(startStr)
		if err != nil {
			return nil, err
		}
		req.StartDate = &start
	}

	if endStr := query.Get("endDate"); endStr != "" {
		end, err := types.ParseDate(endStr)
		if err != nil {
			return nil, err
		}
		req.EndDate = &end
	}

	if statusStr := query.Get("status"); statusStr != "" {
		req.Status = &statusStr
	}

	if stylistID := query.Get("stylistId"); stylistID != "" {
		req.StylistID = &stylistID
	}

	if includeInactiveStr := query.Get("includeInactive"); includeInactiveStr != "" {
		includeInactive, err := strconv.ParseBool(includeInactiveStr)
		if err != nil {
			return nil, fmt.Errorf("invalid includeInactive value: %w", err)
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
