package get_stylist_slots

import (
	getStylistSlots "github.com/m04kA/SMC-SalonBooking/internal/usecase/get_stylist_slots"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// StylistSlotsResponse HTTP response model
type StylistSlotsResponse struct {
	StylistID           string   `json:"stylistId"`
	BranchID            string   `json:"branchId"`
	Date                string   `json:"date"`
	SlotDurationMinutes int      `json:"slotDurationMinutes"`
	Slots               []string `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getStylistSlots.Response) *StylistSlotsResponse {
	slots := make([]string, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = slot.String()
	}

	return &StylistSlotsResponse{
		StylistID:           resp.StylistID,
		BranchID:            resp.BranchID,
		Date:                resp.Date.String(),
		SlotDurationMinutes: resp.SlotDurationMinutes,
		Slots:               slots,
	}
}

// ToUseCaseRequest создает запрос use case из параметров URL
func ToUseCaseRequest(stylistID, branchID, dateStr, excludeID string) (*getStylistSlots.Request, error) {
	date, err := types.ParseDate(dateStr)
	if err != nil {
		return nil, err
	}

	req := &getStylistSlots.Request{
		StylistID: stylistID,
		BranchID:  branchID,
		Date:      date,
	}
	if excludeID != "" {
		req.ExcludeAppointmentID = &excludeID
	}
	return req, nil
}
