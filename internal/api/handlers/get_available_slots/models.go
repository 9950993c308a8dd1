package get_available_slots

import (
	getAvailableSlots "github.com/m04kA/SMC-SalonBooking/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	BranchID            string   `json:"branchId"`
	Date                string   `json:"date"`
	SlotDurationMinutes int      `json:"slotDurationMinutes"`
	Slots               []string `json:"slots"` // ["09:00", "09:30"]
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]string, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = slot.String()
	}

	return &AvailableSlotsResponse{
		BranchID:            resp.BranchID,
		Date:                resp.Date.String(),
		SlotDurationMinutes: resp.SlotDurationMinutes,
		Slots:               slots,
	}
}

// ToUseCaseRequest создает запрос use case из параметров URL
func ToUseCaseRequest(branchID, dateStr, stylistID, excludeID string) (*getAvailableSlots.Request, error) {
	date, err := types.ParseDate(dateStr)
	if err != nil {
		return nil, err
	}

	req := &getAvailableSlots.Request{
		BranchID: branchID,
		Date:     date,
	}
	if stylistID != "" {
		req.StylistID = &stylistID
	}
	if excludeID != "" {
		req.ExcludeAppointmentID = &excludeID
	}
	return req, nil
}
