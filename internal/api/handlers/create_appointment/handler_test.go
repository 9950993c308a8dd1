package create_appointment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/appointments/models"
	createAppointment "github.com/m04kA/SMC-SalonBooking/internal/usecase/create_appointment"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
)

type stubUseCase struct {
	got *createAppointment.Request
	err error
}

func (s *stubUseCase) Execute(_ context.Context, req *createAppointment.Request) (*createAppointment.Response, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	return &createAppointment.Response{Appointment: &domain.Appointment{
		ID:                  "appt-1",
		BranchID:            req.BranchID,
		ClientName:          req.ClientName,
		AppointmentDate:     req.Date,
		AppointmentTime:     req.Time,
		Status:              domain.StatusScheduled,
		ServiceStylistPairs: req.ServiceStylistPairs,
	}}, nil
}

const validBody = `{"branchId":"b1","clientName":"Alice","appointmentDate":"2024-01-15","appointmentTime":"10:00",
	"serviceStylistPairs":[{"serviceId":"cut","stylistId":"st-1"}]}`

func post(h *Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", strings.NewReader(body))
	req = req.WithContext(middleware.WithUserID(req.Context(), 7))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandler_Handle_Created(t *testing.T) {
	uc := &stubUseCase{}
	rec := post(NewHandler(uc, logger.NewNop()), validBody)

	require.Equal(t, http.StatusCreated, rec.Code)

	var body models.AppointmentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "appt-1", body.ID)
	assert.Equal(t, "scheduled", body.Status)
	assert.Equal(t, "2024-01-15", body.AppointmentDate)
	assert.Equal(t, "cut", body.ServiceStylistPairs[0].ServiceID)
}

func TestHandler_Handle_Conflict(t *testing.T) {
	rejected := &domain.BookingRejectedError{Result: domain.ValidationResult{
		Errors:   []string{"Time slot 10:00 is already booked"},
		Warnings: []string{},
	}}
	uc := &stubUseCase{err: fmt.Errorf("wrapped: %w", rejected)}

	rec := post(NewHandler(uc, logger.NewNop()), validBody)
	require.Equal(t, http.StatusConflict, rec.Code)

	var body models.ValidationResultResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.IsValid)
	assert.Equal(t, []string{"Time slot 10:00 is already booked"}, body.Errors)
}

func TestHandler_Handle_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		err  error
		want int
	}{
		{"bad json", `[]`, nil, http.StatusBadRequest},
		{"bad time", `{"appointmentTime":"10h"}`, nil, http.StatusBadRequest},
		{"invalid input", validBody, createAppointment.ErrInvalidInput, http.StatusBadRequest},
		{"past date", validBody, createAppointment.ErrInvalidDate, http.StatusBadRequest},
		{"internal", validBody, errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(NewHandler(&stubUseCase{err: tt.err}, logger.NewNop()), tt.body)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
