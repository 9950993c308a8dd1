package reschedule_appointment

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	rescheduleAppointment "github.com/m04kA/SMC-SalonBooking/internal/usecase/reschedule_appointment"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

type stubUseCase struct {
	got *rescheduleAppointment.Request
	err error
}

func (s *stubUseCase) Execute(_ context.Context, req *rescheduleAppointment.Request) (*rescheduleAppointment.Response, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	return &rescheduleAppointment.Response{Appointment: &domain.Appointment{
		ID:              req.AppointmentID,
		AppointmentDate: req.Date,
		AppointmentTime: req.Time,
		Status:          domain.StatusScheduled,
	}}, nil
}

func serve(uc RescheduleAppointmentUseCase, body string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/appointments/{appointmentId}/reschedule", NewHandler(uc, logger.NewNop()).Handle).Methods(http.MethodPatch)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/api/v1/appointments/appt-1/reschedule", strings.NewReader(body)))
	return rec
}

func TestHandler_Handle(t *testing.T) {
	uc := &stubUseCase{}
	rec := serve(uc, `{"appointmentDate":"2024-01-16","appointmentTime":"9:30"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, uc.got)
	assert.Equal(t, "appt-1", uc.got.AppointmentID)
	assert.Equal(t, types.TimeString("09:30"), uc.got.Time)
	assert.Nil(t, uc.got.ServiceStylistPairs)
	assert.Contains(t, rec.Body.String(), `"appointmentDate":"2024-01-16"`)
}

func TestHandler_Handle_Errors(t *testing.T) {
	rejected := &domain.BookingRejectedError{Result: domain.ValidationResult{Errors: []string{"Time slot 10:00 is already booked"}}}
	valid := `{"appointmentDate":"2024-01-16","appointmentTime":"10:00"}`

	tests := []struct {
		name string
		body string
		err  error
		want int
	}{
		{"bad date", `{"appointmentDate":"16.01.2024"}`, nil, http.StatusBadRequest},
		{"not found", valid, rescheduleAppointment.ErrAppointmentNotFound, http.StatusNotFound},
		{"terminal status", valid, rescheduleAppointment.ErrInvalidStatus, http.StatusConflict},
		{"past date", valid, rescheduleAppointment.ErrInvalidDate, http.StatusBadRequest},
		{"rejected", valid, rejected, http.StatusConflict},
		{"internal", valid, errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, serve(&stubUseCase{err: tt.err}, tt.body).Code)
		})
	}
}
