package cancel_appointment

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

	"github.com/m04kA/SMC-SalonBooking/internal/service/appointments"
	"github.com/m04kA/SMC-SalonBooking/internal/service/appointments/models"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
)

type stubService struct {
	gotReason string
	err       error
}

func (s *stubService) Cancel(_ context.Context, id string, req *models.CancelRequest) (*models.AppointmentResponse, error) {
	s.gotReason = req.CancellationReason
	if s.err != nil {
		return nil, s.err
	}
	return &models.AppointmentResponse{ID: id, Status: "cancelled"}, nil
}

func serve(svc AppointmentService, body string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/appointments/{appointmentId}/cancel", NewHandler(svc, logger.NewNop()).Handle).Methods(http.MethodPatch)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/api/v1/appointments/appt-1/cancel", strings.NewReader(body)))
	return rec
}

func TestHandler_Handle(t *testing.T) {
	svc := &stubService{}
	rec := serve(svc, `{"cancellationReason":"sick"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "sick", svc.gotReason)
	assert.Contains(t, rec.Body.String(), `"status":"cancelled"`)
}

func TestHandler_Handle_EmptyBody(t *testing.T) {
	svc := &stubService{}
	rec := serve(svc, "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, svc.gotReason)
}

func TestHandler_Handle_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		err  error
		want int
	}{
		{"bad json", `{"foo":1}`, nil, http.StatusBadRequest},
		{"not found", "", appointments.ErrAppointmentNotFound, http.StatusNotFound},
		{"terminal status", "", appointments.ErrCannotCancel, http.StatusConflict},
		{"reason too long", "", appointments.ErrInvalidInput, http.StatusBadRequest},
		{"internal", "", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, serve(&stubService{err: tt.err}, tt.body).Code)
		})
	}
}
