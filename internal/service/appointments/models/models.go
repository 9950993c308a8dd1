package models

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// Request модели

// CancelRequest запрос на отмену записи
type CancelRequest struct {
	CancellationReason string `json:"cancellationReason"`
}

// UpdateStatusRequest запрос на смену статуса записи
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// ListAppointmentsRequest запрос на получение записей филиала
type ListAppointmentsRequest struct {
	BranchID        string
	StartDate       *types.Date
	EndDate         *types.Date
	Status          *string
	StylistID       *string
	IncludeInactive bool
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListAppointmentsRequest) ToDomainFilter() (domain.AppointmentsFilter, error) {
	filter := domain.AppointmentsFilter{
		BranchID:        r.BranchID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		StylistID:       r.StylistID,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := domain.ParseAppointmentStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// ServicePairResponse услуга записи и мастер
type ServicePairResponse struct {
	ServiceID   string  `json:"serviceId"`
	StylistID   string  `json:"stylistId"`
	StylistName *string `json:"stylistName,omitempty"`
}

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID                  string                `json:"id"`
	BranchID            string                `json:"branchId"`
	ClientName          string                `json:"clientName"`
	ClientPhone         *string               `json:"clientPhone,omitempty"`
	AppointmentDate     string                `json:"appointmentDate"` // "2024-01-15"
	AppointmentTime     string                `json:"appointmentTime"` // "10:00"
	Status              string                `json:"status"`
	ServiceStylistPairs []ServicePairResponse `json:"serviceStylistPairs"`
	Notes               *string               `json:"notes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// ValidationResultResponse результат проверки записи
type ValidationResultResponse struct {
	IsValid   bool                  `json:"isValid"`
	Errors    []string              `json:"errors"`
	Warnings  []string              `json:"warnings"`
	Conflicts []AppointmentResponse `json:"conflicts"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	resp := &AppointmentResponse{
		ID:                  a.ID,
		BranchID:            a.BranchID,
		ClientName:          a.ClientName,
		ClientPhone:         a.ClientPhone,
		AppointmentDate:     a.AppointmentDate.String(),
		AppointmentTime:     a.AppointmentTime.String(),
		Status:              string(a.Status),
		ServiceStylistPairs: make([]ServicePairResponse, 0, len(a.ServiceStylistPairs)),
		Notes:               a.Notes,
		CancellationReason:  a.CancellationReason,
		CreatedAt:           a.CreatedAt,
		UpdatedAt:           a.UpdatedAt,
	}

	for _, pair := range a.ServiceStylistPairs {
		resp.ServiceStylistPairs = append(resp.ServiceStylistPairs, ServicePairResponse{
			ServiceID:   pair.ServiceID,
			StylistID:   pair.StylistID,
			StylistName: pair.StylistName,
		})
	}

	if a.CancelledAt != nil {
		cancelledStr := a.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(appointments []*domain.Appointment) *AppointmentListResponse {
	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, 0, len(appointments)),
	}

	for _, a := range appointments {
		if item := FromDomainAppointment(a); item != nil {
			resp.Appointments = append(resp.Appointments, *item)
		}
	}

	return resp
}

// FromValidationResult конвертирует результат проверки в DTO
func FromValidationResult(r domain.ValidationResult) *ValidationResultResponse {
	resp := &ValidationResultResponse{
		IsValid:   r.IsValid,
		Errors:    r.Errors,
		Warnings:  r.Warnings,
		Conflicts: make([]AppointmentResponse, 0, len(r.Conflicts)),
	}
	if resp.Errors == nil {
		resp.Errors = []string{}
	}
	if resp.Warnings == nil {
		resp.Warnings = []string{}
	}

	for i := range r.Conflicts {
		resp.Conflicts = append(resp.Conflicts, *FromDomainAppointment(&r.Conflicts[i]))
	}

	return resp
}

// ToDomainPairs конвертирует пары из запроса в domain модели
func ToDomainPairs(pairs []ServicePairResponse) []domain.ServiceStylistPair {
	if pairs == nil {
		return nil
	}
	out := make([]domain.ServiceStylistPair, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, domain.ServiceStylistPair{
			ServiceID:   p.ServiceID,
			StylistID:   p.StylistID,
			StylistName: p.StylistName,
		})
	}
	return out
}
