package models

import (
	"errors"
	"time"

	"github.com/m04kA/SFD-SchedulingService/internal/domain"
	"github.com/m04kA/SFD-SchedulingService/pkg/types"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid appointment status")
)

// Request модели

// ListStaffAppointmentsRequest запрос списка записей сотрудника
type ListStaffAppointmentsRequest struct {
	StaffID         int64      `json:"staffId"`
	StartDate       *time.Time `json:"startDate,omitempty"` // Начало периода (опционально)
	EndDate         *time.Time `json:"endDate,omitempty"`   // Конец периода (опционально)
	Status          *string    `json:"status,omitempty"`    // Фильтр по статусу (опционально)
	IncludeInactive bool       `json:"includeInactive,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListStaffAppointmentsRequest) ToDomainFilter() (domain.StaffAppointmentsFilter, error) {
	filter := domain.StaffAppointmentsFilter{
		StaffID:         r.StaffID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainAppointmentStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// UpdateStatusRequest запрос на смену статуса записи
type UpdateStatusRequest struct {
	Status             string  `json:"status"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
}

// Response модели

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID         int64  `json:"id"`
	StaffID    int64  `json:"staffId"`
	ClientID   int64  `json:"clientId"`
	ClientName string `json:"clientName"`

	ServiceID      int64   `json:"serviceId"`
	ServiceType    string  `json:"serviceType"`
	ServiceCharges float64 `json:"serviceCharges"`

	Date      string    `json:"date"`      // "2025-10-15"
	TimeRange string    `json:"timeRange"` // "2:00 PM - 3:00 PM"
	StartAt   time.Time `json:"startAt"`
	EndAt     time.Time `json:"endAt"`

	Description string `json:"description,omitempty"`
	Status      string `json:"status"` // Включая производный "ongoing"

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO.
// Время записи дублируется в двух видах: машиночитаемые метки
// startAt/endAt и строка timeRange в формате интерфейса.
func FromDomainAppointment(a *domain.Appointment, now time.Time) *AppointmentResponse {
	if a == nil {
		return nil
	}

	timeRange := types.Range{
		Start: types.NewClockTime(a.StartAt),
		End:   types.NewClockTime(a.EndAt),
	}

	resp := &AppointmentResponse{
		ID:                 a.ID,
		StaffID:            a.StaffID,
		ClientID:           a.ClientID,
		ClientName:         a.ClientName,
		ServiceID:          a.ServiceID,
		ServiceType:        a.ServiceType,
		ServiceCharges:     a.ServiceCharges,
		Date:               a.StartAt.Format(domain.DateFormat),
		TimeRange:          timeRange.String(),
		StartAt:            a.StartAt,
		EndAt:              a.EndAt,
		Description:        a.Description,
		Status:             string(a.DisplayStatus(now)),
		CancellationReason: a.CancellationReason,
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}

	if a.CancelledAt != nil {
		cancelledStr := a.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(appts []*domain.Appointment, now time.Time) *AppointmentListResponse {
	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, len(appts)),
	}

	for i, appt := range appts {
		if apptResp := FromDomainAppointment(appt, now); apptResp != nil {
			resp.Appointments[i] = *apptResp
		}
	}

	return resp
}

// ToDomainAppointmentStatus конвертирует строку в domain.AppointmentStatus.
// Производный статус "ongoing" сохранить нельзя.
func ToDomainAppointmentStatus(status string) (domain.AppointmentStatus, error) {
	s := domain.AppointmentStatus(status)

	for _, valid := range domain.StorableStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}
