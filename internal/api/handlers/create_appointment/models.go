package create_appointment

import (
	"time"

	"github.com/m04kA/SFD-SchedulingService/internal/domain"
	createAppointment "github.com/m04kA/SFD-SchedulingService/internal/usecase/create_appointment"
	"github.com/m04kA/SFD-SchedulingService/pkg/types"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	StaffID     int64  `json:"staffId"`
	ClientID    int64  `json:"clientId"`
	ClientName  string `json:"clientName"`
	ServiceID   int64  `json:"serviceId"`
	Date        string `json:"date"`     // "2025-10-15"
	TimeSlot    string `json:"timeSlot"` // "2:00 PM - 3:00 PM"
	Description string `json:"description,omitempty"`

	// ConfirmDurationMismatch подтверждает слот с длительностью,
	// отличной от длительности услуги
	ConfirmDurationMismatch bool `json:"confirmDurationMismatch,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
// (с парсингом даты и диапазона времени)
func (r *CreateAppointmentRequest) ToUseCaseRequest(session *domain.Session) (*createAppointment.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	slot, err := types.ParseRange(r.TimeSlot)
	if err != nil {
		return nil, err
	}

	return &createAppointment.Request{
		Session:                 session,
		StaffID:                 r.StaffID,
		ClientID:                r.ClientID,
		ClientName:              r.ClientName,
		ServiceID:               r.ServiceID,
		Date:                    date,
		StartTime:               slot.Start,
		EndTime:                 slot.End,
		Description:             r.Description,
		ConfirmDurationMismatch: r.ConfirmDurationMismatch,
	}, nil
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID         int64  `json:"id"`
	StaffID    int64  `json:"staffId"`
	ClientID   int64  `json:"clientId"`
	ClientName string `json:"clientName"`

	ServiceID      int64   `json:"serviceId"`
	ServiceType    string  `json:"serviceType"`
	ServiceCharges float64 `json:"serviceCharges"`

	Date      string    `json:"date"`
	TimeRange string    `json:"timeRange"`
	StartAt   time.Time `json:"startAt"`
	EndAt     time.Time `json:"endAt"`

	Description string `json:"description,omitempty"`
	Status      string `json:"status"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
	timeRange := types.Range{
		Start: types.NewClockTime(resp.StartAt),
		End:   types.NewClockTime(resp.EndAt),
	}

	return &AppointmentResponse{
		ID:             resp.ID,
		StaffID:        resp.StaffID,
		ClientID:       resp.ClientID,
		ClientName:     resp.ClientName,
		ServiceID:      resp.ServiceID,
		ServiceType:    resp.ServiceType,
		ServiceCharges: resp.ServiceCharges,
		Date:           resp.StartAt.Format(domain.DateFormat),
		TimeRange:      timeRange.String(),
		StartAt:        resp.StartAt,
		EndAt:          resp.EndAt,
		Description:    resp.Description,
		Status:         resp.Status,
		CreatedAt:      resp.CreatedAt,
		UpdatedAt:      resp.UpdatedAt,
	}
}
