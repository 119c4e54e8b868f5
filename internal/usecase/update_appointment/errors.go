package update_appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("update_appointment: appointment not found")

	// ErrStaffNotFound возвращается, когда сотрудник не найден
	ErrStaffNotFound = errors.New("update_appointment: staff member not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("update_appointment: service not found")

	// ErrServiceNotProvided возвращается, когда сотрудник не оказывает указанную услугу
	ErrServiceNotProvided = errors.New("update_appointment: staff member does not provide this service")

	// ErrAccessDenied возвращается, когда у сотрудника нет прав на изменение записи
	ErrAccessDenied = errors.New("update_appointment: access denied")

	// ErrSessionExpired возвращается, когда токен сессии истёк на стороне StaffService
	ErrSessionExpired = errors.New("update_appointment: session expired")

	// ErrNotUpdatable возвращается при попытке изменить отменённую или завершённую запись
	ErrNotUpdatable = errors.New("update_appointment: appointment can no longer be updated")

	// ErrScheduleUnreadable возвращается, когда расписание сотрудника
	// содержит нечитаемую строку в запрошенный день
	ErrScheduleUnreadable = errors.New("update_appointment: working hours are unreadable")

	// ErrOutsideWorkingHours возвращается, когда слот не помещается
	// целиком ни в один рабочий интервал дня
	ErrOutsideWorkingHours = errors.New("update_appointment: slot is outside working hours")

	// ErrSlotConflict возвращается, когда слот пересекается с другой записью
	ErrSlotConflict = errors.New("update_appointment: slot conflicts with an existing appointment")

	// ErrDurationMismatch возвращается, когда длительность слота не совпадает
	// с длительностью услуги и клиент не подтвердил расхождение
	ErrDurationMismatch = errors.New("update_appointment: slot duration does not match service duration")

	// ErrBusy возвращается, когда по этой записи уже выполняется другая операция
	ErrBusy = errors.New("update_appointment: another operation on this appointment is in progress")

	// ErrStaffServiceUnavailable возвращается, когда StaffService недоступен
	ErrStaffServiceUnavailable = errors.New("update_appointment: staff service unavailable")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_appointment: internal error")
)
