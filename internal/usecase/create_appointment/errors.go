package create_appointment

import "errors"

var (
	// ErrStaffNotFound возвращается, когда сотрудник не найден
	ErrStaffNotFound = errors.New("create_appointment: staff member not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_appointment: service not found")

	// ErrServiceNotProvided возвращается, когда сотрудник не оказывает указанную услугу
	ErrServiceNotProvided = errors.New("create_appointment: staff member does not provide this service")

	// ErrAccessDenied возвращается, когда у сотрудника нет прав на создание записи
	ErrAccessDenied = errors.New("create_appointment: access denied")

	// ErrSessionExpired возвращается, когда токен сессии истёк на стороне StaffService
	ErrSessionExpired = errors.New("create_appointment: session expired")

	// ErrScheduleUnreadable возвращается, когда расписание сотрудника
	// содержит нечитаемую строку в запрошенный день
	ErrScheduleUnreadable = errors.New("create_appointment: working hours are unreadable")

	// ErrOutsideWorkingHours возвращается, когда слот не помещается
	// целиком ни в один рабочий интервал дня
	ErrOutsideWorkingHours = errors.New("create_appointment: slot is outside working hours")

	// ErrSlotConflict возвращается, когда слот пересекается с существующей записью
	ErrSlotConflict = errors.New("create_appointment: slot conflicts with an existing appointment")

	// ErrDurationMismatch возвращается, когда длительность слота не совпадает
	// с длительностью услуги и клиент не подтвердил расхождение
	ErrDurationMismatch = errors.New("create_appointment: slot duration does not match service duration")

	// ErrBusy возвращается, когда по этому сотруднику уже выполняется
	// другая операция записи
	ErrBusy = errors.New("create_appointment: another appointment operation is in progress")

	// ErrStaffServiceUnavailable возвращается, когда StaffService недоступен
	ErrStaffServiceUnavailable = errors.New("create_appointment: staff service unavailable")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
