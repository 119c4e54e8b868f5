package check_slot

import "errors"

var (
	// ErrStaffNotFound возвращается, когда сотрудник не найден
	ErrStaffNotFound = errors.New("check_slot: staff member not found")

	// ErrAccessDenied возвращается, когда у сотрудника нет прав на проверку
	ErrAccessDenied = errors.New("check_slot: access denied")

	// ErrSessionExpired возвращается, когда токен сессии истёк на стороне StaffService
	ErrSessionExpired = errors.New("check_slot: session expired")

	// ErrScheduleUnreadable возвращается, когда расписание сотрудника
	// содержит нечитаемую строку
	ErrScheduleUnreadable = errors.New("check_slot: working hours are unreadable")

	// ErrStaffServiceUnavailable возвращается, когда StaffService недоступен
	ErrStaffServiceUnavailable = errors.New("check_slot: staff service unavailable")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("check_slot: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("check_slot: internal error")
)
