package get_staff_calendar

import "errors"

var (
	// ErrStaffNotFound возвращается, когда сотрудник не найден
	ErrStaffNotFound = errors.New("get_staff_calendar: staff member not found")

	// ErrAccessDenied возвращается, когда у сотрудника нет прав на просмотр календаря
	ErrAccessDenied = errors.New("get_staff_calendar: access denied")

	// ErrSessionExpired возвращается, когда токен сессии истёк на стороне StaffService
	ErrSessionExpired = errors.New("get_staff_calendar: session expired")

	// ErrStaffServiceUnavailable возвращается, когда StaffService недоступен
	ErrStaffServiceUnavailable = errors.New("get_staff_calendar: staff service unavailable")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_staff_calendar: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_staff_calendar: internal error")
)
