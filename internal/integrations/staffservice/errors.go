package staffservice

import "errors"

var (
	// ErrStaffNotFound возвращается, когда сотрудник не найден
	ErrStaffNotFound = errors.New("staffservice client: staff member not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("staffservice client: service not found")

	// ErrSessionExpired возвращается на 401 от StaffService:
	// сессионный токен вызывающего истёк, требуется повторная аутентификация
	ErrSessionExpired = errors.New("staffservice client: session expired")

	// ErrForbidden возвращается на 403 от StaffService:
	// у вызывающего недостаточно прав
	ErrForbidden = errors.New("staffservice client: access forbidden")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("staffservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("staffservice client: invalid response")

	// ErrServiceUnavailable возвращается при недоступности StaffService
	// (timeout, 5xx). Операция остается повторяемой, автоматических
	// ретраев клиент не делает.
	ErrServiceUnavailable = errors.New("staffservice client: service unavailable")
)
