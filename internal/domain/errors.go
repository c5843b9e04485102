package domain

import "errors"

// Доменные ошибки, отображаемые на коды API
var (
	// ErrUsernameTaken возвращается при попытке зарегистрировать занятое имя пользователя
	ErrUsernameTaken = errors.New("username already taken")

	// ErrTitleRequired возвращается когда у задачи отсутствует название
	ErrTitleRequired = errors.New("task title is required")

	// ErrInvalidStatus возвращается когда статус не входит в допустимый набор
	ErrInvalidStatus = errors.New("invalid task status")

	// ErrCredentialsRequired возвращается когда не заданы имя пользователя или пароль
	ErrCredentialsRequired = errors.New("username and password are required")

	// ErrForbidden возвращается при отказе политики доступа
	ErrForbidden = errors.New("operation is not permitted")

	// ErrNotFound возвращается когда ресурс не найден
	ErrNotFound = errors.New("resource not found")

	// ErrAccountNotFound возвращается когда аккаунт не найден
	ErrAccountNotFound = errors.New("account not found")

	// ErrTaskNotFound возвращается когда задача не найдена
	ErrTaskNotFound = errors.New("task not found")

	// ErrInvalidCredentials возвращается при неудачной проверке пароля
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUnauthorized возвращается при неудачной аутентификации
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidToken возвращается когда JWT токен невалиден
	ErrInvalidToken = errors.New("invalid token")
)

// ErrorCode представляет коды ошибок API
type ErrorCode string

// Коды ошибок API
const (
	CodeUsernameTaken ErrorCode = "USERNAME_TAKEN" // Имя пользователя занято
	CodeInvalidInput  ErrorCode = "INVALID_INPUT"  // Невалидные входные данные
	CodeForbidden     ErrorCode = "FORBIDDEN"      // Доступ запрещен
	CodeNotFound      ErrorCode = "NOT_FOUND"      // Ресурс не найден
	CodeUnauthorized  ErrorCode = "UNAUTHORIZED"   // Не аутентифицирован
	CodeInternal      ErrorCode = "INTERNAL_ERROR" // Внутренняя ошибка
)

// MapErrorToCode преобразует доменные ошибки в коды ошибок API
func MapErrorToCode(err error) ErrorCode {
	switch {
	case errors.Is(err, ErrUsernameTaken):
		return CodeUsernameTaken
	case errors.Is(err, ErrTitleRequired), errors.Is(err, ErrInvalidStatus),
		errors.Is(err, ErrCredentialsRequired):
		return CodeInvalidInput
	case errors.Is(err, ErrForbidden):
		return CodeForbidden
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrAccountNotFound),
		errors.Is(err, ErrTaskNotFound):
		return CodeNotFound
	case errors.Is(err, ErrInvalidCredentials), errors.Is(err, ErrUnauthorized),
		errors.Is(err, ErrInvalidToken):
		return CodeUnauthorized
	default:
		return CodeInternal
	}
}
