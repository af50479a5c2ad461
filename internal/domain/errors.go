package domain

import "errors"

// Доменные ошибки сервиса задач
var (
	// ErrValidation возвращается когда в запросе отсутствует или невалидно обязательное поле
	ErrValidation = errors.New("missing or invalid field")

	// ErrUsernameTaken возвращается при попытке зарегистрировать занятое имя пользователя
	ErrUsernameTaken = errors.New("username already taken")

	// ErrInvalidCredentials возвращается при неудачной аутентификации.
	// Одна и та же ошибка для несуществующего пользователя и неверного пароля,
	// чтобы не допустить перебор имен пользователей.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrInvalidSession возвращается когда сессионный токен отсутствует или невалиден
	ErrInvalidSession = errors.New("invalid session")

	// ErrForbidden возвращается когда действие разрешено только владельцу задачи
	ErrForbidden = errors.New("requester is not allowed to modify this task")

	// ErrTaskNotFound возвращается когда задача не найдена
	ErrTaskNotFound = errors.New("task not found")

	// ErrUserNotFound возвращается когда пользователь не найден
	ErrUserNotFound = errors.New("user not found")

	// ErrOwnTask возвращается при попытке владельца стать волонтером собственной задачи
	ErrOwnTask = errors.New("task owner cannot volunteer for own task")

	// ErrTaskCompleted возвращается при попытке стать волонтером завершенной задачи
	ErrTaskCompleted = errors.New("task is already completed")
)

// ErrorCode представляет коды ошибок API
type ErrorCode string

// Коды ошибок, отдаваемые наружу в JSON ответах
const (
	CodeValidation    ErrorCode = "VALIDATION"     // Невалидный запрос
	CodeUsernameTaken ErrorCode = "USERNAME_TAKEN" // Имя пользователя занято
	CodeForbidden     ErrorCode = "FORBIDDEN"      // Действие доступно только владельцу
	CodeNotFound      ErrorCode = "NOT_FOUND"      // Ресурс не найден
	CodeUnauthorized  ErrorCode = "UNAUTHORIZED"   // Нет валидной сессии
	CodeOwnTask       ErrorCode = "OWN_TASK"       // Волонтерство в собственной задаче
	CodeTaskCompleted ErrorCode = "TASK_COMPLETED" // Задача уже завершена
	CodeInternal      ErrorCode = "INTERNAL_ERROR" // Внутренняя ошибка
)

// MapErrorToCode преобразует доменные ошибки в коды ошибок API
func MapErrorToCode(err error) ErrorCode {
	switch {
	case errors.Is(err, ErrValidation):
		return CodeValidation
	case errors.Is(err, ErrUsernameTaken):
		return CodeUsernameTaken
	case errors.Is(err, ErrForbidden):
		return CodeForbidden
	case errors.Is(err, ErrTaskNotFound), errors.Is(err, ErrUserNotFound):
		return CodeNotFound
	case errors.Is(err, ErrInvalidCredentials), errors.Is(err, ErrInvalidSession):
		return CodeUnauthorized
	case errors.Is(err, ErrOwnTask):
		return CodeOwnTask
	case errors.Is(err, ErrTaskCompleted):
		return CodeTaskCompleted
	default:
		return CodeInternal
	}
}
