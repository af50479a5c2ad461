package repository

import (
	"context"

	"github.com/aidar/task-manager-project/internal/domain"
)

// UserRepository определяет методы для работы с данными пользователей
type UserRepository interface {
	// Create создает нового пользователя
	Create(ctx context.Context, user *domain.User) error

	// GetByID получает пользователя по ID
	GetByID(ctx context.Context, userID string) (*domain.User, error)

	// GetByUsername получает пользователя по имени (регистрозависимо)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	// UsernamesByID возвращает имена пользователей для набора ID
	UsernamesByID(ctx context.Context, userIDs []string) (map[string]string, error)
}

// TaskRepository определяет методы для работы с данными задач
type TaskRepository interface {
	// Create создает новую задачу
	Create(ctx context.Context, task *domain.Task) error

	// GetByID получает задачу вместе со списком волонтеров
	GetByID(ctx context.Context, taskID string) (*domain.Task, error)

	// ListByOwner возвращает все задачи указанного владельца
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Task, error)

	// ListOpenForUser возвращает чужие незавершенные задачи,
	// в которых пользователь еще не волонтер
	ListOpenForUser(ctx context.Context, userID string) ([]*domain.Task, error)

	// ListByVolunteer возвращает задачи, в которых пользователь волонтер
	ListByVolunteer(ctx context.Context, userID string) ([]*domain.Task, error)

	// AddVolunteer записывает пользователя волонтером задачи (идемпотентно)
	AddVolunteer(ctx context.Context, taskID, userID string) error

	// RemoveVolunteer убирает пользователя из волонтеров задачи (идемпотентно)
	RemoveVolunteer(ctx context.Context, taskID, userID string) error

	// SetCompleted устанавливает флаг завершенности задачи
	SetCompleted(ctx context.Context, taskID string, completed bool) error

	// Delete удаляет задачу вместе со списком волонтеров
	Delete(ctx context.Context, taskID string) error

	// Exists проверяет существование задачи
	Exists(ctx context.Context, taskID string) (bool, error)
}

// StatsRepository определяет методы для работы со снимками статистики
type StatsRepository interface {
	// Aggregate считает счетчики полным проходом по задачам
	Aggregate(ctx context.Context) (*domain.StatsSnapshot, error)

	// Upsert записывает снимок под указанным именем, перезаписывая безусловно
	Upsert(ctx context.Context, name string, snapshot *domain.StatsSnapshot) error

	// Get читает снимок; возвращает нулевой снимок если его еще нет
	Get(ctx context.Context, name string) (*domain.StatsSnapshot, error)
}
