package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aidar/task-manager-project/internal/domain"
)

// TaskRepository реализует repository.TaskRepository для PostgreSQL
type TaskRepository struct {
	db *pgxpool.Pool
}

// NewTaskRepository создает новый экземпляр TaskRepository
func NewTaskRepository(db *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create создает новую задачу
func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) error {
	query := `
		INSERT INTO tasks (id, title, description, owner_id, completed)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`

	err := r.db.QueryRow(ctx, query,
		task.ID, task.Title, task.Description, task.OwnerID, task.Completed,
	).Scan(&task.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
			return domain.ErrUserNotFound
		}
		return err
	}

	return nil
}

// GetByID получает задачу вместе со списком волонтеров
func (r *TaskRepository) GetByID(ctx context.Context, taskID string) (*domain.Task, error) {
	query := `
		SELECT id, title, description, owner_id, completed, created_at
		FROM tasks
		WHERE id = $1
	`

	var task domain.Task
	err := r.db.QueryRow(ctx, query, taskID).Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.OwnerID,
		&task.Completed,
		&task.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}

	if err := r.loadVolunteers(ctx, []*domain.Task{&task}); err != nil {
		return nil, err
	}

	return &task, nil
}

// ListByOwner возвращает все задачи указанного владельца
func (r *TaskRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Task, error) {
	query := `
		SELECT id, title, description, owner_id, completed, created_at
		FROM tasks
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`

	return r.listTasks(ctx, query, ownerID)
}

// ListOpenForUser возвращает чужие незавершенные задачи,
// в которых пользователь еще не волонтер
func (r *TaskRepository) ListOpenForUser(ctx context.Context, userID string) ([]*domain.Task, error) {
	query := `
		SELECT t.id, t.title, t.description, t.owner_id, t.completed, t.created_at
		FROM tasks t
		WHERE t.owner_id != $1
		  AND t.completed = false
		  AND NOT EXISTS (
		      SELECT 1 FROM task_volunteers tv
		      WHERE tv.task_id = t.id AND tv.user_id = $1
		  )
		ORDER BY t.created_at DESC
	`

	return r.listTasks(ctx, query, userID)
}

// ListByVolunteer возвращает задачи, в которых пользователь волонтер
// (включая завершенные)
func (r *TaskRepository) ListByVolunteer(ctx context.Context, userID string) ([]*domain.Task, error) {
	query := `
		SELECT t.id, t.title, t.description, t.owner_id, t.completed, t.created_at
		FROM tasks t
		INNER JOIN task_volunteers tv ON tv.task_id = t.id
		WHERE tv.user_id = $1
		ORDER BY t.created_at DESC
	`

	return r.listTasks(ctx, query, userID)
}

// AddVolunteer записывает пользователя волонтером задачи (идемпотентно)
func (r *TaskRepository) AddVolunteer(ctx context.Context, taskID, userID string) error {
	query := `
		INSERT INTO task_volunteers (task_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (task_id, user_id) DO NOTHING
	`

	_, err := r.db.Exec(ctx, query, taskID, userID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
			return domain.ErrTaskNotFound
		}
		return err
	}

	return nil
}

// RemoveVolunteer убирает пользователя из волонтеров задачи (идемпотентно)
func (r *TaskRepository) RemoveVolunteer(ctx context.Context, taskID, userID string) error {
	query := `
		DELETE FROM task_volunteers
		WHERE task_id = $1 AND user_id = $2
	`

	_, err := r.db.Exec(ctx, query, taskID, userID)
	return err
}

// SetCompleted устанавливает флаг завершенности задачи
func (r *TaskRepository) SetCompleted(ctx context.Context, taskID string, completed bool) error {
	query := `
		UPDATE tasks
		SET completed = $1
		WHERE id = $2
	`

	result, err := r.db.Exec(ctx, query, completed, taskID)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}

	return nil
}

// Delete удаляет задачу; волонтеры удаляются каскадно
func (r *TaskRepository) Delete(ctx context.Context, taskID string) error {
	query := `DELETE FROM tasks WHERE id = $1`

	result, err := r.db.Exec(ctx, query, taskID)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}

	return nil
}

// Exists проверяет существование задачи
func (r *TaskRepository) Exists(ctx context.Context, taskID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM tasks WHERE id = $1)`

	var exists bool
	err := r.db.QueryRow(ctx, query, taskID).Scan(&exists)
	if err != nil {
		return false, err
	}

	return exists, nil
}

// listTasks выполняет запрос списка задач и догружает их волонтеров
func (r *TaskRepository) listTasks(ctx context.Context, query string, args ...any) ([]*domain.Task, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []*domain.Task
	for rows.Next() {
		var task domain.Task
		if err := rows.Scan(
			&task.ID,
			&task.Title,
			&task.Description,
			&task.OwnerID,
			&task.Completed,
			&task.CreatedAt,
		); err != nil {
			return nil, err
		}
		tasks = append(tasks, &task)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Return empty slice instead of nil if no tasks found
	if tasks == nil {
		return []*domain.Task{}, nil
	}

	if err := r.loadVolunteers(ctx, tasks); err != nil {
		return nil, err
	}

	return tasks, nil
}

// loadVolunteers одним запросом загружает волонтеров для набора задач
func (r *TaskRepository) loadVolunteers(ctx context.Context, tasks []*domain.Task) error {
	if len(tasks) == 0 {
		return nil
	}

	ids := make([]string, 0, len(tasks))
	byID := make(map[string]*domain.Task, len(tasks))
	for _, task := range tasks {
		ids = append(ids, task.ID)
		byID[task.ID] = task
	}

	query := `
		SELECT task_id, user_id
		FROM task_volunteers
		WHERE task_id = ANY($1)
		ORDER BY volunteered_at
	`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var taskID, userID string
		if err := rows.Scan(&taskID, &userID); err != nil {
			return err
		}
		if task, ok := byID[taskID]; ok {
			task.Volunteers = append(task.Volunteers, userID)
		}
	}

	return rows.Err()
}
