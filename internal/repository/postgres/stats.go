package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aidar/task-manager-project/internal/domain"
)

// StatsRepository реализует repository.StatsRepository для PostgreSQL
type StatsRepository struct {
	db *pgxpool.Pool
}

// NewStatsRepository создает новый экземпляр StatsRepository
func NewStatsRepository(db *pgxpool.Pool) *StatsRepository {
	return &StatsRepository{db: db}
}

// Aggregate считает счетчики полным проходом по задачам
func (r *StatsRepository) Aggregate(ctx context.Context) (*domain.StatsSnapshot, error) {
	query := `
		SELECT
			COUNT(DISTINCT t.id) AS active_task_count,
			COUNT(tv.user_id) AS total_volunteer_slots,
			COUNT(DISTINCT tv.user_id) AS unique_volunteer_count
		FROM tasks t
		LEFT JOIN task_volunteers tv ON tv.task_id = t.id
		WHERE t.completed = false
	`

	snapshot := &domain.StatsSnapshot{}
	err := r.db.QueryRow(ctx, query).Scan(
		&snapshot.ActiveTaskCount,
		&snapshot.TotalVolunteerSlots,
		&snapshot.UniqueVolunteerCount,
	)
	if err != nil {
		return nil, err
	}

	snapshot.UpdatedAt = time.Now()
	return snapshot, nil
}

// Upsert записывает снимок под указанным именем, перезаписывая безусловно
func (r *StatsRepository) Upsert(ctx context.Context, name string, snapshot *domain.StatsSnapshot) error {
	query := `
		INSERT INTO stats_snapshots (name, active_task_count, total_volunteer_slots, unique_volunteer_count, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (name) DO UPDATE
		SET active_task_count = EXCLUDED.active_task_count,
		    total_volunteer_slots = EXCLUDED.total_volunteer_slots,
		    unique_volunteer_count = EXCLUDED.unique_volunteer_count,
		    updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.Exec(ctx, query,
		name,
		snapshot.ActiveTaskCount,
		snapshot.TotalVolunteerSlots,
		snapshot.UniqueVolunteerCount,
		snapshot.UpdatedAt,
	)
	return err
}

// Get читает снимок; возвращает нулевой снимок если его еще нет
func (r *StatsRepository) Get(ctx context.Context, name string) (*domain.StatsSnapshot, error) {
	query := `
		SELECT active_task_count, total_volunteer_slots, unique_volunteer_count, updated_at
		FROM stats_snapshots
		WHERE name = $1
	`

	var snapshot domain.StatsSnapshot
	err := r.db.QueryRow(ctx, query, name).Scan(
		&snapshot.ActiveTaskCount,
		&snapshot.TotalVolunteerSlots,
		&snapshot.UniqueVolunteerCount,
		&snapshot.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &domain.StatsSnapshot{}, nil
		}
		return nil, err
	}

	return &snapshot, nil
}
