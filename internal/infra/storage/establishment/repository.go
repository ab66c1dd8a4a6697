package establishment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/agendei/agenda-service/internal/domain"
	"github.com/agendei/agenda-service/pkg/metrics"
	"github.com/agendei/agenda-service/pkg/psqlbuilder"
)

// DBExecutor минимальный интерфейс над *sql.DB, нужный репозиторию
type DBExecutor interface {
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// Repository репозиторий для чтения заведений, их расписаний и услуг
type Repository struct {
	db      DBExecutor
	metrics *metrics.Metrics
}

// NewRepository создает новый экземпляр репозитория заведений
func NewRepository(db DBExecutor, m *metrics.Metrics) *Repository {
	return &Repository{db: db, metrics: m}
}

// GetByID получает заведение вместе с конфигурацией расписания
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Establishment, error) {
	start := time.Now()

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"slug",
		"owner_id",
		"opening_time",
		"closing_time",
		"lunch_start",
		"lunch_end",
		"slot_granularity_minutes",
		"created_at",
		"updated_at",
	).
		From("establishments").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var est domain.Establishment
	var createdAt, updatedAt sql.NullTime

	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&est.ID,
		&est.Name,
		&est.Slug,
		&est.OwnerID,
		&est.Schedule.OpeningTime,
		&est.Schedule.ClosingTime,
		&est.Schedule.LunchStart,
		&est.Schedule.LunchEnd,
		&est.Schedule.SlotGranularityMinutes,
		&createdAt,
		&updatedAt,
	)
	r.metrics.ObserveDBQuery("establishment_get_by_id", start, err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEstablishmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan establishment: %v", ErrScanRow, err)
	}

	est.Schedule.EstablishmentID = est.ID
	est.Schedule.UpdatedAt = updatedAt.Time
	est.CreatedAt = createdAt.Time

	return &est, nil
}

// UpdateSchedule сохраняет конфигурацию расписания заведения
func (r *Repository) UpdateSchedule(ctx context.Context, cfg *domain.ScheduleConfig) error {
	start := time.Now()

	query, args, err := psqlbuilder.Update("establishments").
		Set("opening_time", cfg.OpeningTime).
		Set("closing_time", cfg.ClosingTime).
		Set("lunch_start", cfg.LunchStart).
		Set("lunch_end", cfg.LunchEnd).
		Set("slot_granularity_minutes", cfg.Granularity()).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": cfg.EstablishmentID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateSchedule - build update query: %v", ErrBuildQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	r.metrics.ObserveDBQuery("establishment_update_schedule", start, err)
	if err != nil {
		return fmt.Errorf("%w: UpdateSchedule - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateSchedule - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrEstablishmentNotFound
	}

	return nil
}

// GetService получает услугу заведения по ID
func (r *Repository) GetService(ctx context.Context, establishmentID, serviceID uuid.UUID) (*domain.Service, error) {
	start := time.Now()

	query, args, err := psqlbuilder.Select(
		"id",
		"establishment_id",
		"name",
		"price",
		"duration_minutes",
	).
		From("services").
		Where(squirrel.Eq{"id": serviceID, "establishment_id": establishmentID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetService - build select query: %v", ErrBuildQuery, err)
	}

	var svc domain.Service
	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&svc.ID,
		&svc.EstablishmentID,
		&svc.Name,
		&svc.Price,
		&svc.DurationMinutes,
	)
	r.metrics.ObserveDBQuery("service_get_by_id", start, err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetService - scan service: %v", ErrScanRow, err)
	}

	return &svc, nil
}

// ListServices получает все услуги заведения
func (r *Repository) ListServices(ctx context.Context, establishmentID uuid.UUID) ([]*domain.Service, error) {
	start := time.Now()

	query, args, err := psqlbuilder.Select(
		"id",
		"establishment_id",
		"name",
		"price",
		"duration_minutes",
	).
		From("services").
		Where(squirrel.Eq{"establishment_id": establishmentID}).
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListServices - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	r.metrics.ObserveDBQuery("service_list", start, err)
	if err != nil {
		return nil, fmt.Errorf("%w: ListServices - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	services := make([]*domain.Service, 0)
	for rows.Next() {
		var svc domain.Service
		if err := rows.Scan(
			&svc.ID,
			&svc.EstablishmentID,
			&svc.Name,
			&svc.Price,
			&svc.DurationMinutes,
		); err != nil {
			return nil, fmt.Errorf("%w: ListServices - scan row: %v", ErrScanRow, err)
		}
		services = append(services, &svc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListServices - rows error: %v", ErrScanRow, err)
	}

	return services, nil
}
