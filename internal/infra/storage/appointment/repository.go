package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/agendei/agenda-service/internal/domain"
	"github.com/agendei/agenda-service/pkg/metrics"
	"github.com/agendei/agenda-service/pkg/psqlbuilder"
)

// pgExclusionViolation is the Postgres error code raised by the
// appointments_no_overlap exclusion constraint.
const pgExclusionViolation = "23P01"

// Repository репозиторий для работы с записями агенды
type Repository struct {
	db      DBExecutor
	metrics *metrics.Metrics // nil когда метрики выключены
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor, m *metrics.Metrics) *Repository {
	return &Repository{db: db, metrics: m}
}

var appointmentColumns = []string{
	"a.id",
	"a.establishment_id",
	"a.client_id",
	"a.service_id",
	"a.start_at",
	"a.end_at",
	"a.status",
	"p.name AS client_name",
	"s.name AS service_name",
	"s.price AS service_price",
	"a.created_at",
	"a.updated_at",
}

// Create inserts a new appointment (scheduled booking or blocked hold).
// The database enforces the non-overlap invariant with an exclusion
// constraint; a violation comes back as ErrSlotTaken so the caller can
// surface a "time slot no longer available" message and refresh the window.
func (r *Repository) Create(ctx context.Context, app *domain.Appointment) (*domain.Appointment, error) {
	start := time.Now()

	if app.ID == uuid.Nil {
		app.ID = uuid.New()
	}

	query, args, err := psqlbuilder.Insert("appointments").
		Columns(
			"id",
			"establishment_id",
			"client_id",
			"service_id",
			"start_at",
			"end_at",
			"status",
		).
		Values(
			app.ID,
			app.EstablishmentID,
			app.ClientID,
			app.ServiceID,
			app.StartAt,
			app.EndAt,
			app.Status,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	r.observe("appointment_create", start, err)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgExclusionViolation {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	app.CreatedAt = createdAt.Time
	app.UpdatedAt = updatedAt.Time

	return app, nil
}

// GetByID получает запись по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Appointment, error) {
	start := time.Now()

	query, args, err := r.selectJoined().
		Where(squirrel.Eq{"a.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := r.db.QueryRowContext(ctx, query, args...)
	app, err := scanAppointment(row)
	r.observe("appointment_get_by_id", start, err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %v", ErrScanRow, err)
	}
	return app, nil
}

// ListWindow returns the appointments of one establishment whose start_at
// falls inside the inclusive [From, To] window, joined with the denormalized
// client and service display fields, ordered by start time. Cancelled entries
// are excluded unless the filter asks for them.
func (r *Repository) ListWindow(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	start := time.Now()

	builder := r.selectJoined().
		Where(squirrel.Eq{"a.establishment_id": filter.EstablishmentID})

	if filter.From != nil {
		builder = builder.Where(squirrel.GtOrEq{"a.start_at": *filter.From})
	}
	if filter.To != nil {
		builder = builder.Where(squirrel.LtOrEq{"a.start_at": *filter.To})
	}

	if filter.Status != nil {
		builder = builder.Where(squirrel.Eq{"a.status": *filter.Status})
	} else if !filter.IncludeVoided {
		voided := make([]string, len(domain.VoidStatuses))
		for i, s := range domain.VoidStatuses {
			voided[i] = string(s)
		}
		builder = builder.Where(squirrel.NotEq{"a.status": voided})
	}

	query, args, err := builder.OrderBy("a.start_at ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListWindow - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	r.observe("appointment_list_window", start, err)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWindow - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// UpdateStatus обновляет статус записи
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.AppointmentStatus) error {
	start := time.Now()

	query, args, err := psqlbuilder.Update("appointments").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	r.observe("appointment_update_status", start, err)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

// Delete removes a blocked hold. Bookings are cancelled, never deleted, so
// history survives; holds carry no history worth keeping.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	start := time.Now()

	query, args, err := psqlbuilder.Delete("appointments").
		Where(squirrel.Eq{"id": id, "status": domain.StatusBlocked}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	r.observe("appointment_delete", start, err)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

func (r *Repository) selectJoined() squirrel.SelectBuilder {
	return psqlbuilder.Select(appointmentColumns...).
		From("appointments a").
		LeftJoin("profiles p ON p.id = a.client_id").
		LeftJoin("services s ON s.id = a.service_id")
}

func (r *Repository) observe(operation string, start time.Time, err error) {
	r.metrics.ObserveDBQuery(operation, start, err)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var app domain.Appointment
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&app.ID,
		&app.EstablishmentID,
		&app.ClientID,
		&app.ServiceID,
		&app.StartAt,
		&app.EndAt,
		&app.Status,
		&app.ClientName,
		&app.ServiceName,
		&app.ServicePrice,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	app.CreatedAt = createdAt.Time
	app.UpdatedAt = updatedAt.Time
	return &app, nil
}

func scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appointments := make([]*domain.Appointment, 0)

	for rows.Next() {
		app, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanAppointments - scan row: %v", ErrScanRow, err)
		}
		appointments = append(appointments, app)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanAppointments - rows error: %v", ErrScanRow, err)
	}

	return appointments, nil
}
