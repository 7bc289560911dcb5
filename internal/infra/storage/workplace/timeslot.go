package workplace

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/blitz-booking/internal/domain"
	"github.com/m04kA/blitz-booking/pkg/dbmetrics"
	"github.com/m04kA/blitz-booking/pkg/psqlbuilder"
)

var timeslotColumns = []string{
	"t.id", "t.period_id", "t.workplace_id", "t.start_time", "t.end_time", "t.price", "t.created_at", "t.updated_at",
}

// CreateTimeslot создает таймслот
func (r *Repository) CreateTimeslot(ctx context.Context, ts *domain.TimeSlot) (*domain.TimeSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("timeslots").
		Columns("period_id", "workplace_id", "start_time", "end_time", "price").
		Values(ts.PeriodID, ts.WorkplaceID, ts.StartTime, ts.EndTime, ts.Price).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateTimeslot - build insert query: %w", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&ts.ID, &ts.CreatedAt, &ts.UpdatedAt); err != nil {
		return nil, fmt.Errorf("%w: CreateTimeslot - execute insert: %w", ErrExecQuery, err)
	}
	return ts, nil
}

// GetTimeslot получает таймслот по ID
// Внутри транзакции строка блокируется: все бронирования одного таймслота идут последовательно
func (r *Repository) GetTimeslot(ctx context.Context, id int64) (*domain.TimeSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(timeslotColumns...).
		From("timeslots t").
		Where(squirrel.Eq{"t.id": id, "t.deleted_at": nil})
	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetTimeslot - build select query: %w", ErrBuildQuery, err)
	}

	var ts domain.TimeSlot
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&ts.ID, &ts.PeriodID, &ts.WorkplaceID, &ts.StartTime, &ts.EndTime, &ts.Price, &ts.CreatedAt, &ts.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrTimeslotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetTimeslot - scan timeslot: %w", ErrScanRow, err)
	}
	return &ts, nil
}

// ListOverlappingTimeslots таймслоты пространства, пересекающиеся с интервалом [start, end)
func (r *Repository) ListOverlappingTimeslots(ctx context.Context, workplaceID int64, start, end time.Time) ([]*domain.TimeSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(timeslotColumns...).
		From("timeslots t").
		Where(squirrel.Eq{"t.workplace_id": workplaceID, "t.deleted_at": nil}).
		Where(squirrel.Lt{"t.start_time": end}).
		Where(squirrel.Gt{"t.end_time": start}).
		OrderBy("t.start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListOverlappingTimeslots - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListOverlappingTimeslots - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.TimeSlot, 0)
	for rows.Next() {
		var ts domain.TimeSlot
		if err := rows.Scan(
			&ts.ID, &ts.PeriodID, &ts.WorkplaceID, &ts.StartTime, &ts.EndTime, &ts.Price, &ts.CreatedAt, &ts.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: ListOverlappingTimeslots - scan timeslot: %w", ErrScanRow, err)
		}
		result = append(result, &ts)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListOverlappingTimeslots - iterate rows: %w", ErrScanRow, err)
	}
	return result, nil
}

// ListTimeslotsWithAvailability таймслоты пространства, начинающиеся в [from, to), с числом активных бронирований
func (r *Repository) ListTimeslotsWithAvailability(ctx context.Context, workplaceID int64, from, to time.Time) ([]*domain.TimeSlotAvailability, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	columns := append(append([]string{}, timeslotColumns...),
		"(SELECT COUNT(*) FROM reservations r WHERE r.timeslot_id = t.id AND r.is_active) AS reserved",
		"w.seats",
	)

	query, args, err := psqlbuilder.Select(columns...).
		From("timeslots t").
		Join("workplaces w ON w.id = t.workplace_id").
		Where(squirrel.Eq{"t.workplace_id": workplaceID, "t.deleted_at": nil}).
		Where(squirrel.GtOrEq{"t.start_time": from}).
		Where(squirrel.Lt{"t.start_time": to}).
		OrderBy("t.start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListTimeslotsWithAvailability - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListTimeslotsWithAvailability - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.TimeSlotAvailability, 0)
	for rows.Next() {
		var a domain.TimeSlotAvailability
		var seats int
		if err := rows.Scan(
			&a.ID, &a.PeriodID, &a.WorkplaceID, &a.StartTime, &a.EndTime, &a.Price, &a.CreatedAt, &a.UpdatedAt,
			&a.Reserved, &seats,
		); err != nil {
			return nil, fmt.Errorf("%w: ListTimeslotsWithAvailability - scan timeslot: %w", ErrScanRow, err)
		}
		a.PlacesRemaining = seats - a.Reserved
		if a.PlacesRemaining < 0 {
			a.PlacesRemaining = 0
		}
		result = append(result, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListTimeslotsWithAvailability - iterate rows: %w", ErrScanRow, err)
	}
	return result, nil
}

// DeleteTimeslot помечает таймслот удалённым; бронирования остаются для истории
func (r *Repository) DeleteTimeslot(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("timeslots").
		Set("deleted_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "deleted_at": nil}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteTimeslot - build update query: %w", ErrBuildQuery, err)
	}

	res, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteTimeslot - execute update: %w", ErrExecQuery, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrTimeslotNotFound
	}
	return nil
}
