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

var reservationColumns = []string{
	"r.id",
	"r.user_id",
	"r.timeslot_id",
	"r.is_active",
	"r.is_present",
	"r.cancelation_reason",
	"r.cancelation_date",
	"r.tickets_spent",
	"r.tickets_refunded",
	"r.created_at",
	"r.updated_at",
}

// CreateReservation создает бронирование таймслота
func (r *Repository) CreateReservation(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reservations").
		Columns("user_id", "timeslot_id", "is_active", "is_present", "tickets_spent").
		Values(res.UserID, res.TimeSlotID, res.IsActive, res.IsPresent, res.TicketsSpent).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateReservation - build insert query: %w", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&res.ID, &res.CreatedAt, &res.UpdatedAt); err != nil {
		return nil, fmt.Errorf("%w: CreateReservation - execute insert: %w", ErrExecQuery, err)
	}
	return res, nil
}

// GetReservation получает бронирование по ID (FOR UPDATE внутри транзакции)
func (r *Repository) GetReservation(ctx context.Context, id int64) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(reservationColumns...).
		From("reservations r").
		Where(squirrel.Eq{"r.id": id})
	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetReservation - build select query: %w", ErrBuildQuery, err)
	}

	res, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetReservation - scan reservation: %w", ErrScanRow, err)
	}
	return res, nil
}

// CountActiveReservations число активных бронирований таймслота
func (r *Repository) CountActiveReservations(ctx context.Context, timeslotID int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("reservations").
		Where(squirrel.Eq{"timeslot_id": timeslotID, "is_active": true}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountActiveReservations - build select query: %w", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountActiveReservations - scan count: %w", ErrScanRow, err)
	}
	return count, nil
}

// ListUserActiveReservationsOverlapping активные бронирования пользователя на таймслоты,
// пересекающиеся с интервалом [start, end); включает бронирование того же таймслота
func (r *Repository) ListUserActiveReservationsOverlapping(ctx context.Context, userID int64, start, end time.Time) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("reservations r").
		Join("timeslots t ON t.id = r.timeslot_id").
		Where(squirrel.Eq{"r.user_id": userID, "r.is_active": true, "t.deleted_at": nil}).
		Where(squirrel.Lt{"t.start_time": end}).
		Where(squirrel.Gt{"t.end_time": start}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListUserActiveReservationsOverlapping - build select query: %w", ErrBuildQuery, err)
	}

	return r.queryReservations(ctx, executor, query, args, "ListUserActiveReservationsOverlapping")
}

// ListActiveReservationsByTimeslot активные бронирования таймслота
func (r *Repository) ListActiveReservationsByTimeslot(ctx context.Context, timeslotID int64) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(reservationColumns...).
		From("reservations r").
		Where(squirrel.Eq{"r.timeslot_id": timeslotID, "r.is_active": true}).
		OrderBy("r.id ASC")
	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveReservationsByTimeslot - build select query: %w", ErrBuildQuery, err)
	}

	return r.queryReservations(ctx, executor, query, args, "ListActiveReservationsByTimeslot")
}

// CancelReservation деактивирует бронирование
func (r *Repository) CancelReservation(
	ctx context.Context,
	id int64,
	reason domain.ReservationCancelationReason,
	at time.Time,
	ticketsRefunded int,
) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("is_active", false).
		Set("cancelation_reason", string(reason)).
		Set("cancelation_date", at).
		Set("tickets_refunded", ticketsRefunded).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "is_active": true}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: CancelReservation - build update query: %w", ErrBuildQuery, err)
	}

	res, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: CancelReservation - execute update: %w", ErrExecQuery, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrReservationNotFound
	}
	return nil
}

// SetPresence отмечает присутствие
func (r *Repository) SetPresence(ctx context.Context, id int64, present bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("is_present", present).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SetPresence - build update query: %w", ErrBuildQuery, err)
	}

	res, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetPresence - execute update: %w", ErrExecQuery, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrReservationNotFound
	}
	return nil
}

func (r *Repository) queryReservations(
	ctx context.Context,
	executor DBExecutor,
	query string,
	args []interface{},
	op string,
) ([]*domain.Reservation, error) {
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, op, err)
	}
	defer rows.Close()

	result := make([]*domain.Reservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan reservation: %w", ErrScanRow, op, err)
		}
		result = append(result, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - iterate rows: %w", ErrScanRow, op, err)
	}
	return result, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var res domain.Reservation
	var reason sql.NullString
	var cancelDate sql.NullTime

	if err := row.Scan(
		&res.ID,
		&res.UserID,
		&res.TimeSlotID,
		&res.IsActive,
		&res.IsPresent,
		&reason,
		&cancelDate,
		&res.TicketsSpent,
		&res.TicketsRefunded,
		&res.CreatedAt,
		&res.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if reason.Valid {
		v := domain.ReservationCancelationReason(reason.String)
		res.CancelationReason = &v
	}
	if cancelDate.Valid {
		res.CancelationDate = &cancelDate.Time
	}
	return &res, nil
}
