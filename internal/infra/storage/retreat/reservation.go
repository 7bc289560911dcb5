package retreat

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
	"rr.id",
	"rr.user_id",
	"rr.retreat_id",
	"rr.order_line_id",
	"rr.is_active",
	"rr.is_present",
	"rr.cancelation_reason",
	"rr.cancelation_action",
	"rr.cancelation_date",
	"rr.created_at",
	"rr.updated_at",
}

// CreateReservation создает бронирование места на ретрите
func (r *Repository) CreateReservation(ctx context.Context, res *domain.RetreatReservation) (*domain.RetreatReservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("retreat_reservations").
		Columns("user_id", "retreat_id", "order_line_id", "is_active").
		Values(res.UserID, res.RetreatID, res.OrderLineID, res.IsActive).
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
func (r *Repository) GetReservation(ctx context.Context, id int64) (*domain.RetreatReservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(reservationColumns...).
		From("retreat_reservations rr").
		Where(squirrel.Eq{"rr.id": id})
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

// ListUserActiveReservationsOverlapping активные бронирования пользователя на ретриты,
// пересекающиеся с интервалом [start, end)
func (r *Repository) ListUserActiveReservationsOverlapping(ctx context.Context, userID int64, start, end time.Time) ([]*domain.RetreatReservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("retreat_reservations rr").
		Join("retreats rt ON rt.id = rr.retreat_id").
		Where(squirrel.Eq{"rr.user_id": userID, "rr.is_active": true}).
		Where(squirrel.Lt{"rt.start_time": end}).
		Where(squirrel.Gt{"rt.end_time": start}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListUserActiveReservationsOverlapping - build select query: %w", ErrBuildQuery, err)
	}

	return r.queryReservations(ctx, executor, query, args, "ListUserActiveReservationsOverlapping")
}

// ListUserReservations все бронирования пользователя, новые первыми
func (r *Repository) ListUserReservations(ctx context.Context, userID int64) ([]*domain.RetreatReservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("retreat_reservations rr").
		Where(squirrel.Eq{"rr.user_id": userID}).
		OrderBy("rr.created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListUserReservations - build select query: %w", ErrBuildQuery, err)
	}

	return r.queryReservations(ctx, executor, query, args, "ListUserReservations")
}

// ListActiveReservationsByRetreat активные бронирования ретрита
func (r *Repository) ListActiveReservationsByRetreat(ctx context.Context, retreatID int64) ([]*domain.RetreatReservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("retreat_reservations rr").
		Where(squirrel.Eq{"rr.retreat_id": retreatID, "rr.is_active": true}).
		OrderBy("rr.id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveReservationsByRetreat - build select query: %w", ErrBuildQuery, err)
	}

	return r.queryReservations(ctx, executor, query, args, "ListActiveReservationsByRetreat")
}

// FindActiveReservation активное бронирование пользователя на ретрит
func (r *Repository) FindActiveReservation(ctx context.Context, userID, retreatID int64) (*domain.RetreatReservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("retreat_reservations rr").
		Where(squirrel.Eq{"rr.user_id": userID, "rr.retreat_id": retreatID, "rr.is_active": true}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindActiveReservation - build select query: %w", ErrBuildQuery, err)
	}

	res, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: FindActiveReservation - scan reservation: %w", ErrScanRow, err)
	}
	return res, nil
}

// CancelReservation деактивирует бронирование
func (r *Repository) CancelReservation(
	ctx context.Context,
	id int64,
	reason domain.RetreatCancelationReason,
	action domain.CancelationAction,
	at time.Time,
) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("retreat_reservations").
		Set("is_active", false).
		Set("cancelation_reason", string(reason)).
		Set("cancelation_action", string(action)).
		Set("cancelation_date", at).
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

func (r *Repository) queryReservations(
	ctx context.Context,
	executor DBExecutor,
	query string,
	args []interface{},
	op string,
) ([]*domain.RetreatReservation, error) {
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, op, err)
	}
	defer rows.Close()

	result := make([]*domain.RetreatReservation, 0)
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

func scanReservation(row rowScanner) (*domain.RetreatReservation, error) {
	var res domain.RetreatReservation
	var reason, action sql.NullString
	var cancelDate sql.NullTime

	if err := row.Scan(
		&res.ID,
		&res.UserID,
		&res.RetreatID,
		&res.OrderLineID,
		&res.IsActive,
		&res.IsPresent,
		&reason,
		&action,
		&cancelDate,
		&res.CreatedAt,
		&res.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if reason.Valid {
		v := domain.RetreatCancelationReason(reason.String)
		res.CancelationReason = &v
	}
	if action.Valid {
		v := domain.CancelationAction(action.String)
		res.CancelationAction = &v
	}
	if cancelDate.Valid {
		res.CancelationDate = &cancelDate.Time
	}
	return &res, nil
}
