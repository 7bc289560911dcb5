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

// Repository репозиторий ретритов, их бронирований и очереди ожидания
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// reservedSeatsExpr активные бронирования плюс не истёкшие предложения из очереди
// для пользователей, которые ещё не забронировали
var reservedSeatsExpr = fmt.Sprintf(`(
	(SELECT COUNT(*) FROM retreat_reservations rr WHERE rr.retreat_id = rt.id AND rr.is_active)
	+ (SELECT COUNT(*) FROM wait_queue_notifications n
		WHERE n.retreat_id = rt.id
		AND n.created_at > NOW() - INTERVAL '%d seconds'
		AND NOT EXISTS (
			SELECT 1 FROM retreat_reservations rr2
			WHERE rr2.retreat_id = n.retreat_id AND rr2.user_id = n.user_id AND rr2.is_active
		))
) AS reserved_seats`, int(domain.WaitQueueHold.Seconds()))

var retreatColumns = []string{
	"rt.id",
	"rt.name",
	"rt.details",
	"rt.place",
	"rt.seats",
	"rt.price",
	"rt.start_time",
	"rt.end_time",
	"rt.min_day_refund",
	"rt.refund_rate",
	"rt.min_day_exchange",
	"rt.is_active",
	"rt.accessibility",
	"rt.created_at",
	"rt.updated_at",
	reservedSeatsExpr,
}

// CreateRetreat создает ретрит вместе с его датами
// Вызывается в транзакции, чтобы ретрит не остался без дат
func (r *Repository) CreateRetreat(ctx context.Context, rt *domain.Retreat) (*domain.Retreat, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("retreats").
		Columns(
			"name",
			"details",
			"place",
			"seats",
			"price",
			"start_time",
			"end_time",
			"min_day_refund",
			"refund_rate",
			"min_day_exchange",
			"is_active",
			"accessibility",
		).
		Values(
			rt.Name,
			rt.Details,
			rt.Place,
			rt.Seats,
			rt.Price,
			rt.StartTime,
			rt.EndTime,
			rt.MinDayRefund,
			rt.RefundRate,
			rt.MinDayExchange,
			rt.IsActive,
			rt.Accessibility,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateRetreat - build insert query: %w", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&rt.ID, &rt.CreatedAt, &rt.UpdatedAt); err != nil {
		return nil, fmt.Errorf("%w: CreateRetreat - execute insert: %w", ErrExecQuery, err)
	}

	for i := range rt.Dates {
		d := &rt.Dates[i]
		d.RetreatID = rt.ID

		query, args, err := psqlbuilder.Insert("retreat_dates").
			Columns("retreat_id", "start_time", "end_time").
			Values(d.RetreatID, d.StartTime, d.EndTime).
			Suffix("RETURNING id").
			ToSql()
		if err != nil {
			return nil, fmt.Errorf("%w: CreateRetreat - build date insert query: %w", ErrBuildQuery, err)
		}
		if err := executor.QueryRowContext(ctx, query, args...).Scan(&d.ID); err != nil {
			return nil, fmt.Errorf("%w: CreateRetreat - execute date insert: %w", ErrExecQuery, err)
		}
	}

	return rt, nil
}

// GetRetreat получает ретрит по ID с датами и числом занятых мест
// Внутри транзакции строка ретрита блокируется
func (r *Repository) GetRetreat(ctx context.Context, id int64) (*domain.Retreat, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(retreatColumns...).
		From("retreats rt").
		Where(squirrel.Eq{"rt.id": id})
	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE OF rt")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetRetreat - build select query: %w", ErrBuildQuery, err)
	}

	rt, err := scanRetreat(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrRetreatNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetRetreat - scan retreat: %w", ErrScanRow, err)
	}

	dates, err := r.listDates(ctx, executor, []int64{rt.ID})
	if err != nil {
		return nil, err
	}
	rt.Dates = dates[rt.ID]

	return rt, nil
}

// ListRetreats список ретритов, заканчивающихся не раньше from
func (r *Repository) ListRetreats(ctx context.Context, activeOnly bool, from time.Time) ([]*domain.Retreat, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(retreatColumns...).
		From("retreats rt").
		Where(squirrel.GtOrEq{"rt.end_time": from}).
		OrderBy("rt.start_time ASC")
	if activeOnly {
		builder = builder.Where(squirrel.Eq{"rt.is_active": true})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListRetreats - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListRetreats - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.Retreat, 0)
	ids := make([]int64, 0)
	for rows.Next() {
		rt, err := scanRetreat(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListRetreats - scan retreat: %w", ErrScanRow, err)
		}
		result = append(result, rt)
		ids = append(ids, rt.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListRetreats - iterate rows: %w", ErrScanRow, err)
	}

	if len(ids) == 0 {
		return result, nil
	}

	dates, err := r.listDates(ctx, executor, ids)
	if err != nil {
		return nil, err
	}
	for _, rt := range result {
		rt.Dates = dates[rt.ID]
	}
	return result, nil
}

// SetActive активирует или деактивирует ретрит
func (r *Repository) SetActive(ctx context.Context, id int64, active bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("retreats").
		Set("is_active", active).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SetActive - build update query: %w", ErrBuildQuery, err)
	}

	res, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetActive - execute update: %w", ErrExecQuery, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrRetreatNotFound
	}
	return nil
}

func (r *Repository) listDates(ctx context.Context, executor DBExecutor, retreatIDs []int64) (map[int64][]domain.RetreatDate, error) {
	query, args, err := psqlbuilder.Select("id", "retreat_id", "start_time", "end_time").
		From("retreat_dates").
		Where(squirrel.Eq{"retreat_id": retreatIDs}).
		OrderBy("start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: listDates - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: listDates - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make(map[int64][]domain.RetreatDate, len(retreatIDs))
	for rows.Next() {
		var d domain.RetreatDate
		if err := rows.Scan(&d.ID, &d.RetreatID, &d.StartTime, &d.EndTime); err != nil {
			return nil, fmt.Errorf("%w: listDates - scan date: %w", ErrScanRow, err)
		}
		result[d.RetreatID] = append(result[d.RetreatID], d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: listDates - iterate rows: %w", ErrScanRow, err)
	}
	return result, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRetreat(row rowScanner) (*domain.Retreat, error) {
	var rt domain.Retreat
	err := row.Scan(
		&rt.ID,
		&rt.Name,
		&rt.Details,
		&rt.Place,
		&rt.Seats,
		&rt.Price,
		&rt.StartTime,
		&rt.EndTime,
		&rt.MinDayRefund,
		&rt.RefundRate,
		&rt.MinDayExchange,
		&rt.IsActive,
		&rt.Accessibility,
		&rt.CreatedAt,
		&rt.UpdatedAt,
		&rt.ReservedSeats,
	)
	if err != nil {
		return nil, err
	}
	return &rt, nil
}
