package retreat

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/blitz-booking/internal/domain"
	"github.com/m04kA/blitz-booking/pkg/dbmetrics"
	"github.com/m04kA/blitz-booking/pkg/psqlbuilder"
)

const uniqueViolation = "23505"

// AddToWaitQueue ставит пользователя в очередь ожидания
func (r *Repository) AddToWaitQueue(ctx context.Context, entry *domain.WaitQueueEntry) (*domain.WaitQueueEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("wait_queue").
		Columns("user_id", "retreat_id").
		Values(entry.UserID, entry.RetreatID).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: AddToWaitQueue - build insert query: %w", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&entry.ID, &entry.CreatedAt); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, ErrAlreadyQueued
		}
		return nil, fmt.Errorf("%w: AddToWaitQueue - execute insert: %w", ErrExecQuery, err)
	}
	return entry, nil
}

// RemoveFromWaitQueue убирает пользователя из очереди
func (r *Repository) RemoveFromWaitQueue(ctx context.Context, userID, retreatID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("wait_queue").
		Where(squirrel.Eq{"user_id": userID, "retreat_id": retreatID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: RemoveFromWaitQueue - build delete query: %w", ErrBuildQuery, err)
	}

	res, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: RemoveFromWaitQueue - execute delete: %w", ErrExecQuery, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotQueued
	}
	return nil
}

// ListWaitQueue очередь ожидания ретрита в порядке постановки
func (r *Repository) ListWaitQueue(ctx context.Context, retreatID int64) ([]*domain.WaitQueueEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "user_id", "retreat_id", "created_at").
		From("wait_queue").
		Where(squirrel.Eq{"retreat_id": retreatID}).
		OrderBy("created_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListWaitQueue - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWaitQueue - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.WaitQueueEntry, 0)
	for rows.Next() {
		var e domain.WaitQueueEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.RetreatID, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: ListWaitQueue - scan entry: %w", ErrScanRow, err)
		}
		result = append(result, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListWaitQueue - iterate rows: %w", ErrScanRow, err)
	}
	return result, nil
}

// CreateNotification фиксирует, что пользователю из очереди предложено место
func (r *Repository) CreateNotification(ctx context.Context, n *domain.WaitQueueNotification) (*domain.WaitQueueNotification, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("wait_queue_notifications").
		Columns("user_id", "retreat_id").
		Values(n.UserID, n.RetreatID).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateNotification - build insert query: %w", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&n.ID, &n.CreatedAt); err != nil {
		return nil, fmt.Errorf("%w: CreateNotification - execute insert: %w", ErrExecQuery, err)
	}
	return n, nil
}

// ListNotifiedUserIDs пользователи, которым место уже предлагалось (за всё время)
func (r *Repository) ListNotifiedUserIDs(ctx context.Context, retreatID int64) (map[int64]bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("DISTINCT user_id").
		From("wait_queue_notifications").
		Where(squirrel.Eq{"retreat_id": retreatID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListNotifiedUserIDs - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListNotifiedUserIDs - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make(map[int64]bool)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: ListNotifiedUserIDs - scan user id: %w", ErrScanRow, err)
		}
		result[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListNotifiedUserIDs - iterate rows: %w", ErrScanRow, err)
	}
	return result, nil
}

// HasActiveHold true, если у пользователя есть не истёкшее предложение места
func (r *Repository) HasActiveHold(ctx context.Context, userID, retreatID int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("wait_queue_notifications").
		Where(squirrel.Eq{"user_id": userID, "retreat_id": retreatID}).
		Where(squirrel.Expr("created_at > NOW() - make_interval(secs => ?)", int(domain.WaitQueueHold.Seconds()))).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: HasActiveHold - build select query: %w", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("%w: HasActiveHold - scan count: %w", ErrScanRow, err)
	}
	return count > 0, nil
}
