package tomato

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/blitz-booking/internal/domain"
	"github.com/m04kA/blitz-booking/pkg/dbmetrics"
	"github.com/m04kA/blitz-booking/pkg/psqlbuilder"
)

// CreateAttendance отмечает присутствие пользователя
// Возвращает false, если отметка с таким ключом уже была
func (r *Repository) CreateAttendance(ctx context.Context, a *domain.Attendance) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("attendances").
		Columns("user_id", "key").
		Values(a.UserID, a.Key).
		Suffix("ON CONFLICT (user_id, key) DO NOTHING RETURNING id, date").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: CreateAttendance - build insert query: %w", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&a.ID, &a.Date)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: CreateAttendance - execute insert: %w", ErrExecQuery, err)
	}
	return true, nil
}

// CountAttendance число отметок по ключу сессии
func (r *Repository) CountAttendance(ctx context.Context, key string) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("attendances").
		Where(squirrel.Eq{"key": key}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountAttendance - build select query: %w", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountAttendance - scan count: %w", ErrScanRow, err)
	}
	return count, nil
}
