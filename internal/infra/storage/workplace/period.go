package workplace

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/blitz-booking/internal/domain"
	"github.com/m04kA/blitz-booking/pkg/dbmetrics"
	"github.com/m04kA/blitz-booking/pkg/psqlbuilder"
)

var periodColumns = []string{
	"id", "workplace_id", "name", "start_date", "end_date", "price", "is_active", "created_at", "updated_at",
}

// CreatePeriod создает период
func (r *Repository) CreatePeriod(ctx context.Context, p *domain.Period) (*domain.Period, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("periods").
		Columns("workplace_id", "name", "start_date", "end_date", "price", "is_active").
		Values(p.WorkplaceID, p.Name, p.StartDate, p.EndDate, p.Price, p.IsActive).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreatePeriod - build insert query: %w", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, fmt.Errorf("%w: CreatePeriod - execute insert: %w", ErrExecQuery, err)
	}
	return p, nil
}

// GetPeriod получает период по ID
func (r *Repository) GetPeriod(ctx context.Context, id int64) (*domain.Period, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(periodColumns...).
		From("periods").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetPeriod - build select query: %w", ErrBuildQuery, err)
	}

	var p domain.Period
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&p.ID, &p.WorkplaceID, &p.Name, &p.StartDate, &p.EndDate, &p.Price, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrPeriodNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetPeriod - scan period: %w", ErrScanRow, err)
	}
	return &p, nil
}

// ListActivePeriods активные периоды рабочего пространства
// Внутри транзакции строки блокируются, чтобы проверка пересечения не гонялась с параллельной вставкой
func (r *Repository) ListActivePeriods(ctx context.Context, workplaceID int64) ([]*domain.Period, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(periodColumns...).
		From("periods").
		Where(squirrel.Eq{"workplace_id": workplaceID, "is_active": true}).
		OrderBy("start_date ASC")
	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActivePeriods - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActivePeriods - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.Period, 0)
	for rows.Next() {
		var p domain.Period
		if err := rows.Scan(
			&p.ID, &p.WorkplaceID, &p.Name, &p.StartDate, &p.EndDate, &p.Price, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: ListActivePeriods - scan period: %w", ErrScanRow, err)
		}
		result = append(result, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActivePeriods - iterate rows: %w", ErrScanRow, err)
	}
	return result, nil
}
