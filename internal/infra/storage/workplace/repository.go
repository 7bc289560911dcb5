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

// Repository репозиторий рабочих пространств, периодов, таймслотов и их бронирований
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

var workplaceColumns = []string{
	"id", "name", "details", "seats", "address", "city", "country", "timezone", "created_at", "updated_at",
}

// CreateWorkplace создает рабочее пространство
func (r *Repository) CreateWorkplace(ctx context.Context, w *domain.Workplace) (*domain.Workplace, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("workplaces").
		Columns("name", "details", "seats", "address", "city", "country", "timezone").
		Values(w.Name, w.Details, w.Seats, w.Address, w.City, w.Country, w.Timezone).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateWorkplace - build insert query: %w", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&w.ID, &w.CreatedAt, &w.UpdatedAt); err != nil {
		return nil, fmt.Errorf("%w: CreateWorkplace - execute insert: %w", ErrExecQuery, err)
	}
	return w, nil
}

// GetWorkplace получает рабочее пространство по ID
func (r *Repository) GetWorkplace(ctx context.Context, id int64) (*domain.Workplace, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(workplaceColumns...).
		From("workplaces").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetWorkplace - build select query: %w", ErrBuildQuery, err)
	}

	var w domain.Workplace
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&w.ID, &w.Name, &w.Details, &w.Seats, &w.Address, &w.City, &w.Country, &w.Timezone,
		&w.CreatedAt, &w.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrWorkplaceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetWorkplace - scan workplace: %w", ErrScanRow, err)
	}
	return &w, nil
}

// ListWorkplaces список всех рабочих пространств
func (r *Repository) ListWorkplaces(ctx context.Context) ([]*domain.Workplace, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(workplaceColumns...).
		From("workplaces").
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListWorkplaces - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWorkplaces - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.Workplace, 0)
	for rows.Next() {
		var w domain.Workplace
		if err := rows.Scan(
			&w.ID, &w.Name, &w.Details, &w.Seats, &w.Address, &w.City, &w.Country, &w.Timezone,
			&w.CreatedAt, &w.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: ListWorkplaces - scan workplace: %w", ErrScanRow, err)
		}
		result = append(result, &w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListWorkplaces - iterate rows: %w", ErrScanRow, err)
	}
	return result, nil
}
