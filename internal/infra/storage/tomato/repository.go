package tomato

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/blitz-booking/internal/domain"
	"github.com/m04kA/blitz-booking/pkg/dbmetrics"
	"github.com/m04kA/blitz-booking/pkg/psqlbuilder"
)

// Repository репозиторий томатов, чата и посещаемости
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreditTomato добавляет запись в журнал томатов
func (r *Repository) CreditTomato(ctx context.Context, t *domain.Tomato) (*domain.Tomato, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("tomatoes").
		Columns("user_id", "number", "source").
		Values(t.UserID, t.Number, string(t.Source)).
		Suffix("RETURNING id, acquisition_date").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreditTomato - build insert query: %w", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&t.ID, &t.AcquisitionDate); err != nil {
		return nil, fmt.Errorf("%w: CreditTomato - execute insert: %w", ErrExecQuery, err)
	}
	return t, nil
}

// ListByUser журнал томатов пользователя, новые первыми
func (r *Repository) ListByUser(ctx context.Context, userID int64) ([]*domain.Tomato, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "user_id", "number", "source", "acquisition_date").
		From("tomatoes").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("acquisition_date DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByUser - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByUser - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.Tomato, 0)
	for rows.Next() {
		var t domain.Tomato
		var source string
		if err := rows.Scan(&t.ID, &t.UserID, &t.Number, &source, &t.AcquisitionDate); err != nil {
			return nil, fmt.Errorf("%w: ListByUser - scan tomato: %w", ErrScanRow, err)
		}
		t.Source = domain.TomatoSource(source)
		result = append(result, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByUser - iterate rows: %w", ErrScanRow, err)
	}
	return result, nil
}
