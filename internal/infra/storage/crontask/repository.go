package crontask

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

var taskColumns = []string{
	"id",
	"description",
	"url",
	"execution_interval",
	"cron_expression",
	"active",
	"run_once",
	"not_before",
	"last_execution",
	"created_at",
}

// Repository репозиторий cron-задач и истории их запусков
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает задачу
func (r *Repository) Create(ctx context.Context, t *domain.CronTask) (*domain.CronTask, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("cron_tasks").
		Columns("description", "url", "execution_interval", "cron_expression", "active", "run_once", "not_before").
		Values(t.Description, t.URL, t.ExecutionInterval, t.CronExpression, t.Active, t.RunOnce, t.NotBefore).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&t.ID, &t.CreatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}
	return t, nil
}

// List все задачи; activeOnly оставляет только активные
func (r *Repository) List(ctx context.Context, activeOnly bool) ([]*domain.CronTask, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(taskColumns...).From("cron_tasks").OrderBy("id")
	if activeOnly {
		builder = builder.Where(squirrel.Eq{"active": true})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.CronTask, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan task: %w", ErrScanRow, err)
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - iterate rows: %w", ErrScanRow, err)
	}
	return result, nil
}

// Delete удаляет задачу вместе с историей запусков
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("cron_tasks").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %w", ErrBuildQuery, err)
	}

	res, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// Claim выставляет last_execution, только если его никто не поменял с момента чтения.
// Так два параллельных тика не запустят одну задачу дважды
func (r *Repository) Claim(ctx context.Context, id int64, prev *time.Time, now time.Time) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Update("cron_tasks").
		Set("last_execution", now).
		Where(squirrel.Eq{"id": id, "active": true})
	if prev == nil {
		builder = builder.Where(squirrel.Eq{"last_execution": nil})
	} else {
		builder = builder.Where(squirrel.Eq{"last_execution": *prev})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: Claim - build update query: %w", ErrBuildQuery, err)
	}

	res, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: Claim - execute update: %w", ErrExecQuery, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: Claim - rows affected: %w", ErrExecQuery, err)
	}
	return n > 0, nil
}

// Deactivate выключает задачу
func (r *Repository) Deactivate(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("cron_tasks").
		Set("active", false).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Deactivate - build update query: %w", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Deactivate - execute update: %w", ErrExecQuery, err)
	}
	return nil
}

// CreateExecution сохраняет результат запуска
func (r *Repository) CreateExecution(ctx context.Context, e *domain.CronExecution) (*domain.CronExecution, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("cron_executions").
		Columns("task_id", "executed_at", "success", "http_status", "error_message", "duration_ms").
		Values(e.TaskID, e.ExecutedAt, e.Success, e.HTTPStatus, e.ErrorMessage, e.Duration.Milliseconds()).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateExecution - build insert query: %w", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&e.ID); err != nil {
		return nil, fmt.Errorf("%w: CreateExecution - execute insert: %w", ErrExecQuery, err)
	}
	return e, nil
}

// ListExecutions последние запуски задачи
func (r *Repository) ListExecutions(ctx context.Context, taskID int64, limit int) ([]*domain.CronExecution, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "task_id", "executed_at", "success", "http_status", "error_message", "duration_ms").
		From("cron_executions").
		Where(squirrel.Eq{"task_id": taskID}).
		OrderBy("executed_at DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListExecutions - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListExecutions - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.CronExecution, 0)
	for rows.Next() {
		var e domain.CronExecution
		var status sql.NullInt64
		var msg sql.NullString
		var durationMs int64
		if err := rows.Scan(&e.ID, &e.TaskID, &e.ExecutedAt, &e.Success, &status, &msg, &durationMs); err != nil {
			return nil, fmt.Errorf("%w: ListExecutions - scan execution: %w", ErrScanRow, err)
		}
		if status.Valid {
			s := int(status.Int64)
			e.HTTPStatus = &s
		}
		if msg.Valid {
			e.ErrorMessage = &msg.String
		}
		e.Duration = time.Duration(durationMs) * time.Millisecond
		result = append(result, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListExecutions - iterate rows: %w", ErrScanRow, err)
	}
	return result, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTask(row rowScanner) (*domain.CronTask, error) {
	var t domain.CronTask
	var expr sql.NullString
	var notBefore, last sql.NullTime

	if err := row.Scan(
		&t.ID,
		&t.Description,
		&t.URL,
		&t.ExecutionInterval,
		&expr,
		&t.Active,
		&t.RunOnce,
		&notBefore,
		&last,
		&t.CreatedAt,
	); err != nil {
		return nil, err
	}

	if expr.Valid {
		t.CronExpression = &expr.String
	}
	if notBefore.Valid {
		t.NotBefore = &notBefore.Time
	}
	if last.Valid {
		t.LastExecution = &last.Time
	}
	return &t, nil
}
