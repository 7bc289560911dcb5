package tomato

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/blitz-booking/internal/domain"
	"github.com/m04kA/blitz-booking/pkg/dbmetrics"
	"github.com/m04kA/blitz-booking/pkg/psqlbuilder"
)

const uniqueViolation = "23505"

const reportCountExpr = "(SELECT COUNT(*) FROM message_reports mr WHERE mr.message_id = m.id) AS report_count"

// CreateMessage публикует сообщение
func (r *Repository) CreateMessage(ctx context.Context, m *domain.Message) (*domain.Message, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("messages").
		Columns("user_id", "author", "content").
		Values(m.UserID, m.Author, m.Content).
		Suffix("RETURNING id, posted_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateMessage - build insert query: %w", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&m.ID, &m.PostedAt); err != nil {
		return nil, fmt.Errorf("%w: CreateMessage - execute insert: %w", ErrExecQuery, err)
	}
	return m, nil
}

// GetMessage получает сообщение по ID
func (r *Repository) GetMessage(ctx context.Context, id int64) (*domain.Message, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("m.id", "m.user_id", "m.author", "m.content", "m.posted_at", reportCountExpr).
		From("messages m").
		Where(squirrel.Eq{"m.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetMessage - build select query: %w", ErrBuildQuery, err)
	}

	var m domain.Message
	err = executor.QueryRowContext(ctx, query, args...).Scan(&m.ID, &m.UserID, &m.Author, &m.Content, &m.PostedAt, &m.ReportCount)
	if err == sql.ErrNoRows {
		return nil, ErrMessageNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetMessage - scan message: %w", ErrScanRow, err)
	}
	return &m, nil
}

// ListVisibleMessages последние сообщения без скрытых по жалобам, новые первыми
func (r *Repository) ListVisibleMessages(ctx context.Context, limit int) ([]*domain.Message, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("m.id", "m.user_id", "m.author", "m.content", "m.posted_at", reportCountExpr).
		From("messages m").
		Where(squirrel.Expr(
			"(SELECT COUNT(*) FROM message_reports mr WHERE mr.message_id = m.id) < ?",
			domain.HiddenMessageReportThreshold,
		)).
		OrderBy("m.posted_at DESC", "m.id DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListVisibleMessages - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListVisibleMessages - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.Message, 0)
	for rows.Next() {
		var m domain.Message
		if err := rows.Scan(&m.ID, &m.UserID, &m.Author, &m.Content, &m.PostedAt, &m.ReportCount); err != nil {
			return nil, fmt.Errorf("%w: ListVisibleMessages - scan message: %w", ErrScanRow, err)
		}
		result = append(result, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListVisibleMessages - iterate rows: %w", ErrScanRow, err)
	}
	return result, nil
}

// CreateReport сохраняет жалобу; повторная жалоба того же пользователя отклоняется
func (r *Repository) CreateReport(ctx context.Context, rep *domain.Report) (*domain.Report, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("message_reports").
		Columns("message_id", "user_id", "reason").
		Values(rep.MessageID, rep.UserID, rep.Reason).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateReport - build insert query: %w", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&rep.ID, &rep.CreatedAt); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, ErrAlreadyReported
		}
		return nil, fmt.Errorf("%w: CreateReport - execute insert: %w", ErrExecQuery, err)
	}
	return rep, nil
}
