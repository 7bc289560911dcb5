package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/blitz-booking/internal/domain"
	"github.com/m04kA/blitz-booking/pkg/dbmetrics"
	"github.com/m04kA/blitz-booking/pkg/psqlbuilder"
)

const uniqueViolation = "23505"

var userColumns = []string{
	"id",
	"email",
	"first_name",
	"last_name",
	"tickets",
	"membership_id",
	"membership_end",
	"is_staff",
	"created_at",
	"updated_at",
}

// Repository репозиторий пользователей
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает пользователя
func (r *Repository) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("users").
		Columns("email", "first_name", "last_name", "tickets", "is_staff").
		Values(u.Email, u.FirstName, u.LastName, u.Tickets, u.IsStaff).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return u, nil
}

// GetByID получает пользователя по ID
// Внутри транзакции строка блокируется (FOR UPDATE), чтобы баланс билетов не менялся параллельно
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(userColumns...).
		From("users").
		Where(squirrel.Eq{"id": id})
	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	u, err := scanUser(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan user: %w", ErrScanRow, err)
	}
	return u, nil
}

// AddTickets изменяет баланс билетов на delta и возвращает новый баланс
// Отрицательный delta списывает билеты; баланс не может стать меньше нуля.
// Неизвестный пользователь дает ErrUserNotFound, нехватка билетов ErrInsufficientTickets
func (r *Repository) AddTickets(ctx context.Context, id int64, delta int) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("users").
		Set("tickets", squirrel.Expr("tickets + ?", delta)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Expr("tickets + ? >= 0", delta)).
		Suffix("RETURNING tickets").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: AddTickets - build update query: %w", ErrBuildQuery, err)
	}

	var balance int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&balance)
	if err == sql.ErrNoRows {
		exists, existsErr := r.exists(ctx, executor, id)
		if existsErr != nil {
			return 0, existsErr
		}
		if !exists {
			return 0, ErrUserNotFound
		}
		return 0, ErrInsufficientTickets
	}
	if err != nil {
		return 0, fmt.Errorf("%w: AddTickets - execute update: %w", ErrExecQuery, err)
	}
	return balance, nil
}

func (r *Repository) exists(ctx context.Context, executor dbmetrics.DBExecutor, id int64) (bool, error) {
	query, args, err := psqlbuilder.Select("1").
		From("users").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: exists - build select query: %w", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: exists - execute select: %w", ErrExecQuery, err)
	}
	return true, nil
}

// SetMembership назначает абонемент до указанной даты
func (r *Repository) SetMembership(ctx context.Context, id int64, membershipID int64, end time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("users").
		Set("membership_id", membershipID).
		Set("membership_end", end).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SetMembership - build update query: %w", ErrBuildQuery, err)
	}

	res, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetMembership - execute update: %w", ErrExecQuery, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrUserNotFound
	}
	return nil
}

func scanUser(row *sql.Row) (*domain.User, error) {
	var u domain.User
	var membershipEnd sql.NullTime

	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.FirstName,
		&u.LastName,
		&u.Tickets,
		&u.MembershipID,
		&membershipEnd,
		&u.IsStaff,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if membershipEnd.Valid {
		u.MembershipEnd = &membershipEnd.Time
	}
	return &u, nil
}
