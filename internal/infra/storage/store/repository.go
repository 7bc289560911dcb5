package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/blitz-booking/internal/domain"
	"github.com/m04kA/blitz-booking/pkg/dbmetrics"
	"github.com/m04kA/blitz-booking/pkg/psqlbuilder"
)

const uniqueViolation = "23505"

// Repository репозиторий товаров, купонов и заказов
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreateMembership создает абонемент
func (r *Repository) CreateMembership(ctx context.Context, m *domain.Membership) (*domain.Membership, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("memberships").
		Columns("name", "details", "price", "duration_days", "available").
		Values(m.Name, m.Details, m.Price, m.DurationDays, m.Available).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateMembership - build insert query: %w", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&m.ID, &m.CreatedAt); err != nil {
		return nil, fmt.Errorf("%w: CreateMembership - execute insert: %w", ErrExecQuery, err)
	}
	return m, nil
}

var membershipColumns = []string{"id", "name", "details", "price", "duration_days", "available", "created_at"}

// GetMembership получает абонемент по ID
func (r *Repository) GetMembership(ctx context.Context, id int64) (*domain.Membership, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(membershipColumns...).
		From("memberships").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetMembership - build select query: %w", ErrBuildQuery, err)
	}

	m, err := scanMembership(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrMembershipNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetMembership - scan membership: %w", ErrScanRow, err)
	}
	return m, nil
}

// ListMemberships абонементы; availableOnly отбрасывает снятые с продажи
func (r *Repository) ListMemberships(ctx context.Context, availableOnly bool) ([]*domain.Membership, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(membershipColumns...).From("memberships").OrderBy("id")
	if availableOnly {
		builder = builder.Where(squirrel.Eq{"available": true})
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListMemberships - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListMemberships - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.Membership, 0)
	for rows.Next() {
		m, err := scanMembership(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListMemberships - scan membership: %w", ErrScanRow, err)
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListMemberships - iterate rows: %w", ErrScanRow, err)
	}
	return result, nil
}

// CreatePackage создает пакет билетов
func (r *Repository) CreatePackage(ctx context.Context, p *domain.Package) (*domain.Package, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	exclusive := p.ExclusiveMembershipIDs
	if exclusive == nil {
		exclusive = []int64{}
	}

	query, args, err := psqlbuilder.Insert("packages").
		Columns("name", "details", "price", "tickets", "exclusive_membership_ids", "available").
		Values(p.Name, p.Details, p.Price, p.Tickets, pq.Array(exclusive), p.Available).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreatePackage - build insert query: %w", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&p.ID, &p.CreatedAt); err != nil {
		return nil, fmt.Errorf("%w: CreatePackage - execute insert: %w", ErrExecQuery, err)
	}
	return p, nil
}

var packageColumns = []string{"id", "name", "details", "price", "tickets", "exclusive_membership_ids", "available", "created_at"}

// GetPackage получает пакет по ID
func (r *Repository) GetPackage(ctx context.Context, id int64) (*domain.Package, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(packageColumns...).
		From("packages").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetPackage - build select query: %w", ErrBuildQuery, err)
	}

	p, err := scanPackage(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrPackageNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetPackage - scan package: %w", ErrScanRow, err)
	}
	return p, nil
}

// ListPackages пакеты; availableOnly отбрасывает снятые с продажи
func (r *Repository) ListPackages(ctx context.Context, availableOnly bool) ([]*domain.Package, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(packageColumns...).From("packages").OrderBy("id")
	if availableOnly {
		builder = builder.Where(squirrel.Eq{"available": true})
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListPackages - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListPackages - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.Package, 0)
	for rows.Next() {
		p, err := scanPackage(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListPackages - scan package: %w", ErrScanRow, err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListPackages - iterate rows: %w", ErrScanRow, err)
	}
	return result, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanMembership(row rowScanner) (*domain.Membership, error) {
	var m domain.Membership
	if err := row.Scan(&m.ID, &m.Name, &m.Details, &m.Price, &m.DurationDays, &m.Available, &m.CreatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}

func scanPackage(row rowScanner) (*domain.Package, error) {
	var p domain.Package
	var exclusive pq.Int64Array
	if err := row.Scan(&p.ID, &p.Name, &p.Details, &p.Price, &p.Tickets, &exclusive, &p.Available, &p.CreatedAt); err != nil {
		return nil, err
	}
	p.ExclusiveMembershipIDs = []int64(exclusive)
	return &p, nil
}
