package store

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

var couponColumns = []string{
	"c.id",
	"c.code",
	"c.value",
	"c.percent_off",
	"c.max_use",
	"c.max_use_per_user",
	"c.start_time",
	"c.end_time",
	"c.owner_id",
	"c.details",
	"c.applicable_retreats",
	"c.applicable_packages",
	"c.applicable_memberships",
	"c.applicable_product_types",
	"c.created_at",
	"(SELECT COALESCE(SUM(cu.uses), 0) FROM coupon_users cu WHERE cu.coupon_id = c.id) AS uses",
}

// CreateCoupon создает купон
func (r *Repository) CreateCoupon(ctx context.Context, c *domain.Coupon) (*domain.Coupon, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	types := make([]string, 0, len(c.ApplicableProductTypes))
	for _, t := range c.ApplicableProductTypes {
		types = append(types, string(t))
	}

	query, args, err := psqlbuilder.Insert("coupons").
		Columns(
			"code",
			"value",
			"percent_off",
			"max_use",
			"max_use_per_user",
			"start_time",
			"end_time",
			"owner_id",
			"details",
			"applicable_retreats",
			"applicable_packages",
			"applicable_memberships",
			"applicable_product_types",
		).
		Values(
			c.Code,
			c.Value,
			c.PercentOff,
			c.MaxUse,
			c.MaxUsePerUser,
			c.StartTime,
			c.EndTime,
			c.OwnerID,
			c.Details,
			pq.Array(nonNil(c.ApplicableRetreats)),
			pq.Array(nonNil(c.ApplicablePackages)),
			pq.Array(nonNil(c.ApplicableMemberships)),
			pq.Array(types),
		).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateCoupon - build insert query: %w", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&c.ID, &c.CreatedAt); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, ErrCouponCodeTaken
		}
		return nil, fmt.Errorf("%w: CreateCoupon - execute insert: %w", ErrExecQuery, err)
	}
	return c, nil
}

// GetCouponByCode получает купон по коду вместе с числом использований
// Внутри транзакции строка купона блокируется, чтобы лимиты не превысили параллельные заказы
func (r *Repository) GetCouponByCode(ctx context.Context, code string) (*domain.Coupon, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(couponColumns...).
		From("coupons c").
		Where(squirrel.Eq{"c.code": code})
	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE OF c")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetCouponByCode - build select query: %w", ErrBuildQuery, err)
	}

	c, err := scanCoupon(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrCouponNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetCouponByCode - scan coupon: %w", ErrScanRow, err)
	}
	return c, nil
}

// GetCouponUses число использований купона пользователем
func (r *Repository) GetCouponUses(ctx context.Context, couponID, userID int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COALESCE(SUM(uses), 0)").
		From("coupon_users").
		Where(squirrel.Eq{"coupon_id": couponID, "user_id": userID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: GetCouponUses - build select query: %w", ErrBuildQuery, err)
	}

	var uses int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&uses); err != nil {
		return 0, fmt.Errorf("%w: GetCouponUses - scan uses: %w", ErrScanRow, err)
	}
	return uses, nil
}

// IncrementCouponUses увеличивает счётчик использований купона пользователем
func (r *Repository) IncrementCouponUses(ctx context.Context, couponID, userID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("coupon_users").
		Columns("coupon_id", "user_id", "uses").
		Values(couponID, userID, 1).
		Suffix("ON CONFLICT (coupon_id, user_id) DO UPDATE SET uses = coupon_users.uses + 1").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: IncrementCouponUses - build insert query: %w", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: IncrementCouponUses - execute insert: %w", ErrExecQuery, err)
	}
	return nil
}

func scanCoupon(row rowScanner) (*domain.Coupon, error) {
	var c domain.Coupon
	var retreats, packages, memberships pq.Int64Array
	var types pq.StringArray

	if err := row.Scan(
		&c.ID,
		&c.Code,
		&c.Value,
		&c.PercentOff,
		&c.MaxUse,
		&c.MaxUsePerUser,
		&c.StartTime,
		&c.EndTime,
		&c.OwnerID,
		&c.Details,
		&retreats,
		&packages,
		&memberships,
		&types,
		&c.CreatedAt,
		&c.Uses,
	); err != nil {
		return nil, err
	}

	c.ApplicableRetreats = []int64(retreats)
	c.ApplicablePackages = []int64(packages)
	c.ApplicableMemberships = []int64(memberships)
	for _, t := range types {
		c.ApplicableProductTypes = append(c.ApplicableProductTypes, domain.ProductType(t))
	}
	return &c, nil
}

func nonNil(ids []int64) []int64 {
	if ids == nil {
		return []int64{}
	}
	return ids
}
