package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"

	"github.com/m04kA/blitz-booking/internal/domain"
	"github.com/m04kA/blitz-booking/pkg/dbmetrics"
	"github.com/m04kA/blitz-booking/pkg/psqlbuilder"
)

// CreateOrder сохраняет заказ и его строки
// Вызывается в транзакции: заказ без строк не должен остаться в базе
func (r *Repository) CreateOrder(ctx context.Context, o *domain.Order) (*domain.Order, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("orders").
		Columns("user_id", "reference", "transaction_id", "transaction_date", "total", "discount", "coupon_id").
		Values(o.UserID, o.Reference, o.TransactionID, o.TransactionDate, o.Total, o.Discount, o.CouponID).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateOrder - build insert query: %w", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&o.ID, &o.CreatedAt); err != nil {
		return nil, fmt.Errorf("%w: CreateOrder - execute insert: %w", ErrExecQuery, err)
	}

	for i := range o.Lines {
		line := &o.Lines[i]
		line.OrderID = o.ID

		query, args, err := psqlbuilder.Insert("order_lines").
			Columns("order_id", "product_type", "object_id", "quantity", "cost", "coupon_id", "coupon_real_value").
			Values(line.OrderID, string(line.ProductType), line.ObjectID, line.Quantity, line.Cost, line.CouponID, line.CouponRealValue).
			Suffix("RETURNING id, created_at").
			ToSql()
		if err != nil {
			return nil, fmt.Errorf("%w: CreateOrder - build line insert query: %w", ErrBuildQuery, err)
		}
		if err := executor.QueryRowContext(ctx, query, args...).Scan(&line.ID, &line.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: CreateOrder - execute line insert: %w", ErrExecQuery, err)
		}
	}

	return o, nil
}

// GetOrder получает заказ по ID (без строк)
func (r *Repository) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id", "user_id", "reference", "transaction_id", "transaction_date", "total", "discount", "coupon_id", "created_at",
	).
		From("orders").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetOrder - build select query: %w", ErrBuildQuery, err)
	}

	var o domain.Order
	var transactionID sql.NullString
	var couponID sql.NullInt64
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&o.ID, &o.UserID, &o.Reference, &transactionID, &o.TransactionDate, &o.Total, &o.Discount, &couponID, &o.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetOrder - scan order: %w", ErrScanRow, err)
	}
	if transactionID.Valid {
		o.TransactionID = &transactionID.String
	}
	if couponID.Valid {
		o.CouponID = &couponID.Int64
	}
	return &o, nil
}

// GetOrderLine получает строку заказа по ID
// Внутри транзакции строка блокируется, чтобы параллельные возвраты не превысили стоимость
func (r *Repository) GetOrderLine(ctx context.Context, id int64) (*domain.OrderLine, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(
		"id", "order_id", "product_type", "object_id", "quantity", "cost", "coupon_id", "coupon_real_value", "created_at",
	).
		From("order_lines").
		Where(squirrel.Eq{"id": id})
	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetOrderLine - build select query: %w", ErrBuildQuery, err)
	}

	var line domain.OrderLine
	var productType string
	var couponID sql.NullInt64
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&line.ID, &line.OrderID, &productType, &line.ObjectID, &line.Quantity, &line.Cost, &couponID, &line.CouponRealValue, &line.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrOrderLineNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetOrderLine - scan order line: %w", ErrScanRow, err)
	}
	line.ProductType = domain.ProductType(productType)
	if couponID.Valid {
		line.CouponID = &couponID.Int64
	}
	return &line, nil
}

// SumRefunded сумма уже выполненных возвратов по строке заказа
func (r *Repository) SumRefunded(ctx context.Context, orderLineID int64) (decimal.Decimal, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COALESCE(SUM(amount), 0)").
		From("refunds").
		Where(squirrel.Eq{"order_line_id": orderLineID}).
		ToSql()
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: SumRefunded - build select query: %w", ErrBuildQuery, err)
	}

	var sum decimal.Decimal
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("%w: SumRefunded - scan sum: %w", ErrScanRow, err)
	}
	return sum, nil
}

// CreateRefund сохраняет возврат
func (r *Repository) CreateRefund(ctx context.Context, refund *domain.Refund) (*domain.Refund, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("refunds").
		Columns("order_line_id", "amount", "refund_id", "refund_date").
		Values(refund.OrderLineID, refund.Amount, refund.RefundID, refund.RefundDate).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateRefund - build insert query: %w", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&refund.ID); err != nil {
		return nil, fmt.Errorf("%w: CreateRefund - execute insert: %w", ErrExecQuery, err)
	}
	return refund, nil
}
