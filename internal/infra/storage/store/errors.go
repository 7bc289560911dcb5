package store

import "errors"

var (
	ErrMembershipNotFound = errors.New("store.repository: membership not found")
	ErrPackageNotFound    = errors.New("store.repository: package not found")
	ErrCouponNotFound     = errors.New("store.repository: coupon not found")
	ErrCouponCodeTaken    = errors.New("store.repository: coupon code already exists")
	ErrOrderNotFound      = errors.New("store.repository: order not found")
	ErrOrderLineNotFound  = errors.New("store.repository: order line not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("store.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("store.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("store.repository: failed to scan row")
)
