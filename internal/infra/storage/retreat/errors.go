package retreat

import "errors"

var (
	ErrRetreatNotFound     = errors.New("retreat.repository: retreat not found")
	ErrReservationNotFound = errors.New("retreat.repository: reservation not found")
	ErrAlreadyQueued       = errors.New("retreat.repository: user already in wait queue")
	ErrNotQueued           = errors.New("retreat.repository: user not in wait queue")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("retreat.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("retreat.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("retreat.repository: failed to scan row")
)
