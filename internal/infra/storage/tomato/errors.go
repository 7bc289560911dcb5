package tomato

import "errors"

var (
	ErrMessageNotFound = errors.New("tomato.repository: message not found")
	ErrAlreadyReported = errors.New("tomato.repository: message already reported by user")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("tomato.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("tomato.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("tomato.repository: failed to scan row")
)
