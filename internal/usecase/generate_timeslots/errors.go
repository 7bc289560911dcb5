package generate_timeslots

import "errors"

var (
	// ErrPeriodNotFound возвращается, когда период не найден
	ErrPeriodNotFound = errors.New("generate_timeslots: period not found")

	// ErrInvalidTimezone возвращается, когда у пространства некорректный часовой пояс
	ErrInvalidTimezone = errors.New("generate_timeslots: invalid workplace timezone")

	// ErrTooManyTimeslots возвращается, когда генерация превышает лимит
	ErrTooManyTimeslots = errors.New("generate_timeslots: too many timeslots requested")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("generate_timeslots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("generate_timeslots: internal error")
)
