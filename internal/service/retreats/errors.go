package retreats

import "errors"

var (
	// ErrRetreatNotFound возвращается, когда ретрит не найден
	ErrRetreatNotFound = errors.New("retreat not found")

	// ErrRetreatNotFull возвращается при попытке встать в очередь на ретрит со свободными местами
	ErrRetreatNotFull = errors.New("retreat still has free seats")

	// ErrAlreadyReserved возвращается, когда у пользователя уже есть место на ретрите
	ErrAlreadyReserved = errors.New("user already has a reservation for this retreat")

	// ErrAlreadyQueued возвращается, когда пользователь уже в очереди
	ErrAlreadyQueued = errors.New("user already in wait queue")

	// ErrNotQueued возвращается, когда пользователя нет в очереди
	ErrNotQueued = errors.New("user not in wait queue")

	// ErrInvalidReminderKind возвращается при неизвестном типе напоминания
	ErrInvalidReminderKind = errors.New("unknown reminder kind")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("retreats service: internal error")
)
