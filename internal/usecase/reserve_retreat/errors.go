package reserve_retreat

import "errors"

var (
	// ErrRetreatNotFound возвращается, когда ретрит не найден или не активен
	ErrRetreatNotFound = errors.New("reserve_retreat: retreat not found")

	// ErrRetreatStarted возвращается, когда ретрит уже начался
	ErrRetreatStarted = errors.New("reserve_retreat: retreat has already started")

	// ErrRetreatFull возвращается, когда свободных мест нет
	ErrRetreatFull = errors.New("reserve_retreat: no seats left")

	// ErrAlreadyReserved возвращается, когда у пользователя уже есть бронирование ретрита
	ErrAlreadyReserved = errors.New("reserve_retreat: retreat already reserved by user")

	// ErrOverlappingReservation возвращается при пересечении с другим ретритом пользователя
	ErrOverlappingReservation = errors.New("reserve_retreat: user has an overlapping retreat reservation")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reserve_retreat: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reserve_retreat: internal error")
)
