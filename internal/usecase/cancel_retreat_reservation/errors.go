package cancel_retreat_reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("cancel_retreat_reservation: reservation not found")

	// ErrAccessDenied возвращается, когда пользователь пытается отменить чужое бронирование
	ErrAccessDenied = errors.New("cancel_retreat_reservation: access denied")

	// ErrAlreadyCancelled возвращается, когда бронирование уже отменено
	ErrAlreadyCancelled = errors.New("cancel_retreat_reservation: reservation already cancelled")

	// ErrRefundFailed возвращается, когда платёжный шлюз не выполнил возврат
	ErrRefundFailed = errors.New("cancel_retreat_reservation: refund failed")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("cancel_retreat_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_retreat_reservation: internal error")
)
