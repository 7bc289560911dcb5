package cancel_timeslot_reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("cancel_timeslot_reservation: reservation not found")

	// ErrAccessDenied возвращается, когда пользователь пытается отменить чужое бронирование
	ErrAccessDenied = errors.New("cancel_timeslot_reservation: access denied")

	// ErrAlreadyCancelled возвращается, когда бронирование уже отменено
	ErrAlreadyCancelled = errors.New("cancel_timeslot_reservation: reservation already cancelled")

	// ErrTimeslotStarted возвращается, когда таймслот уже начался
	ErrTimeslotStarted = errors.New("cancel_timeslot_reservation: timeslot has already started")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("cancel_timeslot_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_timeslot_reservation: internal error")
)
