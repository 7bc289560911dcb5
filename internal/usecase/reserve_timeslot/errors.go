package reserve_timeslot

import "errors"

var (
	// ErrTimeslotNotFound возвращается, когда таймслот не найден
	ErrTimeslotNotFound = errors.New("reserve_timeslot: timeslot not found")

	// ErrUserNotFound возвращается, когда пользователь не найден
	ErrUserNotFound = errors.New("reserve_timeslot: user not found")

	// ErrTimeslotStarted возвращается при попытке забронировать начавшийся таймслот
	ErrTimeslotStarted = errors.New("reserve_timeslot: timeslot has already started")

	// ErrAlreadyReserved возвращается, когда у пользователя уже есть бронирование этого таймслота
	ErrAlreadyReserved = errors.New("reserve_timeslot: timeslot already reserved by user")

	// ErrOverlappingReservation возвращается, когда у пользователя есть бронирование на пересекающееся время
	ErrOverlappingReservation = errors.New("reserve_timeslot: user has an overlapping reservation")

	// ErrTimeslotFull возвращается, когда все места заняты
	ErrTimeslotFull = errors.New("reserve_timeslot: no places left")

	// ErrInsufficientTickets возвращается, когда у пользователя не хватает билетов
	ErrInsufficientTickets = errors.New("reserve_timeslot: insufficient tickets")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reserve_timeslot: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reserve_timeslot: internal error")
)
