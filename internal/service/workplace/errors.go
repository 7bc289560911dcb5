package workplace

import "errors"

var (
	// ErrWorkplaceNotFound возвращается, когда пространство не найдено
	ErrWorkplaceNotFound = errors.New("workplace not found")

	// ErrPeriodNotFound возвращается, когда период не найден
	ErrPeriodNotFound = errors.New("period not found")

	// ErrTimeslotNotFound возвращается, когда таймслот не найден
	ErrTimeslotNotFound = errors.New("timeslot not found")

	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("reservation not found")

	// ErrPeriodOverlap возвращается, когда активные периоды пространства пересекаются
	ErrPeriodOverlap = errors.New("period overlaps another active period")

	// ErrTimeslotOverlap возвращается, когда таймслот пересекается с существующим
	ErrTimeslotOverlap = errors.New("timeslot overlaps an existing timeslot")

	// ErrTimeslotOutsidePeriod возвращается, когда таймслот выходит за границы периода
	ErrTimeslotOutsidePeriod = errors.New("timeslot is outside of the period")

	// ErrTimeslotHasReservations возвращается при удалении таймслота с бронированиями без force
	ErrTimeslotHasReservations = errors.New("timeslot has active reservations")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("workplace service: internal error")
)
