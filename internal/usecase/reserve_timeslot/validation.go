package reserve_timeslot

import (
	"fmt"

	"github.com/m04kA/blitz-booking/internal/domain"
)

// validateRequest проверяет входные данные
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}
	if req.TimeslotID <= 0 {
		return fmt.Errorf("%w: timeslotID must be positive", ErrInvalidInput)
	}
	return nil
}

// checkUserReservations ищет среди пересекающихся бронирований пользователя
// бронирование того же таймслота (дубль) или другого (пересечение)
func checkUserReservations(timeslotID int64, overlapping []*domain.Reservation) error {
	for _, r := range overlapping {
		if r.TimeSlotID == timeslotID {
			return ErrAlreadyReserved
		}
	}
	if len(overlapping) > 0 {
		return ErrOverlappingReservation
	}
	return nil
}
