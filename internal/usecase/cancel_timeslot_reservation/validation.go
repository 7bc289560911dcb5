package cancel_timeslot_reservation

import (
	"fmt"
	"time"

	"github.com/m04kA/blitz-booking/internal/domain"
)

// validateRequest проверяет входные данные
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}
	if req.ReservationID <= 0 {
		return fmt.Errorf("%w: reservationID must be positive", ErrInvalidInput)
	}
	return nil
}

// refundTickets число билетов к возврату из списанных при бронировании
// Билеты возвращаются, только если до начала таймслота больше refundWindow
func refundTickets(res *domain.Reservation, ts *domain.TimeSlot, now time.Time, refundWindow time.Duration) int {
	if ts.StartTime.Sub(now) > refundWindow {
		return res.TicketsSpent
	}
	return 0
}
