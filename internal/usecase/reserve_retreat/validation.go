package reserve_retreat

import (
	"fmt"

	"github.com/m04kA/blitz-booking/internal/domain"
)

// validateRequest проверяет входные данные
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}
	if req.RetreatID <= 0 {
		return fmt.Errorf("%w: retreatID must be positive", ErrInvalidInput)
	}
	if req.OrderLineID != nil && *req.OrderLineID <= 0 {
		return fmt.Errorf("%w: orderLineID must be positive", ErrInvalidInput)
	}
	return nil
}

// hasFreeSeat учитывает места, удерживаемые для оповещённых из очереди
// Собственное предложение пользователя место не занимает
func hasFreeSeat(rt *domain.Retreat, ownHold bool) bool {
	free := rt.Seats - rt.ReservedSeats
	if ownHold {
		free++
	}
	return free > 0
}
