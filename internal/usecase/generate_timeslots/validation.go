package generate_timeslots

import (
	"fmt"

	"github.com/m04kA/blitz-booking/internal/domain"
	"github.com/m04kA/blitz-booking/pkg/types"
)

// endOfDay допустимое время закрытия "до полуночи"
const endOfDay types.TimeString = "24:00"

// validateRequest проверяет входные данные
func validateRequest(req *Request) error {
	if req.PeriodID <= 0 {
		return fmt.Errorf("%w: periodID must be positive", ErrInvalidInput)
	}
	if req.OpenTime.IsZero() || req.CloseTime.IsZero() {
		return fmt.Errorf("%w: openTime and closeTime are required", ErrInvalidInput)
	}
	if err := req.OpenTime.Validate(); err != nil {
		return fmt.Errorf("%w: openTime: %w", ErrInvalidInput, err)
	}
	if err := req.CloseTime.Validate(); err != nil && req.CloseTime != endOfDay {
		return fmt.Errorf("%w: closeTime: %w", ErrInvalidInput, err)
	}
	if !req.OpenTime.IsBefore(req.CloseTime) {
		return fmt.Errorf("%w: openTime must be before closeTime", ErrInvalidInput)
	}
	if req.SlotMinutes < domain.MinTimeslotMinutes || req.SlotMinutes > domain.MaxTimeslotMinutes {
		return fmt.Errorf("%w: slotMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinTimeslotMinutes, domain.MaxTimeslotMinutes)
	}
	for _, d := range req.Weekdays {
		if d < 0 || d > 6 {
			return fmt.Errorf("%w: weekday %d out of range", ErrInvalidInput, d)
		}
	}
	return nil
}
