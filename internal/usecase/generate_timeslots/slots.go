package generate_timeslots

import (
	"time"

	"github.com/m04kA/blitz-booking/internal/domain"
	"github.com/m04kA/blitz-booking/pkg/types"
)

// interval кандидат на таймслот
type interval struct {
	start time.Time
	end   time.Time
}

// generateDaySlots нарезает рабочий день на слоты фиксированной длины
// Слот, который не помещается до закрытия, отбрасывается
func generateDaySlots(open, close types.TimeString, slotMinutes int) []types.TimeString {
	slots := make([]types.TimeString, 0)
	current := open

	for current.IsBefore(close) {
		slotEnd, err := current.AddMinutes(slotMinutes)
		if err != nil {
			// конец слота за полночью
			break
		}
		if slotEnd.IsAfter(close) {
			break
		}

		slots = append(slots, current)
		current = slotEnd
	}

	return slots
}

// generateIntervals строит интервалы по всем дням периода в часовом поясе loc
// Возвращает false, если кандидатов больше limit
func generateIntervals(period *domain.Period, req *Request, loc *time.Location, limit int) ([]interval, bool, error) {
	daySlots := generateDaySlots(req.OpenTime, req.CloseTime, req.SlotMinutes)

	weekdays := make(map[time.Weekday]bool, len(req.Weekdays))
	for _, d := range req.Weekdays {
		weekdays[d] = true
	}

	first := time.Date(period.StartDate.Year(), period.StartDate.Month(), period.StartDate.Day(), 0, 0, 0, 0, loc)
	last := time.Date(period.EndDate.Year(), period.EndDate.Month(), period.EndDate.Day(), 0, 0, 0, 0, loc)

	result := make([]interval, 0)
	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		if len(weekdays) > 0 && !weekdays[day.Weekday()] {
			continue
		}

		for _, slot := range daySlots {
			start, err := slot.On(day)
			if err != nil {
				return nil, false, err
			}
			end := start.Add(time.Duration(req.SlotMinutes) * time.Minute)
			if !period.Contains(start, end, loc) {
				continue
			}
			if len(result) == limit {
				return nil, false, nil
			}
			result = append(result, interval{start: start, end: end})
		}
	}

	return result, true, nil
}
