package workplace

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/blitz-booking/internal/domain"
	"github.com/m04kA/blitz-booking/internal/service/workplace/models"
)

func parsePeriod(workplaceID int64, req *models.CreatePeriodRequest) (*domain.Period, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" || len(name) > domain.MaxNameLength {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	start, err := time.Parse(domain.DateFormat, req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: startDate must be YYYY-MM-DD", ErrInvalidInput)
	}
	end, err := time.Parse(domain.DateFormat, req.EndDate)
	if err != nil {
		return nil, fmt.Errorf("%w: endDate must be YYYY-MM-DD", ErrInvalidInput)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: endDate is before startDate", ErrInvalidInput)
	}
	if req.Price < 0 {
		return nil, fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	return &domain.Period{
		WorkplaceID: workplaceID,
		Name:        name,
		StartDate:   start,
		EndDate:     end,
		Price:       req.Price,
		IsActive:    active,
	}, nil
}

func validateTimeslotBounds(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return fmt.Errorf("%w: startTime and endTime are required", ErrInvalidInput)
	}
	if !start.Before(end) {
		return fmt.Errorf("%w: startTime must be before endTime", ErrInvalidInput)
	}
	minutes := int(end.Sub(start).Minutes())
	if minutes < domain.MinTimeslotMinutes || minutes > domain.MaxTimeslotMinutes {
		return fmt.Errorf("%w: timeslot must last between %d and %d minutes",
			ErrInvalidInput, domain.MinTimeslotMinutes, domain.MaxTimeslotMinutes)
	}
	return nil
}
