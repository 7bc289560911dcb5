package retreats

import (
	"fmt"
	"strings"

	"github.com/m04kA/blitz-booking/internal/domain"
	"github.com/m04kA/blitz-booking/internal/service/retreats/models"
)

// buildRetreat проверяет запрос и собирает доменную модель
func buildRetreat(req *models.CreateRetreatRequest) (*domain.Retreat, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" || len(name) > domain.MaxNameLength {
		return nil, fmt.Errorf("%w: name is required and must be at most %d characters", ErrInvalidInput, domain.MaxNameLength)
	}
	if len(req.Details) > domain.MaxDetailsLength {
		return nil, fmt.Errorf("%w: details must be at most %d characters", ErrInvalidInput, domain.MaxDetailsLength)
	}
	if req.Seats <= 0 {
		return nil, fmt.Errorf("%w: seats must be positive", ErrInvalidInput)
	}
	if req.Price.IsNegative() {
		return nil, fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}
	if req.MinDayRefund < 0 || req.MinDayExchange < 0 {
		return nil, fmt.Errorf("%w: minDayRefund and minDayExchange must not be negative", ErrInvalidInput)
	}

	refundRate := domain.DefaultRetreatRefund
	if req.RefundRate != nil {
		refundRate = *req.RefundRate
	}
	if refundRate < 0 || refundRate > 100 {
		return nil, fmt.Errorf("%w: refundRate must be between 0 and 100", ErrInvalidInput)
	}

	if len(req.Dates) == 0 {
		return nil, fmt.Errorf("%w: at least one date is required", ErrInvalidInput)
	}
	dates := make([]domain.RetreatDate, len(req.Dates))
	for i, d := range req.Dates {
		if d.StartTime.IsZero() || d.EndTime.IsZero() {
			return nil, fmt.Errorf("%w: date #%d: startTime and endTime are required", ErrInvalidInput, i+1)
		}
		if !d.StartTime.Before(d.EndTime) {
			return nil, fmt.Errorf("%w: date #%d: startTime must be before endTime", ErrInvalidInput, i+1)
		}
		dates[i] = domain.RetreatDate{StartTime: d.StartTime, EndTime: d.EndTime}
	}

	rt := &domain.Retreat{
		Name:           name,
		Details:        req.Details,
		Place:          req.Place,
		Seats:          req.Seats,
		Price:          req.Price,
		MinDayRefund:   req.MinDayRefund,
		RefundRate:     refundRate,
		MinDayExchange: req.MinDayExchange,
		Accessibility:  req.Accessibility,
	}
	rt.ApplyDates(dates)
	return rt, nil
}
