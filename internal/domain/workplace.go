package domain

import "time"

// Workplace рабочее пространство с ограниченным числом мест
type Workplace struct {
	ID        int64
	Name      string
	Details   string
	Seats     int
	Address   string
	City      string
	Country   string
	Timezone  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Location часовой пояс пространства; пустая строка означает UTC
func (w *Workplace) Location() (*time.Location, error) {
	if w.Timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(w.Timezone)
}

// Period период работы пространства с единой ценой таймслота (в билетах)
type Period struct {
	ID          int64
	WorkplaceID int64
	Name        string
	StartDate   time.Time
	EndDate     time.Time
	Price       int
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Contains true, если интервал [start, end] целиком лежит внутри периода
// Границы дней считаются в часовом поясе пространства loc (nil означает UTC).
// EndDate включительно: период до 2026-01-31 содержит весь день 31 января
func (p *Period) Contains(start, end time.Time, loc *time.Location) bool {
	if loc == nil {
		loc = time.UTC
	}
	periodStart := time.Date(p.StartDate.Year(), p.StartDate.Month(), p.StartDate.Day(), 0, 0, 0, 0, loc)
	periodEnd := time.Date(p.EndDate.Year(), p.EndDate.Month(), p.EndDate.Day()+1, 0, 0, 0, 0, loc)
	return !start.Before(periodStart) && !end.After(periodEnd)
}

// OverlapsPeriod true, если даты периодов пересекаются (границы включительно)
func (p *Period) OverlapsPeriod(startDate, endDate time.Time) bool {
	return !startOfDay(p.StartDate).After(startOfDay(endDate)) &&
		!startOfDay(startDate).After(startOfDay(p.EndDate))
}

// TimeSlot бронируемое окно внутри периода
type TimeSlot struct {
	ID          int64
	PeriodID    int64
	WorkplaceID int64
	StartTime   time.Time
	EndTime     time.Time
	Price       int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Overlaps true, если таймслот пересекается с интервалом (касание границ не считается)
func (t *TimeSlot) Overlaps(start, end time.Time) bool {
	return Overlaps(t.StartTime, t.EndTime, start, end)
}

// HasStarted true, если таймслот уже начался
func (t *TimeSlot) HasStarted(now time.Time) bool {
	return !now.Before(t.StartTime)
}

// TimeSlotAvailability таймслот со сведениями о заполненности
type TimeSlotAvailability struct {
	TimeSlot
	Reserved        int
	PlacesRemaining int
}

// ReservationCancelationReason причина отмены бронирования таймслота
type ReservationCancelationReason string

const (
	CancelationByUser          ReservationCancelationReason = "U"
	CancelationTimeslotChanged ReservationCancelationReason = "TM"
	CancelationTimeslotDeleted ReservationCancelationReason = "TD"
)

// Reservation бронирование таймслота
type Reservation struct {
	ID                int64
	UserID            int64
	TimeSlotID        int64
	IsActive          bool
	IsPresent         bool
	CancelationReason *ReservationCancelationReason
	CancelationDate   *time.Time
	// TicketsSpent сколько билетов списали при бронировании; возврат считается от этой суммы
	TicketsSpent int
	// TicketsRefunded сколько билетов вернули пользователю при отмене
	TicketsRefunded int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Overlaps проверяет пересечение интервалов строгими неравенствами:
// интервалы, которые только касаются границами, не пересекаются
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}
