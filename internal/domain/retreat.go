package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Retreat многодневное мероприятие с ограниченным числом мест
type Retreat struct {
	ID      int64
	Name    string
	Details string
	Place   string
	Seats   int
	Price   decimal.Decimal
	// StartTime/EndTime минимум и максимум по датам ретрита
	StartTime time.Time
	EndTime   time.Time
	// MinDayRefund за сколько дней до начала ещё возможен возврат
	MinDayRefund int
	// RefundRate процент цены, возвращаемый при отмене
	RefundRate     int
	MinDayExchange int
	IsActive       bool
	Accessibility  bool
	Dates          []RetreatDate
	// ReservedSeats активные бронирования плюс места, удерживаемые для оповещённых из очереди
	ReservedSeats int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// RetreatDate отдельная дата проведения ретрита
type RetreatDate struct {
	ID        int64
	RetreatID int64
	StartTime time.Time
	EndTime   time.Time
}

// SeatsRemaining количество свободных мест
func (r *Retreat) SeatsRemaining() int {
	left := r.Seats - r.ReservedSeats
	if left < 0 {
		return 0
	}
	return left
}

func (r *Retreat) IsFull() bool {
	return r.SeatsRemaining() == 0
}

// RefundDeadline последний момент, когда отмена даёт возврат
func (r *Retreat) RefundDeadline() time.Time {
	return r.StartTime.AddDate(0, 0, -r.MinDayRefund)
}

// IsRefundable true, если отмена в момент now даёт возврат
func (r *Retreat) IsRefundable(now time.Time) bool {
	return now.Before(r.RefundDeadline())
}

// RefundAmount сумма возврата от уплаченной стоимости
func (r *Retreat) RefundAmount(paid decimal.Decimal) decimal.Decimal {
	return paid.Mul(decimal.NewFromInt(int64(r.RefundRate))).Div(decimal.NewFromInt(100)).Round(2)
}

// ApplyDates выставляет StartTime/EndTime по датам
func (r *Retreat) ApplyDates(dates []RetreatDate) {
	r.Dates = dates
	for i, d := range dates {
		if i == 0 || d.StartTime.Before(r.StartTime) {
			r.StartTime = d.StartTime
		}
		if i == 0 || d.EndTime.After(r.EndTime) {
			r.EndTime = d.EndTime
		}
	}
}

// RetreatCancelationReason причина отмены бронирования ретрита
type RetreatCancelationReason string

const (
	RetreatCancelationByUser  RetreatCancelationReason = "U"
	RetreatCancelationDeleted RetreatCancelationReason = "RD"
	RetreatCancelationChanged RetreatCancelationReason = "RM"
)

// CancelationAction что сделано с оплатой при отмене
type CancelationAction string

const (
	CancelationActionRefund   CancelationAction = "R"
	CancelationActionExchange CancelationAction = "E"
	CancelationActionNone     CancelationAction = "N"
)

// RetreatReservation место пользователя на ретрите
type RetreatReservation struct {
	ID                int64
	UserID            int64
	RetreatID         int64
	OrderLineID       *int64
	IsActive          bool
	IsPresent         bool
	CancelationReason *RetreatCancelationReason
	CancelationAction *CancelationAction
	CancelationDate   *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// WaitQueueEntry пользователь в очереди ожидания ретрита
type WaitQueueEntry struct {
	ID        int64
	UserID    int64
	RetreatID int64
	CreatedAt time.Time
}

// WaitQueueNotification пользователю из очереди предложено освободившееся место
type WaitQueueNotification struct {
	ID        int64
	UserID    int64
	RetreatID int64
	CreatedAt time.Time
}

// WaitQueueHold сколько оповещённый из очереди пользователь удерживает место
const WaitQueueHold = 24 * time.Hour
