package retreats

import (
	"time"

	"github.com/shopspring/decimal"

	cancelRetreatReservation "github.com/m04kA/blitz-booking/internal/usecase/cancel_retreat_reservation"
	reserveRetreat "github.com/m04kA/blitz-booking/internal/usecase/reserve_retreat"
)

// ReserveRequest бронирование места сотрудником для пользователя
type ReserveRequest struct {
	UserID int64 `json:"userId"`
}

// ReservationResponse HTTP ответ с бронированием ретрита
type ReservationResponse struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"userId"`
	RetreatID   int64     `json:"retreatId"`
	OrderLineID *int64    `json:"orderLineId,omitempty"`
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime"`
	CreatedAt   time.Time `json:"createdAt"`
}

func FromReserveResponse(resp *reserveRetreat.Response) *ReservationResponse {
	return &ReservationResponse{
		ID:          resp.ID,
		UserID:      resp.UserID,
		RetreatID:   resp.RetreatID,
		OrderLineID: resp.OrderLineID,
		StartTime:   resp.StartTime,
		EndTime:     resp.EndTime,
		CreatedAt:   resp.CreatedAt,
	}
}

// CancelReservationResponse HTTP ответ после отмены
type CancelReservationResponse struct {
	ID              int64           `json:"id"`
	RetreatID       int64           `json:"retreatId"`
	Action          string          `json:"cancelationAction"`
	RefundedAmount  decimal.Decimal `json:"refundedAmount"`
	RefundID        string          `json:"refundId,omitempty"`
	CancelledAt     time.Time       `json:"cancelationDate"`
	NotifiedUserIDs []int64         `json:"notifiedUserIds"`
}

func FromCancelResponse(resp *cancelRetreatReservation.Response) *CancelReservationResponse {
	notified := resp.NotifiedUserIDs
	if notified == nil {
		notified = []int64{}
	}
	return &CancelReservationResponse{
		ID:              resp.ID,
		RetreatID:       resp.RetreatID,
		Action:          resp.Action,
		RefundedAmount:  resp.RefundedAmount,
		RefundID:        resp.RefundID,
		CancelledAt:     resp.CancelledAt,
		NotifiedUserIDs: notified,
	}
}
