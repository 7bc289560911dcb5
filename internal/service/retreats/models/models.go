package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/blitz-booking/internal/domain"
)

// Request модели

// RetreatDateRequest одна дата ретрита
type RetreatDateRequest struct {
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
}

// CreateRetreatRequest запрос на создание ретрита
type CreateRetreatRequest struct {
	Name           string               `json:"name"`
	Details        string               `json:"details"`
	Place          string               `json:"place"`
	Seats          int                  `json:"seats"`
	Price          decimal.Decimal      `json:"price"`
	MinDayRefund   int                  `json:"minDayRefund"`
	RefundRate     *int                 `json:"refundRate,omitempty"` // % от цены, по умолчанию 100
	MinDayExchange int                  `json:"minDayExchange"`
	Accessibility  bool                 `json:"accessibility"`
	Dates          []RetreatDateRequest `json:"dates"`
}

// ListRetreatsRequest фильтр списка ретритов
type ListRetreatsRequest struct {
	ActiveOnly bool
	From       time.Time
}

// Response модели

// RetreatDateResponse дата ретрита
type RetreatDateResponse struct {
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
}

// RetreatResponse ответ с данными ретрита
type RetreatResponse struct {
	ID             int64                 `json:"id"`
	Name           string                `json:"name"`
	Details        string                `json:"details"`
	Place          string                `json:"place"`
	Seats          int                   `json:"seats"`
	ReservedSeats  int                   `json:"reservedSeats"`
	SeatsRemaining int                   `json:"seatsRemaining"`
	Price          decimal.Decimal       `json:"price"`
	StartTime      time.Time             `json:"startTime"`
	EndTime        time.Time             `json:"endTime"`
	MinDayRefund   int                   `json:"minDayRefund"`
	RefundRate     int                   `json:"refundRate"`
	MinDayExchange int                   `json:"minDayExchange"`
	IsActive       bool                  `json:"isActive"`
	Accessibility  bool                  `json:"accessibility"`
	Dates          []RetreatDateResponse `json:"dates"`
}

// RetreatReservationResponse ответ с бронированием ретрита
type RetreatReservationResponse struct {
	ID                int64      `json:"id"`
	UserID            int64      `json:"userId"`
	RetreatID         int64      `json:"retreatId"`
	OrderLineID       *int64     `json:"orderLineId,omitempty"`
	IsActive          bool       `json:"isActive"`
	IsPresent         bool       `json:"isPresent"`
	CancelationReason *string    `json:"cancelationReason,omitempty"`
	CancelationAction *string    `json:"cancelationAction,omitempty"`
	CancelationDate   *time.Time `json:"cancelationDate,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
}

// WaitQueueResponse позиция в очереди ожидания
type WaitQueueResponse struct {
	RetreatID int64     `json:"retreatId"`
	UserID    int64     `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

// NotifyWaitQueueResponse результат оповещения очереди
type NotifyWaitQueueResponse struct {
	NotifiedUserIDs []int64 `json:"notifiedUserIds"`
}

// RemindResponse результат рассылки напоминаний
type RemindResponse struct {
	Notified int `json:"notified"`
}

// Методы конвертации

// FromDomainRetreat конвертирует domain модель в DTO
func FromDomainRetreat(rt *domain.Retreat) *RetreatResponse {
	resp := &RetreatResponse{
		ID:             rt.ID,
		Name:           rt.Name,
		Details:        rt.Details,
		Place:          rt.Place,
		Seats:          rt.Seats,
		ReservedSeats:  rt.ReservedSeats,
		SeatsRemaining: rt.SeatsRemaining(),
		Price:          rt.Price,
		StartTime:      rt.StartTime,
		EndTime:        rt.EndTime,
		MinDayRefund:   rt.MinDayRefund,
		RefundRate:     rt.RefundRate,
		MinDayExchange: rt.MinDayExchange,
		IsActive:       rt.IsActive,
		Accessibility:  rt.Accessibility,
		Dates:          make([]RetreatDateResponse, len(rt.Dates)),
	}
	for i, d := range rt.Dates {
		resp.Dates[i] = RetreatDateResponse{StartTime: d.StartTime, EndTime: d.EndTime}
	}
	return resp
}

// FromDomainReservation конвертирует бронирование ретрита в DTO
func FromDomainReservation(r *domain.RetreatReservation) *RetreatReservationResponse {
	resp := &RetreatReservationResponse{
		ID:              r.ID,
		UserID:          r.UserID,
		RetreatID:       r.RetreatID,
		OrderLineID:     r.OrderLineID,
		IsActive:        r.IsActive,
		IsPresent:       r.IsPresent,
		CancelationDate: r.CancelationDate,
		CreatedAt:       r.CreatedAt,
	}
	if r.CancelationReason != nil {
		v := string(*r.CancelationReason)
		resp.CancelationReason = &v
	}
	if r.CancelationAction != nil {
		v := string(*r.CancelationAction)
		resp.CancelationAction = &v
	}
	return resp
}
