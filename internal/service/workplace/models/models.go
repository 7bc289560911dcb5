package models

import (
	"time"

	"github.com/m04kA/blitz-booking/internal/domain"
)

// Request модели

// CreateWorkplaceRequest запрос на создание пространства
type CreateWorkplaceRequest struct {
	Name     string `json:"name"`
	Details  string `json:"details"`
	Seats    int    `json:"seats"`
	Address  string `json:"address"`
	City     string `json:"city"`
	Country  string `json:"country"`
	Timezone string `json:"timezone"`
}

// CreatePeriodRequest запрос на создание периода
type CreatePeriodRequest struct {
	Name      string `json:"name"`
	StartDate string `json:"startDate"` // "2026-01-01"
	EndDate   string `json:"endDate"`   // "2026-01-31", включительно
	Price     int    `json:"price"`     // билетов за таймслот
	IsActive  *bool  `json:"isActive,omitempty"`
}

// CreateTimeslotRequest запрос на создание таймслота
type CreateTimeslotRequest struct {
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
}

// ListTimeslotsRequest запрос списка таймслотов
type ListTimeslotsRequest struct {
	WorkplaceID int64
	From        time.Time
	To          time.Time
}

// DeleteTimeslotRequest запрос на удаление таймслота
type DeleteTimeslotRequest struct {
	Force bool `json:"force"`
}

// PresenceRequest отметка присутствия
type PresenceRequest struct {
	IsPresent bool `json:"isPresent"`
}

// Response модели

// WorkplaceResponse ответ с данными пространства
type WorkplaceResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Details  string `json:"details"`
	Seats    int    `json:"seats"`
	Address  string `json:"address"`
	City     string `json:"city"`
	Country  string `json:"country"`
	Timezone string `json:"timezone"`
}

// PeriodResponse ответ с данными периода
type PeriodResponse struct {
	ID          int64  `json:"id"`
	WorkplaceID int64  `json:"workplaceId"`
	Name        string `json:"name"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Price       int    `json:"price"`
	IsActive    bool   `json:"isActive"`
}

// TimeslotResponse ответ с данными таймслота
type TimeslotResponse struct {
	ID              int64     `json:"id"`
	PeriodID        int64     `json:"periodId"`
	WorkplaceID     int64     `json:"workplaceId"`
	StartTime       time.Time `json:"startTime"`
	EndTime         time.Time `json:"endTime"`
	BillingPrice    int       `json:"billingPrice"`
	Reserved        *int      `json:"reserved,omitempty"`
	PlacesRemaining *int      `json:"placesRemaining,omitempty"`
}

// TimeslotListResponse ответ со списком таймслотов
type TimeslotListResponse struct {
	Timeslots []TimeslotResponse `json:"timeslots"`
}

// DeleteTimeslotResponse результат удаления таймслота
type DeleteTimeslotResponse struct {
	CancelledReservations int `json:"cancelledReservations"`
	TicketsRefunded       int `json:"ticketsRefunded"`
}

// Методы конвертации

func FromDomainWorkplace(w *domain.Workplace) *WorkplaceResponse {
	return &WorkplaceResponse{
		ID:       w.ID,
		Name:     w.Name,
		Details:  w.Details,
		Seats:    w.Seats,
		Address:  w.Address,
		City:     w.City,
		Country:  w.Country,
		Timezone: w.Timezone,
	}
}

func FromDomainPeriod(p *domain.Period) *PeriodResponse {
	return &PeriodResponse{
		ID:          p.ID,
		WorkplaceID: p.WorkplaceID,
		Name:        p.Name,
		StartDate:   p.StartDate.Format(domain.DateFormat),
		EndDate:     p.EndDate.Format(domain.DateFormat),
		Price:       p.Price,
		IsActive:    p.IsActive,
	}
}

func FromDomainTimeslot(ts *domain.TimeSlot) *TimeslotResponse {
	return &TimeslotResponse{
		ID:           ts.ID,
		PeriodID:     ts.PeriodID,
		WorkplaceID:  ts.WorkplaceID,
		StartTime:    ts.StartTime,
		EndTime:      ts.EndTime,
		BillingPrice: ts.Price,
	}
}

// FromDomainAvailabilityList конвертирует таймслоты с заполненностью
func FromDomainAvailabilityList(list []*domain.TimeSlotAvailability) *TimeslotListResponse {
	resp := &TimeslotListResponse{Timeslots: make([]TimeslotResponse, len(list))}
	for i, a := range list {
		item := FromDomainTimeslot(&a.TimeSlot)
		reserved, remaining := a.Reserved, a.PlacesRemaining
		item.Reserved = &reserved
		item.PlacesRemaining = &remaining
		resp.Timeslots[i] = *item
	}
	return resp
}
