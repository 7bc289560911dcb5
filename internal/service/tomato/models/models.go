package models

import (
	"time"

	"github.com/m04kA/blitz-booking/internal/domain"
)

// Request модели

// CreditTomatoRequest ручное начисление томатов сотрудником
type CreditTomatoRequest struct {
	UserID int64  `json:"userId"`
	Number int    `json:"number"`
	Source string `json:"source,omitempty"`
}

// PostMessageRequest новое сообщение в чате
type PostMessageRequest struct {
	Content string `json:"content"`
}

// ReportMessageRequest жалоба на сообщение
type ReportMessageRequest struct {
	Reason string `json:"reason"`
}

// RecordAttendanceRequest отметка присутствия
type RecordAttendanceRequest struct {
	Key string `json:"key"`
}

// Response модели

// TomatoResponse запись журнала томатов
type TomatoResponse struct {
	ID              int64     `json:"id"`
	Number          int       `json:"number"`
	Source          string    `json:"source"`
	AcquisitionDate time.Time `json:"acquisitionDate"`
}

// UserTomatoesResponse итог и история томатов пользователя
type UserTomatoesResponse struct {
	UserID  int64            `json:"userId"`
	Total   int              `json:"total"`
	History []TomatoResponse `json:"history"`
}

// MessageResponse сообщение чата
type MessageResponse struct {
	ID       int64     `json:"id"`
	UserID   int64     `json:"userId"`
	Author   string    `json:"author"`
	Content  string    `json:"content"`
	PostedAt time.Time `json:"postedAt"`
}

// ReportResponse принятая жалоба
type ReportResponse struct {
	ID        int64     `json:"id"`
	MessageID int64     `json:"messageId"`
	CreatedAt time.Time `json:"createdAt"`
}

// AttendanceResponse результат отметки присутствия
type AttendanceResponse struct {
	Key     string `json:"key"`
	Created bool   `json:"created"`
	Count   int    `json:"count"`
}

// AttendanceCountResponse число отметок по ключу сессии
type AttendanceCountResponse struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// Методы конвертации

// FromDomainTomato конвертирует domain модель в DTO
func FromDomainTomato(t *domain.Tomato) TomatoResponse {
	return TomatoResponse{
		ID:              t.ID,
		Number:          t.Number,
		Source:          string(t.Source),
		AcquisitionDate: t.AcquisitionDate,
	}
}

// FromDomainMessage конвертирует domain модель в DTO
func FromDomainMessage(m *domain.Message) *MessageResponse {
	return &MessageResponse{
		ID:       m.ID,
		UserID:   m.UserID,
		Author:   m.Author,
		Content:  m.Content,
		PostedAt: m.PostedAt,
	}
}
