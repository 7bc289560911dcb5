package models

import (
	"time"

	"github.com/m04kA/blitz-booking/internal/domain"
)

// CreateUserRequest запрос на регистрацию пользователя
type CreateUserRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	IsStaff   bool   `json:"isStaff"`
}

// AdjustTicketsRequest ручное начисление/списание билетов сотрудником
type AdjustTicketsRequest struct {
	Delta int `json:"delta"`
}

// UserResponse ответ с данными пользователя
type UserResponse struct {
	ID            int64     `json:"id"`
	Email         string    `json:"email"`
	FirstName     string    `json:"firstName"`
	LastName      string    `json:"lastName"`
	Tickets       int       `json:"tickets"`
	MembershipID  *int64    `json:"membershipId,omitempty"`
	MembershipEnd *string   `json:"membershipEnd,omitempty"` // "2026-01-31"
	IsStaff       bool      `json:"isStaff"`
	CreatedAt     time.Time `json:"createdAt"`
}

// FromDomainUser конвертирует domain модель в DTO
func FromDomainUser(u *domain.User) *UserResponse {
	if u == nil {
		return nil
	}

	resp := &UserResponse{
		ID:           u.ID,
		Email:        u.Email,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Tickets:      u.Tickets,
		MembershipID: u.MembershipID,
		IsStaff:      u.IsStaff,
		CreatedAt:    u.CreatedAt,
	}
	if u.MembershipEnd != nil {
		end := u.MembershipEnd.Format(domain.DateFormat)
		resp.MembershipEnd = &end
	}
	return resp
}
