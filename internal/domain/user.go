package domain

import "time"

// User пользователь платформы
type User struct {
	ID        int64
	Email     string
	FirstName string
	LastName  string
	// Tickets баланс билетов для бронирования таймслотов
	Tickets       int
	MembershipID  *int64
	MembershipEnd *time.Time
	IsStaff       bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// FullName имя для отображения
func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// HasActiveMembership true, если абонемент пользователя действует на момент now
func (u *User) HasActiveMembership(now time.Time) bool {
	return u.MembershipID != nil && u.MembershipEnd != nil && !u.MembershipEnd.Before(startOfDay(now))
}

// CanAfford true, если билетов хватает
func (u *User) CanAfford(tickets int) bool {
	return u.Tickets >= tickets
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
