package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRetreat_ApplyDates(t *testing.T) {
	r := Retreat{}
	r.ApplyDates([]RetreatDate{
		{StartTime: at(12, 9, 0), EndTime: at(12, 17, 0)},
		{StartTime: at(10, 9, 0), EndTime: at(10, 17, 0)},
		{StartTime: at(11, 9, 0), EndTime: at(11, 17, 0)},
	})

	assert.Equal(t, at(10, 9, 0), r.StartTime)
	assert.Equal(t, at(12, 17, 0), r.EndTime)
	assert.Len(t, r.Dates, 3)
}

func TestRetreat_Refund(t *testing.T) {
	r := Retreat{StartTime: at(20, 9, 0), MinDayRefund: 7, RefundRate: 50}

	assert.Equal(t, at(13, 9, 0), r.RefundDeadline())
	assert.True(t, r.IsRefundable(at(13, 8, 59)))
	assert.False(t, r.IsRefundable(at(13, 9, 0)))
	assert.True(t, r.RefundAmount(decimal.RequireFromString("199.99")).Equal(decimal.RequireFromString("100")))
}

func TestRetreat_Seats(t *testing.T) {
	r := Retreat{Seats: 3, ReservedSeats: 2}
	assert.Equal(t, 1, r.SeatsRemaining())
	assert.False(t, r.IsFull())

	r.ReservedSeats = 5
	assert.Equal(t, 0, r.SeatsRemaining())
	assert.True(t, r.IsFull())
}

func TestUser_HasActiveMembership(t *testing.T) {
	end := time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC)
	id := int64(1)
	u := User{MembershipID: &id, MembershipEnd: &end}

	assert.True(t, u.HasActiveMembership(at(10, 18, 0)), "valid through its end day")
	assert.False(t, u.HasActiveMembership(at(11, 0, 1)))
	assert.False(t, (&User{}).HasActiveMembership(at(1, 0, 0)))
}
