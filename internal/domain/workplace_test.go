package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(day, hour, min int) time.Time {
	return time.Date(2026, 6, day, hour, min, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	assert.True(t, Overlaps(at(1, 10, 0), at(1, 11, 0), at(1, 10, 30), at(1, 11, 30)))
	assert.True(t, Overlaps(at(1, 10, 0), at(1, 12, 0), at(1, 10, 30), at(1, 11, 0)), "contained")
	assert.False(t, Overlaps(at(1, 10, 0), at(1, 11, 0), at(1, 11, 0), at(1, 12, 0)), "touching")
	assert.False(t, Overlaps(at(1, 10, 0), at(1, 11, 0), at(1, 12, 0), at(1, 13, 0)))
}

func TestPeriod_Contains(t *testing.T) {
	p := Period{StartDate: at(1, 0, 0), EndDate: at(10, 0, 0)}

	assert.True(t, p.Contains(at(1, 8, 0), at(1, 9, 0), time.UTC))
	assert.True(t, p.Contains(at(10, 22, 0), at(11, 0, 0), time.UTC), "end date is inclusive")
	assert.False(t, p.Contains(at(10, 23, 0), at(11, 1, 0), time.UTC))
	assert.True(t, p.Contains(at(1, 8, 0), at(1, 9, 0), nil), "nil location is UTC")
}

func TestPeriod_ContainsInWorkplaceTimezone(t *testing.T) {
	loc, err := time.LoadLocation("America/Montreal")
	require.NoError(t, err)

	// даты периода хранятся как полночь UTC
	p := Period{
		StartDate: time.Date(2026, 1, 30, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC),
	}
	local := func(day, hour int) time.Time {
		return time.Date(2026, 1, day, hour, 0, 0, 0, loc)
	}

	assert.True(t, p.Contains(local(30, 0), local(30, 1), loc), "first local hour of the first day")
	assert.True(t, p.Contains(local(30, 21), local(30, 22), loc), "evening of the first day")
	assert.True(t, p.Contains(local(31, 21), local(31, 22), loc), "evening of the last day")
	assert.True(t, p.Contains(local(31, 23), local(32, 0), loc), "last local hour of the last day")
	assert.False(t, p.Contains(local(29, 23), local(30, 0), loc))
	assert.False(t, p.Contains(local(32, 0), local(32, 1), loc))

	// в UTC вечер 31 января по Монреалю уже выходит за период
	assert.False(t, p.Contains(local(31, 21), local(31, 22), time.UTC))
}

func TestPeriod_OverlapsPeriod(t *testing.T) {
	p := Period{StartDate: at(5, 0, 0), EndDate: at(10, 0, 0)}

	assert.True(t, p.OverlapsPeriod(at(10, 0, 0), at(12, 0, 0)), "shared boundary day")
	assert.True(t, p.OverlapsPeriod(at(1, 0, 0), at(20, 0, 0)))
	assert.False(t, p.OverlapsPeriod(at(11, 0, 0), at(12, 0, 0)))
	assert.False(t, p.OverlapsPeriod(at(1, 0, 0), at(4, 0, 0)))
}
