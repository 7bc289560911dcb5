package workplaces

import (
	"fmt"
	"strings"
	"time"

	cancelTimeslotReservation "github.com/m04kA/blitz-booking/internal/usecase/cancel_timeslot_reservation"
	generateTimeslots "github.com/m04kA/blitz-booking/internal/usecase/generate_timeslots"
	reserveTimeslot "github.com/m04kA/blitz-booking/internal/usecase/reserve_timeslot"
	"github.com/m04kA/blitz-booking/pkg/types"
)

var weekdaysByName = map[string]time.Weekday{
	"sun": time.Sunday,
	"mon": time.Monday,
	"tue": time.Tuesday,
	"wed": time.Wednesday,
	"thu": time.Thursday,
	"fri": time.Friday,
	"sat": time.Saturday,
}

// GenerateTimeslotsRequest HTTP запрос на генерацию таймслотов
type GenerateTimeslotsRequest struct {
	OpenTime    string   `json:"openTime"`           // "09:00"
	CloseTime   string   `json:"closeTime"`          // "18:00", допускается "24:00"
	SlotMinutes int      `json:"slotMinutes"`        // длительность таймслота
	Weekdays    []string `json:"weekdays,omitempty"` // "mon".."sun", пусто = все дни
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *GenerateTimeslotsRequest) ToUseCaseRequest(periodID int64) (*generateTimeslots.Request, error) {
	weekdays := make([]time.Weekday, 0, len(r.Weekdays))
	for _, name := range r.Weekdays {
		wd, ok := weekdaysByName[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return nil, fmt.Errorf("unknown weekday %q", name)
		}
		weekdays = append(weekdays, wd)
	}

	return &generateTimeslots.Request{
		PeriodID:    periodID,
		OpenTime:    types.TimeString(r.OpenTime),
		CloseTime:   types.TimeString(r.CloseTime),
		SlotMinutes: r.SlotMinutes,
		Weekdays:    weekdays,
	}, nil
}

// GeneratedTimeslot созданный таймслот
type GeneratedTimeslot struct {
	ID           int64     `json:"id"`
	StartTime    time.Time `json:"startTime"`
	EndTime      time.Time `json:"endTime"`
	BillingPrice int       `json:"billingPrice"`
}

// GenerateTimeslotsResponse HTTP ответ генерации
type GenerateTimeslotsResponse struct {
	PeriodID  int64               `json:"periodId"`
	Created   []GeneratedTimeslot `json:"created"`
	Skipped   int                 `json:"skipped"`
	Generated int                 `json:"generated"`
}

func FromGenerateResponse(resp *generateTimeslots.Response) *GenerateTimeslotsResponse {
	out := &GenerateTimeslotsResponse{
		PeriodID:  resp.PeriodID,
		Created:   make([]GeneratedTimeslot, len(resp.Created)),
		Skipped:   resp.Skipped,
		Generated: resp.Generated,
	}
	for i, ts := range resp.Created {
		out.Created[i] = GeneratedTimeslot{
			ID:           ts.ID,
			StartTime:    ts.StartTime,
			EndTime:      ts.EndTime,
			BillingPrice: ts.Price,
		}
	}
	return out
}

// ReservationResponse HTTP ответ с бронированием таймслота
type ReservationResponse struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"userId"`
	TimeslotID   int64     `json:"timeslotId"`
	StartTime    time.Time `json:"startTime"`
	EndTime      time.Time `json:"endTime"`
	TicketsSpent int       `json:"ticketsSpent"`
	TicketsLeft  int       `json:"ticketsLeft"`
	CreatedAt    time.Time `json:"createdAt"`
}

func FromReserveResponse(resp *reserveTimeslot.Response) *ReservationResponse {
	return &ReservationResponse{
		ID:           resp.ID,
		UserID:       resp.UserID,
		TimeslotID:   resp.TimeslotID,
		StartTime:    resp.StartTime,
		EndTime:      resp.EndTime,
		TicketsSpent: resp.TicketsSpent,
		TicketsLeft:  resp.TicketsLeft,
		CreatedAt:    resp.CreatedAt,
	}
}

// CancelReservationResponse HTTP ответ после отмены
type CancelReservationResponse struct {
	ID              int64     `json:"id"`
	TimeslotID      int64     `json:"timeslotId"`
	TicketsRefunded int       `json:"ticketsRefunded"`
	CancelledAt     time.Time `json:"cancelledAt"`
}

func FromCancelResponse(resp *cancelTimeslotReservation.Response) *CancelReservationResponse {
	return &CancelReservationResponse{
		ID:              resp.ID,
		TimeslotID:      resp.TimeslotID,
		TicketsRefunded: resp.TicketsRefunded,
		CancelledAt:     resp.CancelledAt,
	}
}
