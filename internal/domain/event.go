package domain

import "time"

// EventType тип уведомления о событии жизненного цикла
type EventType string

const (
	EventReservationCreated   EventType = "reservation.created"
	EventReservationCancelled EventType = "reservation.cancelled"
	EventTimeslotDeleted      EventType = "timeslot.deleted"
	EventWaitQueueNotified    EventType = "waitqueue.notified"
	EventOrderCreated         EventType = "order.created"
	EventRetreatReminder      EventType = "retreat.reminder"
	EventRetreatPostEvent     EventType = "retreat.post_event"
)

// Event уведомление для рассылки писем
type Event struct {
	Type       EventType              `json:"type"`
	UserID     int64                  `json:"userId"`
	Payload    map[string]interface{} `json:"payload,omitempty"`
	OccurredAt time.Time              `json:"occurredAt"`
}
