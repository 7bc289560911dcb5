package cancel_timeslot_reservation

import "time"

// Request модель запроса на отмену бронирования
type Request struct {
	UserID        int64 // ID пользователя, отменяющего бронирование
	ReservationID int64 // ID бронирования
}

// Response модель ответа после отмены
type Response struct {
	ID              int64     // ID бронирования
	TimeslotID      int64     // ID таймслота
	TicketsRefunded int       // Возвращено билетов (0, если отмена позже срока возврата)
	CancelledAt     time.Time // Время отмены
}
