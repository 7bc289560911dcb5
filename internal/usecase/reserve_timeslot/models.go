package reserve_timeslot

import "time"

// Request модель запроса на бронирование таймслота
type Request struct {
	UserID     int64 // ID пользователя
	TimeslotID int64 // ID таймслота
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID           int64     // ID бронирования
	UserID       int64     // ID пользователя
	TimeslotID   int64     // ID таймслота
	StartTime    time.Time // Начало таймслота
	EndTime      time.Time // Конец таймслота
	TicketsSpent int       // Списано билетов
	TicketsLeft  int       // Баланс билетов после списания
	CreatedAt    time.Time // Время создания
}
