package generate_timeslots

import (
	"time"

	"github.com/m04kA/blitz-booking/pkg/types"
)

// Request модель запроса на генерацию таймслотов
type Request struct {
	PeriodID    int64            // ID периода
	OpenTime    types.TimeString // Начало рабочего дня (HH:MM) в часовом поясе пространства
	CloseTime   types.TimeString // Конец рабочего дня (HH:MM)
	SlotMinutes int              // Длительность одного таймслота в минутах
	Weekdays    []time.Weekday   // Дни недели; пусто = все дни
}

// Timeslot созданный таймслот
type Timeslot struct {
	ID        int64     // ID таймслота
	StartTime time.Time // Начало
	EndTime   time.Time // Конец
	Price     int       // Цена в билетах
}

// Response модель ответа
type Response struct {
	PeriodID  int64      // ID периода
	Created   []Timeslot // Созданные таймслоты
	Skipped   int        // Пропущено из-за пересечений с существующими
	Generated int        // Всего кандидатов
}
