package cancel_retreat_reservation

import (
	"time"

	"github.com/shopspring/decimal"
)

// Request модель запроса на отмену бронирования ретрита
type Request struct {
	UserID        int64 // ID пользователя, отменяющего бронирование
	ReservationID int64 // ID бронирования ретрита
}

// Response модель ответа после отмены
type Response struct {
	ID              int64           // ID бронирования
	RetreatID       int64           // ID ретрита
	Action          string          // R - возврат, N - без возврата
	RefundedAmount  decimal.Decimal // Возвращённая сумма
	RefundID        string          // ID возврата в платёжном шлюзе
	CancelledAt     time.Time       // Время отмены
	NotifiedUserIDs []int64         // Кому из очереди предложено освободившееся место
}
