package reserve_retreat

import "time"

// Request модель запроса на бронирование ретрита
type Request struct {
	UserID      int64  // ID пользователя
	RetreatID   int64  // ID ретрита
	OrderLineID *int64 // Строка заказа, которой оплачено место (nil при бронировании сотрудником)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID          int64     // ID бронирования
	UserID      int64     // ID пользователя
	RetreatID   int64     // ID ретрита
	OrderLineID *int64    // Строка заказа
	StartTime   time.Time // Начало ретрита
	EndTime     time.Time // Конец ретрита
	CreatedAt   time.Time // Время создания
}
