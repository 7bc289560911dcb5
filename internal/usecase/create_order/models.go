package create_order

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineRequest строка заказа
type LineRequest struct {
	ProductType string // membership | package | retreat
	ObjectID    int64  // ID товара
	Quantity    int    // Количество (только для пакетов может быть больше 1)
}

// Request модель запроса на оформление заказа
type Request struct {
	UserID       int64         // ID покупателя
	Lines        []LineRequest // Строки заказа
	CouponCode   string        // Код купона (опционально)
	PaymentToken string        // Одноразовый токен карты Paysafe (для платных заказов)
}

// LineResponse сохранённая строка заказа
type LineResponse struct {
	ID              int64           // ID строки
	ProductType     string          // Тип товара
	ObjectID        int64           // ID товара
	Quantity        int             // Количество
	Cost            decimal.Decimal // Стоимость строки
	CouponRealValue decimal.Decimal // Скидка, применённая к строке
	ReservationID   *int64          // Бронирование ретрита, созданное по строке
}

// Response модель ответа с созданным заказом
type Response struct {
	ID              int64           // ID заказа
	UserID          int64           // ID покупателя
	Reference       string          // Номер заказа
	TransactionID   *string         // ID платежа в Paysafe (nil для бесплатного заказа)
	TransactionDate time.Time       // Дата оплаты
	Total           decimal.Decimal // К оплате после скидки
	Discount        decimal.Decimal // Скидка
	CouponID        *int64          // Применённый купон
	Lines           []LineResponse  // Строки
	TicketsCredited int             // Начислено билетов по пакетам
	MembershipEnd   *time.Time      // Новая дата окончания абонемента
}
