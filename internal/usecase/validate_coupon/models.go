package validate_coupon

import "github.com/shopspring/decimal"

// Line строка будущего заказа
type Line struct {
	ProductType string          // membership | package | retreat
	ObjectID    int64           // ID товара
	Cost        decimal.Decimal // Стоимость строки
}

// Request модель запроса на проверку купона
type Request struct {
	UserID int64  // ID покупателя
	Code   string // Код купона
	Lines  []Line // Строки заказа
}

// Response модель ответа: размер скидки и строка, к которой она применяется
type Response struct {
	CouponID  int64           // ID купона
	Code      string          // Код купона
	Value     decimal.Decimal // Размер скидки
	LineIndex int             // Индекс строки в запросе
	OrderLine Line            // Строка, к которой применена скидка
}
