package create_order

import "errors"

var (
	// ErrUserNotFound возвращается, когда покупатель не найден
	ErrUserNotFound = errors.New("create_order: user not found")

	// ErrProductNotFound возвращается, когда товар не найден или снят с продажи
	ErrProductNotFound = errors.New("create_order: product not found")

	// ErrProductNotAllowed возвращается, когда пакет доступен только участникам других абонементов
	ErrProductNotAllowed = errors.New("create_order: product is reserved for other memberships")

	// ErrInvalidCoupon возвращается, когда купон не прошёл проверку
	ErrInvalidCoupon = errors.New("create_order: invalid coupon")

	// ErrPaymentRequired возвращается, когда для платного заказа не передан токен карты
	ErrPaymentRequired = errors.New("create_order: payment token required")

	// ErrPaymentDeclined возвращается, когда платёж отклонён
	ErrPaymentDeclined = errors.New("create_order: payment declined")

	// ErrPaymentGateway возвращается при недоступности платёжного шлюза
	ErrPaymentGateway = errors.New("create_order: payment gateway error")

	// ErrPriceChanged возвращается, когда цена изменилась между оплатой и сохранением заказа
	ErrPriceChanged = errors.New("create_order: order total changed during checkout")

	// ErrRetreatUnavailable возвращается, когда ретрит из заказа нельзя забронировать
	ErrRetreatUnavailable = errors.New("create_order: retreat cannot be reserved")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_order: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_order: internal error")
)
