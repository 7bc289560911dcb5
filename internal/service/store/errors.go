package store

import "errors"

var (
	// ErrMembershipNotFound возвращается, когда абонемент не найден
	ErrMembershipNotFound = errors.New("membership not found")

	// ErrCouponCodeTaken возвращается, когда код купона уже занят
	ErrCouponCodeTaken = errors.New("coupon code already exists")

	// ErrOrderLineNotFound возвращается, когда строка заказа не найдена
	ErrOrderLineNotFound = errors.New("order line not found")

	// ErrOrderNotPaid возвращается при возврате по заказу без платежа
	ErrOrderNotPaid = errors.New("order has no payment to refund")

	// ErrRefundExceedsPaid возвращается, когда сумма возврата больше оплаченного остатка
	ErrRefundExceedsPaid = errors.New("refund amount exceeds the paid amount left on the order line")

	// ErrRefundRejected возвращается, когда платёжный шлюз отклонил возврат
	ErrRefundRejected = errors.New("refund rejected by payment gateway")

	// ErrPaymentGateway возвращается при недоступности платёжного шлюза
	ErrPaymentGateway = errors.New("payment gateway error")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("store service: internal error")
)
