package paysafe

import "errors"

var (
	// ErrPaymentDeclined платёж отклонён банком или шлюзом
	ErrPaymentDeclined = errors.New("paysafe client: payment declined")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("paysafe client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от шлюза
	ErrInvalidResponse = errors.New("paysafe client: invalid response")
)
