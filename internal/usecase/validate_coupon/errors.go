package validate_coupon

import "errors"

var (
	// ErrCouponNotFound возвращается, когда купона с таким кодом нет
	ErrCouponNotFound = errors.New("validate_coupon: coupon not found")

	// ErrCouponNotActive возвращается, когда купон ещё не начал действовать или истёк
	ErrCouponNotActive = errors.New("validate_coupon: coupon is not active")

	// ErrCouponExhausted возвращается, когда исчерпан общий лимит использований
	ErrCouponExhausted = errors.New("validate_coupon: coupon usage limit reached")

	// ErrCouponUserLimit возвращается, когда пользователь исчерпал свой лимит
	ErrCouponUserLimit = errors.New("validate_coupon: coupon usage limit per user reached")

	// ErrCouponNotApplicable возвращается, когда купон не применим ни к одной строке
	ErrCouponNotApplicable = errors.New("validate_coupon: coupon does not apply to any order line")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("validate_coupon: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("validate_coupon: internal error")
)
