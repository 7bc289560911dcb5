package store

import (
	"errors"
	"net/http"

	"github.com/m04kA/blitz-booking/internal/api/handlers"
	"github.com/m04kA/blitz-booking/internal/api/middleware"
	storeService "github.com/m04kA/blitz-booking/internal/service/store"
	"github.com/m04kA/blitz-booking/internal/service/store/models"
	createOrder "github.com/m04kA/blitz-booking/internal/usecase/create_order"
	validateCoupon "github.com/m04kA/blitz-booking/internal/usecase/validate_coupon"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidID           = "некорректный ID в пути запроса"
	msgInvalidInput        = "некорректные данные запроса"
	msgUnauthorized        = "пользователь не определён"
	msgMembershipNotFound  = "абонемент не найден"
	msgCouponCodeTaken     = "купон с таким кодом уже существует"
	msgOrderLineNotFound   = "строка заказа не найдена"
	msgOrderNotPaid        = "заказ не оплачивался, возвращать нечего"
	msgRefundExceedsPaid   = "сумма возврата больше оплаченной"
	msgRefundRejected      = "платёжный шлюз отклонил возврат"
	msgPaymentGateway      = "платёжный шлюз недоступен, попробуйте позже"
	msgCouponNotFound      = "купон не найден"
	msgCouponNotActive     = "купон не действует в данный момент"
	msgCouponExhausted     = "купон больше не действует: исчерпан лимит использований"
	msgCouponUserLimit     = "вы уже использовали этот купон максимальное число раз"
	msgCouponNotApplicable = "купон не применим к товарам в заказе"
	msgUserNotFound        = "пользователь не найден"
	msgProductNotFound     = "товар не найден или недоступен"
	msgProductNotAllowed   = "товар доступен только владельцам определённых абонементов"
	msgPaymentRequired     = "для платного заказа нужен токен карты"
	msgPaymentDeclined     = "платёж отклонён"
	msgPriceChanged        = "стоимость заказа изменилась, повторите оформление"
	msgRetreatUnavailable  = "ретрит недоступен для бронирования"
)

type Handler struct {
	service StoreService
	coupons ValidateCouponUseCase
	orders  CreateOrderUseCase
	logger  Logger
}

func NewHandler(service StoreService, coupons ValidateCouponUseCase, orders CreateOrderUseCase, logger Logger) *Handler {
	return &Handler{
		service: service,
		coupons: coupons,
		orders:  orders,
		logger:  logger,
	}
}

// CreateMembership POST /api/v1/memberships
func (h *Handler) CreateMembership(w http.ResponseWriter, r *http.Request) {
	var req models.CreateMembershipRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /memberships - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	membership, err := h.service.CreateMembership(r.Context(), &req)
	if err != nil {
		h.respondServiceError(w, "POST /memberships", err)
		return
	}
	handlers.RespondJSON(w, http.StatusCreated, membership)
}

// CreatePackage POST /api/v1/packages
func (h *Handler) CreatePackage(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePackageRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /packages - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	pkg, err := h.service.CreatePackage(r.Context(), &req)
	if err != nil {
		h.respondServiceError(w, "POST /packages", err)
		return
	}
	handlers.RespondJSON(w, http.StatusCreated, pkg)
}

// ListProducts GET /api/v1/products
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ListProducts(r.Context())
	if err != nil {
		h.respondServiceError(w, "GET /products", err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, products)
}

// CreateCoupon POST /api/v1/coupons
func (h *Handler) CreateCoupon(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req models.CreateCouponRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /coupons - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	coupon, err := h.service.CreateCoupon(r.Context(), ownerID, &req)
	if err != nil {
		h.respondServiceError(w, "POST /coupons", err)
		return
	}
	handlers.RespondJSON(w, http.StatusCreated, coupon)
}

// ValidateCoupon POST /api/v1/coupons/validate
// Предварительный расчёт скидки для корзины; окончательно скидка считается при оформлении заказа
func (h *Handler) ValidateCoupon(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req ValidateCouponRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /coupons/validate - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.coupons.Execute(r.Context(), req.ToUseCaseRequest(userID))
	if err != nil {
		switch {
		case errors.Is(err, validateCoupon.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)
		case errors.Is(err, validateCoupon.ErrCouponNotFound):
			handlers.RespondNotFound(w, msgCouponNotFound)
		case errors.Is(err, validateCoupon.ErrCouponNotActive):
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgCouponNotActive)
		case errors.Is(err, validateCoupon.ErrCouponExhausted):
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgCouponExhausted)
		case errors.Is(err, validateCoupon.ErrCouponUserLimit):
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgCouponUserLimit)
		case errors.Is(err, validateCoupon.ErrCouponNotApplicable):
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgCouponNotApplicable)
		default:
			h.logger.Error("POST /coupons/validate - Failed to validate coupon: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}
	handlers.RespondJSON(w, http.StatusOK, FromValidateResponse(result))
}

// CreateOrder POST /api/v1/orders
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req CreateOrderRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /orders - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.orders.Execute(r.Context(), req.ToUseCaseRequest(userID))
	if err != nil {
		switch {
		case errors.Is(err, createOrder.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)
		case errors.Is(err, createOrder.ErrUserNotFound):
			handlers.RespondNotFound(w, msgUserNotFound)
		case errors.Is(err, createOrder.ErrProductNotFound):
			handlers.RespondNotFound(w, msgProductNotFound)
		case errors.Is(err, createOrder.ErrProductNotAllowed):
			handlers.RespondForbidden(w, msgProductNotAllowed)
		case errors.Is(err, createOrder.ErrInvalidCoupon):
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgCouponNotApplicable)
		case errors.Is(err, createOrder.ErrPaymentRequired):
			handlers.RespondError(w, http.StatusPaymentRequired, msgPaymentRequired)
		case errors.Is(err, createOrder.ErrPaymentDeclined):
			handlers.RespondError(w, http.StatusPaymentRequired, msgPaymentDeclined)
		case errors.Is(err, createOrder.ErrPaymentGateway):
			h.logger.Error("POST /orders - Payment gateway error: user_id=%d, error=%v", userID, err)
			handlers.RespondError(w, http.StatusBadGateway, msgPaymentGateway)
		case errors.Is(err, createOrder.ErrPriceChanged):
			handlers.RespondConflict(w, msgPriceChanged)
		case errors.Is(err, createOrder.ErrRetreatUnavailable):
			handlers.RespondConflict(w, msgRetreatUnavailable)
		default:
			h.logger.Error("POST /orders - Failed to create order: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /orders - Order created: order_id=%d, user_id=%d, total=%s", result.ID, userID, result.Total)
	handlers.RespondJSON(w, http.StatusCreated, FromOrderResponse(result))
}

// RefundOrderLine POST /api/v1/order-lines/{id}/refunds
func (h *Handler) RefundOrderLine(w http.ResponseWriter, r *http.Request) {
	lineID, err := handlers.PathInt64(r, "id")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	var req models.RefundRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /order-lines/%d/refunds - Invalid request body: %v", lineID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	refund, err := h.service.RefundOrderLine(r.Context(), lineID, req.Amount)
	if err != nil {
		h.respondServiceError(w, "POST /order-lines/{id}/refunds", err)
		return
	}

	h.logger.Info("POST /order-lines/%d/refunds - Refunded %s, refund_id=%s", lineID, refund.Amount, refund.RefundID)
	handlers.RespondJSON(w, http.StatusCreated, refund)
}

// respondServiceError ошибки сервиса магазина в HTTP коды
func (h *Handler) respondServiceError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, storeService.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidInput)
	case errors.Is(err, storeService.ErrMembershipNotFound):
		handlers.RespondNotFound(w, msgMembershipNotFound)
	case errors.Is(err, storeService.ErrCouponCodeTaken):
		handlers.RespondConflict(w, msgCouponCodeTaken)
	case errors.Is(err, storeService.ErrOrderLineNotFound):
		handlers.RespondNotFound(w, msgOrderLineNotFound)
	case errors.Is(err, storeService.ErrOrderNotPaid):
		handlers.RespondConflict(w, msgOrderNotPaid)
	case errors.Is(err, storeService.ErrRefundExceedsPaid):
		handlers.RespondBadRequest(w, msgRefundExceedsPaid)
	case errors.Is(err, storeService.ErrRefundRejected):
		handlers.RespondError(w, http.StatusUnprocessableEntity, msgRefundRejected)
	case errors.Is(err, storeService.ErrPaymentGateway):
		h.logger.Error("%s - Payment gateway error: %v", route, err)
		handlers.RespondError(w, http.StatusBadGateway, msgPaymentGateway)
	default:
		h.logger.Error("%s - Internal error: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
