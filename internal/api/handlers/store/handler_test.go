package store

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/blitz-booking/internal/api/middleware"
	"github.com/m04kA/blitz-booking/internal/domain"
	storeService "github.com/m04kA/blitz-booking/internal/service/store"
	"github.com/m04kA/blitz-booking/internal/service/store/models"
	createOrder "github.com/m04kA/blitz-booking/internal/usecase/create_order"
	validateCoupon "github.com/m04kA/blitz-booking/internal/usecase/validate_coupon"
	"github.com/m04kA/blitz-booking/pkg/logger"
)

type fixture struct {
	service  *mockService
	validate *mockValidate
	orders   *mockOrders
	router   *mux.Router
}

func newFixture() *fixture {
	f := &fixture{
		service:  new(mockService),
		validate: new(mockValidate),
		orders:   new(mockOrders),
	}
	h := NewHandler(f.service, f.validate, f.orders, logger.NewNop())

	r := mux.NewRouter()
	r.HandleFunc("/coupons", h.CreateCoupon).Methods(http.MethodPost)
	r.HandleFunc("/coupons/validate", h.ValidateCoupon).Methods(http.MethodPost)
	r.HandleFunc("/orders", h.CreateOrder).Methods(http.MethodPost)
	r.HandleFunc("/order-lines/{id}/refunds", h.RefundOrderLine).Methods(http.MethodPost)
	r.HandleFunc("/products", h.ListProducts).Methods(http.MethodGet)
	f.router = r
	return f
}

func (f *fixture) do(method, path, body string, userID int64) *httptest.ResponseRecorder {
	r := httptest.NewRequest(method, path, strings.NewReader(body))
	if userID > 0 {
		r = r.WithContext(middleware.WithUser(r.Context(), &domain.User{ID: userID}))
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, r)
	return w
}

func TestCreateOrder(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		f := newFixture()
		end := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
		txID := "settle-1"
		f.orders.On("Execute", mock.Anything, mock.MatchedBy(func(req *createOrder.Request) bool {
			return req.UserID == 3 && len(req.Lines) == 1 && req.Lines[0].ProductType == "membership" &&
				req.PaymentToken == "tok" && req.CouponCode == "SUMMER"
		})).Return(&createOrder.Response{
			ID:            100,
			UserID:        3,
			TransactionID: &txID,
			Total:         decimal.NewFromInt(45),
			Discount:      decimal.NewFromInt(5),
			Lines:         []createOrder.LineResponse{{ID: 200, ProductType: "membership", ObjectID: 1, Quantity: 1}},
			MembershipEnd: &end,
		}, nil)

		w := f.do(http.MethodPost, "/orders",
			`{"lines":[{"productType":"membership","objectId":1}],"couponCode":"SUMMER","paymentToken":"tok"}`, 3)
		require.Equal(t, http.StatusCreated, w.Code)

		var resp OrderResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotNil(t, resp.MembershipEnd)
		assert.Equal(t, "2026-07-01", *resp.MembershipEnd)
		assert.True(t, decimal.NewFromInt(45).Equal(resp.Total))
	})

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "declined", err: createOrder.ErrPaymentDeclined, want: http.StatusPaymentRequired},
		{name: "token missing", err: createOrder.ErrPaymentRequired, want: http.StatusPaymentRequired},
		{name: "gateway down", err: createOrder.ErrPaymentGateway, want: http.StatusBadGateway},
		{name: "price changed", err: createOrder.ErrPriceChanged, want: http.StatusConflict},
		{name: "not allowed", err: createOrder.ErrProductNotAllowed, want: http.StatusForbidden},
		{name: "retreat full", err: createOrder.ErrRetreatUnavailable, want: http.StatusConflict},
		{name: "invalid", err: createOrder.ErrInvalidInput, want: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.orders.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)

			w := f.do(http.MethodPost, "/orders", `{"lines":[{"productType":"package","objectId":2,"quantity":2}]}`, 3)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestValidateCoupon(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		f := newFixture()
		f.validate.On("Execute", mock.Anything, mock.MatchedBy(func(req *validateCoupon.Request) bool {
			return req.UserID == 3 && req.Code == "X" && len(req.Lines) == 2
		})).Return(&validateCoupon.Response{CouponID: 1, Code: "X", Value: decimal.NewFromInt(10), LineIndex: 1}, nil)

		w := f.do(http.MethodPost, "/coupons/validate",
			`{"code":"X","lines":[{"productType":"package","objectId":1,"cost":"20"},{"productType":"retreat","objectId":2,"cost":"300"}]}`, 3)
		require.Equal(t, http.StatusOK, w.Code)

		var resp ValidateCouponResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 1, resp.LineIndex)
	})

	t.Run("exhausted", func(t *testing.T) {
		f := newFixture()
		f.validate.On("Execute", mock.Anything, mock.Anything).Return(nil, validateCoupon.ErrCouponExhausted)

		w := f.do(http.MethodPost, "/coupons/validate", `{"code":"X","lines":[]}`, 3)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestCreateCoupon_UsesCurrentUserAsOwner(t *testing.T) {
	f := newFixture()
	f.service.On("CreateCoupon", mock.Anything, int64(9), mock.Anything).Return(nil, storeService.ErrCouponCodeTaken)

	w := f.do(http.MethodPost, "/coupons", `{"code":"SUMMER","percentOff":10}`, 9)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRefundOrderLine(t *testing.T) {
	t.Run("exceeds paid", func(t *testing.T) {
		f := newFixture()
		f.service.On("RefundOrderLine", mock.Anything, int64(5), mock.Anything).Return(nil, storeService.ErrRefundExceedsPaid)

		w := f.do(http.MethodPost, "/order-lines/5/refunds", `{"amount":"1000"}`, 1)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("refunded", func(t *testing.T) {
		f := newFixture()
		f.service.On("RefundOrderLine", mock.Anything, int64(5), mock.MatchedBy(func(a decimal.Decimal) bool {
			return a.Equal(decimal.RequireFromString("12.50"))
		})).Return(&models.RefundResponse{ID: 1, OrderLineID: 5, Amount: decimal.RequireFromString("12.50"), RefundID: "r"}, nil)

		w := f.do(http.MethodPost, "/order-lines/5/refunds", `{"amount":"12.50"}`, 1)
		assert.Equal(t, http.StatusCreated, w.Code)
	})
}

func TestListProducts(t *testing.T) {
	f := newFixture()
	f.service.On("ListProducts", mock.Anything).Return(&models.ProductsResponse{}, nil)

	w := f.do(http.MethodGet, "/products", "", 0)
	assert.Equal(t, http.StatusOK, w.Code)
}
