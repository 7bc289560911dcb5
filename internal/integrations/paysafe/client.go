package paysafe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент Paysafe Card Payments API
type Client struct {
	baseURL    string
	accountID  string
	apiUser    string
	apiKey     string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента Paysafe
func NewClient(baseURL, accountID, apiUser, apiKey string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL:   baseURL,
		accountID: accountID,
		apiUser:   apiUser,
		apiKey:    apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Charge списывает amountCents с карты по одноразовому токену
// Возвращает идентификатор транзакции, по которому потом делается возврат
func (c *Client) Charge(ctx context.Context, token string, amountCents int64, merchantRef string) (string, error) {
	if merchantRef == "" {
		merchantRef = uuid.NewString()
	}

	url := fmt.Sprintf("%s/cardpayments/v1/accounts/%s/auths", c.baseURL, c.accountID)
	body := AuthorizationRequest{
		MerchantRefNum: merchantRef,
		Amount:         amountCents,
		SettleWithAuth: true,
		Card:           Card{PaymentToken: token},
	}

	var auth Authorization
	if err := c.post(ctx, url, body, &auth); err != nil {
		c.log.Warn("Paysafe charge failed: ref=%s, amount=%d: %v", merchantRef, amountCents, err)
		return "", err
	}

	if auth.Status != statusCompleted && auth.Status != statusPending {
		return "", fmt.Errorf("%w: status %s", ErrPaymentDeclined, auth.Status)
	}

	c.log.Info("Paysafe charge completed: ref=%s, id=%s, amount=%d", merchantRef, auth.ID, amountCents)
	return auth.ID, nil
}

// Refund возвращает amountCents по транзакции settlementID
func (c *Client) Refund(ctx context.Context, settlementID string, amountCents int64) (string, error) {
	url := fmt.Sprintf("%s/cardpayments/v1/accounts/%s/settlements/%s/refunds", c.baseURL, c.accountID, settlementID)
	body := RefundRequest{
		MerchantRefNum: uuid.NewString(),
		Amount:         amountCents,
	}

	var refund Refund
	if err := c.post(ctx, url, body, &refund); err != nil {
		c.log.Warn("Paysafe refund failed: settlement=%s, amount=%d: %v", settlementID, amountCents, err)
		return "", err
	}

	c.log.Info("Paysafe refund completed: settlement=%s, id=%s, amount=%d", settlementID, refund.ID, amountCents)
	return refund.ID, nil
}

func (c *Client) post(ctx context.Context, url string, in, out interface{}) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal request: %w", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %w", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.apiUser, c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %w", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		// Продолжаем обработку
	case resp.StatusCode == http.StatusPaymentRequired || resp.StatusCode == http.StatusBadRequest:
		var e ErrorResponse
		_ = json.NewDecoder(resp.Body).Decode(&e)
		return fmt.Errorf("%w: code=%s: %s", ErrPaymentDeclined, e.Error.Code, e.Error.Message)
	default:
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(b))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %w", ErrInvalidResponse, err)
	}
	return nil
}
