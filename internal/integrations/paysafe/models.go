package paysafe

// Card данные карты, передаются только одноразовым токеном
type Card struct {
	PaymentToken string `json:"paymentToken"`
}

// AuthorizationRequest запрос на списание с немедленным зачислением
type AuthorizationRequest struct {
	MerchantRefNum string `json:"merchantRefNum"`
	Amount         int64  `json:"amount"` // центы
	SettleWithAuth bool   `json:"settleWithAuth"`
	Card           Card   `json:"card"`
	Description    string `json:"description,omitempty"`
}

// Authorization ответ шлюза на списание
type Authorization struct {
	ID             string `json:"id"`
	MerchantRefNum string `json:"merchantRefNum"`
	Amount         int64  `json:"amount"`
	Status         string `json:"status"`
	TxnTime        string `json:"txnTime"`
}

// RefundRequest запрос на возврат по зачислению
type RefundRequest struct {
	MerchantRefNum string `json:"merchantRefNum"`
	Amount         int64  `json:"amount"`
}

// Refund ответ шлюза на возврат
type Refund struct {
	ID             string `json:"id"`
	MerchantRefNum string `json:"merchantRefNum"`
	Amount         int64  `json:"amount"`
	Status         string `json:"status"`
}

// ErrorResponse модель ошибки Paysafe
type ErrorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

const (
	statusCompleted = "COMPLETED"
	statusPending   = "PENDING"
)
