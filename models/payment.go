package models

// Payment gateway identifiers.
const (
	GatewayStripe       = "stripe"
	GatewayAuthorizeNet = "authorize_net"
)

// ChargeRequest describes one single-shot charge against a payment gateway.
// Stripe charges use PaymentMethod (a tokenized card); Authorize.Net charges
// carry raw card fields as its transaction API expects.
type ChargeRequest struct {
	RequestID      string  `json:"requestId"`
	Gateway        string  `json:"gateway"`
	Amount         float64 `json:"amount"`
	Currency       string  `json:"currency"`
	PaymentMethod  string  `json:"paymentMethod,omitempty"`
	CardNumber     string  `json:"cardNumber,omitempty"`
	ExpirationDate string  `json:"expirationDate,omitempty"`
	CardCode       string  `json:"cardCode,omitempty"`
	Description    string  `json:"description,omitempty"`
}

// ChargeResult is the gateway's interpreted answer.
type ChargeResult struct {
	Status        string `json:"status"`
	TransactionID string `json:"transactionId,omitempty"`
	Message       string `json:"message,omitempty"`
}
