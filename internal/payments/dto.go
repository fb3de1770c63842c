package payments

// CreateGatewayOrderInput carries the checkout fields used to open a gateway order.
// Amount is in major currency units (rupees), exactly as the storefront sends it.
type CreateGatewayOrderInput struct {
	Amount   float64
	Currency string
	Receipt  string
	Notes    map[string]string
}

// GatewayOrder is the order descriptor handed back to checkout clients.
type GatewayOrder struct {
	OrderID  string `json:"orderId"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	KeyID    string `json:"keyId"`
}

// VerifySignatureInput carries the three gateway handshake fields.
type VerifySignatureInput struct {
	OrderID   string
	PaymentID string
	Signature string
}
