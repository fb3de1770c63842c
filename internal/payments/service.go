package payments

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/crystara/crystara-backend/pkg/enums"
	pkgerrors "github.com/crystara/crystara-backend/pkg/errors"
	"github.com/crystara/crystara-backend/pkg/razorpay"
)

// Gateway is the slice of the Razorpay client the payment service uses.
type Gateway interface {
	CreateOrder(ctx context.Context, params razorpay.OrderParams) (*razorpay.Order, error)
	KeyID() string
	KeySecret() string
}

// Service defines payment-gateway operations.
type Service interface {
	CreateGatewayOrder(ctx context.Context, input CreateGatewayOrderInput) (*GatewayOrder, error)
	VerifySignature(input VerifySignatureInput) (bool, error)
}

type service struct {
	gateway Gateway
}

// NewService builds a payment service bound to the gateway client.
func NewService(gateway Gateway) (Service, error) {
	if gateway == nil {
		return nil, fmt.Errorf("payment gateway required")
	}
	return &service{gateway: gateway}, nil
}

// CreateGatewayOrder validates checkout input before any gateway call, converts
// the amount to the currency's smallest unit, and opens the gateway order.
func (s *service) CreateGatewayOrder(ctx context.Context, input CreateGatewayOrderInput) (*GatewayOrder, error) {
	if input.Amount <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "amount must be greater than zero")
	}

	currency := enums.CurrencyINR
	if raw := strings.TrimSpace(input.Currency); raw != "" {
		parsed, err := enums.ParseCurrency(raw)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unsupported currency")
		}
		currency = parsed
	}

	receipt := strings.TrimSpace(input.Receipt)
	if receipt == "" {
		receipt = fmt.Sprintf("receipt_%d", time.Now().UnixMilli())
	}

	subunits := decimal.NewFromFloat(input.Amount).
		Mul(decimal.NewFromInt(100)).
		Round(0).
		IntPart()
	if subunits <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "amount is below the smallest chargeable unit")
	}

	order, err := s.gateway.CreateOrder(ctx, razorpay.OrderParams{
		Amount:   subunits,
		Currency: currency.String(),
		Receipt:  receipt,
		Notes:    input.Notes,
	})
	if err != nil {
		return nil, err
	}

	return &GatewayOrder{
		OrderID:  order.ID,
		Amount:   order.Amount,
		Currency: order.Currency,
		Receipt:  order.Receipt,
		KeyID:    s.gateway.KeyID(),
	}, nil
}

// VerifySignature recomputes the gateway handshake signature and compares it in
// constant time. A mismatch is a normal outcome, not an error.
func (s *service) VerifySignature(input VerifySignatureInput) (bool, error) {
	if input.OrderID == "" || input.PaymentID == "" || input.Signature == "" {
		return false, pkgerrors.New(pkgerrors.CodeValidation, "order id, payment id, and signature are required")
	}

	mac := hmac.New(sha256.New, []byte(s.gateway.KeySecret()))
	fmt.Fprintf(mac, "%s|%s", input.OrderID, input.PaymentID)
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(input.Signature)), nil
}
