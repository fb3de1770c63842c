package payments

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"testing"

	pkgerrors "github.com/crystara/crystara-backend/pkg/errors"
	"github.com/crystara/crystara-backend/pkg/razorpay"
)

type fakeGateway struct {
	lastParams *razorpay.OrderParams
	createErr  error
	keyID      string
	keySecret  string
}

func (f *fakeGateway) CreateOrder(ctx context.Context, params razorpay.OrderParams) (*razorpay.Order, error) {
	f.lastParams = &params
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &razorpay.Order{
		ID:       "order_fake1",
		Amount:   params.Amount,
		Currency: params.Currency,
		Receipt:  params.Receipt,
		Status:   "created",
	}, nil
}

func (f *fakeGateway) KeyID() string     { return f.keyID }
func (f *fakeGateway) KeySecret() string { return f.keySecret }

func newTestService(t *testing.T, gw *fakeGateway) Service {
	t.Helper()
	svc, err := NewService(gw)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestCreateGatewayOrderConvertsToSubunits(t *testing.T) {
	gw := &fakeGateway{keyID: "rzp_test_key"}
	svc := newTestService(t, gw)

	order, err := svc.CreateGatewayOrder(context.Background(), CreateGatewayOrderInput{
		Amount:   499.5,
		Currency: "INR",
		Receipt:  "receipt_42",
	})
	if err != nil {
		t.Fatalf("create gateway order: %v", err)
	}
	if gw.lastParams.Amount != 49950 {
		t.Fatalf("gateway amount = %d, want 49950", gw.lastParams.Amount)
	}
	if order.Amount != 49950 {
		t.Fatalf("order amount = %d, want 49950", order.Amount)
	}
	if order.KeyID != "rzp_test_key" {
		t.Fatalf("key id = %q", order.KeyID)
	}
	if order.OrderID != "order_fake1" {
		t.Fatalf("order id = %q", order.OrderID)
	}
}

func TestCreateGatewayOrderRoundsHalfSubunit(t *testing.T) {
	gw := &fakeGateway{}
	svc := newTestService(t, gw)

	// 10.005 rupees is 1000.5 paise; round half away from zero gives 1001.
	if _, err := svc.CreateGatewayOrder(context.Background(), CreateGatewayOrderInput{Amount: 10.005}); err != nil {
		t.Fatalf("create gateway order: %v", err)
	}
	if gw.lastParams.Amount != 1001 {
		t.Fatalf("gateway amount = %d, want 1001", gw.lastParams.Amount)
	}
}

func TestCreateGatewayOrderDefaults(t *testing.T) {
	gw := &fakeGateway{}
	svc := newTestService(t, gw)

	order, err := svc.CreateGatewayOrder(context.Background(), CreateGatewayOrderInput{Amount: 100})
	if err != nil {
		t.Fatalf("create gateway order: %v", err)
	}
	if gw.lastParams.Currency != "INR" {
		t.Fatalf("currency = %q, want INR", gw.lastParams.Currency)
	}
	if !strings.HasPrefix(gw.lastParams.Receipt, "receipt_") {
		t.Fatalf("receipt %q missing generated prefix", gw.lastParams.Receipt)
	}
	if order.Currency != "INR" {
		t.Fatalf("order currency = %q", order.Currency)
	}
}

func TestCreateGatewayOrderValidation(t *testing.T) {
	tests := []struct {
		name  string
		input CreateGatewayOrderInput
	}{
		{name: "zero amount", input: CreateGatewayOrderInput{Amount: 0}},
		{name: "negative amount", input: CreateGatewayOrderInput{Amount: -10}},
		{name: "unknown currency", input: CreateGatewayOrderInput{Amount: 10, Currency: "GBP"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := &fakeGateway{}
			svc := newTestService(t, gw)

			_, err := svc.CreateGatewayOrder(context.Background(), tt.input)
			domainErr := pkgerrors.As(err)
			if domainErr == nil || domainErr.Code() != pkgerrors.CodeValidation {
				t.Fatalf("expected validation error, got %v", err)
			}
			if gw.lastParams != nil {
				t.Fatal("gateway must not be called for invalid input")
			}
		})
	}
}

func TestCreateGatewayOrderPropagatesGatewayError(t *testing.T) {
	gw := &fakeGateway{createErr: pkgerrors.New(pkgerrors.CodeDependency, "gateway down")}
	svc := newTestService(t, gw)

	_, err := svc.CreateGatewayOrder(context.Background(), CreateGatewayOrderInput{Amount: 10})
	domainErr := pkgerrors.As(err)
	if domainErr == nil || domainErr.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}

func signFor(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%s|%s", orderID, paymentID)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	svc := newTestService(t, &fakeGateway{keySecret: "shhh"})

	valid := signFor("shhh", "order_1", "pay_1")

	ok, err := svc.VerifySignature(VerifySignatureInput{OrderID: "order_1", PaymentID: "pay_1", Signature: valid})
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !ok {
		t.Fatal("expected valid signature to verify")
	}

	ok, err = svc.VerifySignature(VerifySignatureInput{OrderID: "order_1", PaymentID: "pay_1", Signature: valid[:len(valid)-1] + "0"})
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if ok {
		t.Fatal("tampered signature must not verify")
	}

	// Signature minted under a different secret must fail.
	other := signFor("other", "order_1", "pay_1")
	ok, err = svc.VerifySignature(VerifySignatureInput{OrderID: "order_1", PaymentID: "pay_1", Signature: other})
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if ok {
		t.Fatal("foreign-secret signature must not verify")
	}
}

func TestVerifySignatureRequiresAllFields(t *testing.T) {
	svc := newTestService(t, &fakeGateway{keySecret: "shhh"})

	tests := []VerifySignatureInput{
		{PaymentID: "pay_1", Signature: "sig"},
		{OrderID: "order_1", Signature: "sig"},
		{OrderID: "order_1", PaymentID: "pay_1"},
	}
	for _, input := range tests {
		_, err := svc.VerifySignature(input)
		domainErr := pkgerrors.As(err)
		if domainErr == nil || domainErr.Code() != pkgerrors.CodeValidation {
			t.Fatalf("expected validation error for %+v, got %v", input, err)
		}
	}
}
