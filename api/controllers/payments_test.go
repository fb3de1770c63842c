package controllers

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	internalpayments "github.com/crystara/crystara-backend/internal/payments"
	"github.com/crystara/crystara-backend/pkg/logger"
	"github.com/crystara/crystara-backend/pkg/razorpay"
)

type stubGateway struct {
	lastParams *razorpay.OrderParams
	createErr  error
	secret     string
}

func (s *stubGateway) CreateOrder(_ context.Context, params razorpay.OrderParams) (*razorpay.Order, error) {
	s.lastParams = &params
	if s.createErr != nil {
		return nil, s.createErr
	}
	return &razorpay.Order{
		ID:       "order_stub123",
		Amount:   params.Amount,
		Currency: params.Currency,
		Receipt:  params.Receipt,
		Status:   "created",
	}, nil
}

func (s *stubGateway) KeyID() string { return "rzp_test_key" }

func (s *stubGateway) KeySecret() string {
	if s.secret != "" {
		return s.secret
	}
	return "test_secret"
}

func newTestLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func paymentsServiceForTest(t *testing.T, gateway *stubGateway) internalpayments.Service {
	t.Helper()
	svc, err := internalpayments.NewService(gateway)
	if err != nil {
		t.Fatalf("build payments service: %v", err)
	}
	return svc
}

func TestCreatePaymentOrderConvertsToMinorUnits(t *testing.T) {
	gateway := &stubGateway{}
	handler := CreatePaymentOrder(paymentsServiceForTest(t, gateway), newTestLogger())

	body := `{"amount": 499.5, "receipt": "rcpt_77", "notes": {"cart": "c-9"}}`
	req := httptest.NewRequest(http.MethodPost, "/create-order", strings.NewReader(body))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if gateway.lastParams == nil {
		t.Fatal("gateway was never called")
	}
	if gateway.lastParams.Amount != 49950 {
		t.Fatalf("expected 49950 paise got %d", gateway.lastParams.Amount)
	}
	if gateway.lastParams.Notes["cart"] != "c-9" {
		t.Fatalf("notes not forwarded: %v", gateway.lastParams.Notes)
	}

	var envelope struct {
		Data internalpayments.GatewayOrder `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.OrderID != "order_stub123" {
		t.Fatalf("unexpected order id %q", envelope.Data.OrderID)
	}
	if envelope.Data.KeyID != "rzp_test_key" {
		t.Fatalf("key id missing from payload: %+v", envelope.Data)
	}
}

func TestCreatePaymentOrderRejectsBadAmount(t *testing.T) {
	gateway := &stubGateway{}
	handler := CreatePaymentOrder(paymentsServiceForTest(t, gateway), newTestLogger())

	for _, body := range []string{
		`{}`,
		`{"amount": 0}`,
		`{"amount": -10}`,
		`{"amount": "499.5"}`,
	} {
		req := httptest.NewRequest(http.MethodPost, "/create-order", strings.NewReader(body))
		resp := httptest.NewRecorder()
		handler.ServeHTTP(resp, req)

		if resp.Code != http.StatusBadRequest {
			t.Fatalf("body %s: expected 400 got %d", body, resp.Code)
		}
		if gateway.lastParams != nil {
			t.Fatalf("body %s: gateway should not be called", body)
		}
	}
}

func TestVerifyPayment(t *testing.T) {
	gateway := &stubGateway{secret: "verify_secret"}
	handler := VerifyPayment(paymentsServiceForTest(t, gateway), newTestLogger())

	sign := func(orderID, paymentID string) string {
		mac := hmac.New(sha256.New, []byte("verify_secret"))
		fmt.Fprintf(mac, "%s|%s", orderID, paymentID)
		return hex.EncodeToString(mac.Sum(nil))
	}

	payload := func(sig string) string {
		return fmt.Sprintf(`{"razorpay_order_id":"order_1","razorpay_payment_id":"pay_1","razorpay_signature":"%s"}`, sig)
	}

	req := httptest.NewRequest(http.MethodPost, "/verify-payment", strings.NewReader(payload(sign("order_1", "pay_1"))))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	var envelope struct {
		Data verifyPaymentResponse `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !envelope.Data.Valid {
		t.Fatal("expected valid:true")
	}

	req = httptest.NewRequest(http.MethodPost, "/verify-payment", strings.NewReader(payload("deadbeef")))
	resp = httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
	envelope.Data.Valid = true
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Valid {
		t.Fatal("expected valid:false")
	}
}

func TestVerifyPaymentMissingFields(t *testing.T) {
	handler := VerifyPayment(paymentsServiceForTest(t, &stubGateway{}), newTestLogger())

	req := httptest.NewRequest(http.MethodPost, "/verify-payment", strings.NewReader(`{"razorpay_order_id":"order_1"}`))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}
