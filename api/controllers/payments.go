package controllers

import (
	"net/http"

	internalpayments "github.com/crystara/crystara-backend/internal/payments"
	"github.com/crystara/crystara-backend/pkg/logger"

	"github.com/crystara/crystara-backend/api/responses"
	"github.com/crystara/crystara-backend/api/validators"
)

type createOrderRequest struct {
	Amount   *float64          `json:"amount" validate:"required,gt=0"`
	Currency string            `json:"currency" validate:"omitempty,len=3"`
	Receipt  string            `json:"receipt" validate:"omitempty,max=64"`
	Notes    map[string]string `json:"notes" validate:"omitempty,max=16"`
}

type verifyPaymentRequest struct {
	OrderID   string `json:"razorpay_order_id" validate:"required"`
	PaymentID string `json:"razorpay_payment_id" validate:"required"`
	Signature string `json:"razorpay_signature" validate:"required"`
}

type verifyPaymentResponse struct {
	Valid bool `json:"valid"`
}

// CreatePaymentOrder opens a gateway order for the amount the storefront is
// about to charge. No local row is written at this step.
func CreatePaymentOrder(svc internalpayments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createOrderRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.CreateGatewayOrder(r.Context(), internalpayments.CreateGatewayOrderInput{
			Amount:   *req.Amount,
			Currency: req.Currency,
			Receipt:  validators.SanitizeString(req.Receipt, 64),
			Notes:    req.Notes,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, order)
	}
}

// VerifyPayment checks the gateway handshake signature. A mismatch answers
// 400 with valid:false rather than an error envelope; the storefront keys
// off the flag.
func VerifyPayment(svc internalpayments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req verifyPaymentRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		valid, err := svc.VerifySignature(internalpayments.VerifySignatureInput{
			OrderID:   req.OrderID,
			PaymentID: req.PaymentID,
			Signature: req.Signature,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if !valid {
			responses.WriteSuccessStatus(w, http.StatusBadRequest, verifyPaymentResponse{Valid: false})
			return
		}
		responses.WriteSuccess(w, verifyPaymentResponse{Valid: true})
	}
}
