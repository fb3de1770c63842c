package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	internalorders "github.com/crystara/crystara-backend/internal/orders"
	pkgerrors "github.com/crystara/crystara-backend/pkg/errors"
	"github.com/crystara/crystara-backend/pkg/logger"
	"github.com/crystara/crystara-backend/pkg/pagination"
	"github.com/crystara/crystara-backend/pkg/types"

	"github.com/crystara/crystara-backend/api/middleware"
	"github.com/crystara/crystara-backend/api/responses"
	"github.com/crystara/crystara-backend/api/validators"
)

type persistOrderRequest struct {
	GatewayOrderID   string                 `json:"order_id" validate:"required"`
	GatewayPaymentID string                 `json:"payment_id" validate:"required"`
	Amount           int64                  `json:"amount" validate:"required,gt=0"`
	Currency         string                 `json:"currency" validate:"omitempty,len=3"`
	Items            types.OrderItems       `json:"items" validate:"required,min=1"`
	ShippingAddress  *types.ShippingAddress `json:"shipping_address"`
	Status           string                 `json:"status" validate:"omitempty,max=16"`
}

func callerID(r *http.Request) (uuid.UUID, error) {
	raw := middleware.UserIDFromContext(r.Context())
	userID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials")
	}
	return userID, nil
}

// PersistOrder stores the purchase the client just verified with the
// gateway. A retry carrying an already-saved payment id answers with the
// original row instead of inserting a duplicate.
func PersistOrder(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req persistOrderRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Create(r.Context(), userID, internalorders.CreateOrderInput{
			GatewayOrderID:   req.GatewayOrderID,
			GatewayPaymentID: req.GatewayPaymentID,
			Amount:           req.Amount,
			Currency:         req.Currency,
			Items:            req.Items,
			ShippingAddress:  req.ShippingAddress,
			Status:           req.Status,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}

// UserOrderHistory lists the caller's orders, newest first.
func UserOrderHistory(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := validators.ParseQueryInt(r, "page", 1, 1, 1<<20)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.ListByUser(r.Context(), userID, pagination.Params{Page: page, Limit: limit})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// GetOrder fetches one caller-owned order by id.
func GetOrder(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rawOrderID := strings.TrimSpace(chi.URLParam(r, "orderId"))
		orderID, err := uuid.Parse(rawOrderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid order id"))
			return
		}

		order, err := svc.GetByIDForUser(r.Context(), orderID, userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}
