package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/crystara/crystara-backend/pkg/db"
	"github.com/crystara/crystara-backend/pkg/db/models"
	"github.com/crystara/crystara-backend/pkg/enums"
	pkgerrors "github.com/crystara/crystara-backend/pkg/errors"
	"github.com/crystara/crystara-backend/pkg/pagination"
)

// Service defines order operations above the repository.
type Service interface {
	Create(ctx context.Context, userID uuid.UUID, input CreateOrderInput) (*models.Order, error)
	ListByUser(ctx context.Context, userID uuid.UUID, params pagination.Params) (*UserOrderList, error)
	GetByIDForUser(ctx context.Context, orderID, userID uuid.UUID) (*models.Order, error)
	AdminList(ctx context.Context, params pagination.Params, filters AdminOrderFilters) (*AdminOrderList, error)
	AdminUpdateStatus(ctx context.Context, orderID uuid.UUID, rawStatus string) (*models.Order, error)
	AdminStats(ctx context.Context) (*Stats, error)
}

type service struct {
	repo Repository
}

// NewService builds an order service bound to the repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	return &service{repo: repo}, nil
}

// Create persists a verified purchase. Retries carrying the same gateway
// payment id return the already-saved order instead of a duplicate row.
func (s *service) Create(ctx context.Context, userID uuid.UUID, input CreateOrderInput) (*models.Order, error) {
	paymentID := strings.TrimSpace(input.GatewayPaymentID)
	if paymentID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "payment id is required")
	}
	if input.Amount <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "amount must be greater than zero")
	}
	if len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order must contain at least one item")
	}

	currency := enums.CurrencyINR
	if raw := strings.TrimSpace(input.Currency); raw != "" {
		parsed, err := enums.ParseCurrency(raw)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unsupported currency")
		}
		currency = parsed
	}

	status := enums.OrderStatusCompleted
	if raw := strings.TrimSpace(input.Status); raw != "" {
		parsed, err := enums.ParseOrderStatus(raw)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unknown order status")
		}
		status = parsed
	}

	order := &models.Order{
		UserID:           userID,
		GatewayOrderID:   strings.TrimSpace(input.GatewayOrderID),
		GatewayPaymentID: paymentID,
		AmountCents:      input.Amount,
		Currency:         currency,
		Items:            input.Items,
		ShippingAddress:  input.ShippingAddress,
		Status:           status,
	}

	created, err := s.repo.Create(ctx, order)
	if err != nil {
		if db.IsUniqueViolation(err) {
			existing, findErr := s.repo.FindByPaymentID(ctx, paymentID)
			if findErr != nil {
				return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, findErr, "loading existing order")
			}
			return existing, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "saving order")
	}
	return created, nil
}

func (s *service) ListByUser(ctx context.Context, userID uuid.UUID, params pagination.Params) (*UserOrderList, error) {
	list, err := s.repo.ListByUser(ctx, userID, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing orders")
	}
	return list, nil
}

// GetByIDForUser scopes the lookup to the caller. A foreign order id yields
// the same not-found as a nonexistent one.
func (s *service) GetByIDForUser(ctx context.Context, orderID, userID uuid.UUID) (*models.Order, error) {
	order, err := s.repo.FindByIDForUser(ctx, orderID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading order")
	}
	return order, nil
}

func (s *service) AdminList(ctx context.Context, params pagination.Params, filters AdminOrderFilters) (*AdminOrderList, error) {
	list, err := s.repo.AdminList(ctx, params, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing orders")
	}
	return list, nil
}

func (s *service) AdminUpdateStatus(ctx context.Context, orderID uuid.UUID, rawStatus string) (*models.Order, error) {
	status, err := enums.ParseOrderStatus(strings.TrimSpace(rawStatus))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unknown order status")
	}

	order, err := s.repo.UpdateStatus(ctx, orderID, status)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating order status")
	}
	return order, nil
}

func (s *service) AdminStats(ctx context.Context) (*Stats, error) {
	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "aggregating order stats")
	}
	return stats, nil
}
