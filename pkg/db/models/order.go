package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/crystara/crystara-backend/pkg/enums"
	"github.com/crystara/crystara-backend/pkg/types"
)

// Order records one completed (or attempted) purchase. Rows are created only
// after the client reports a verified gateway callback and are never deleted.
type Order struct {
	ID               uuid.UUID              `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID           uuid.UUID              `gorm:"column:user_id;type:uuid;not null;index:idx_orders_user_created,priority:1" json:"user_id"`
	GatewayOrderID   string                 `gorm:"column:order_id;not null" json:"order_id"`
	GatewayPaymentID string                 `gorm:"column:payment_id;not null;uniqueIndex:uq_orders_payment_id" json:"payment_id"`
	AmountCents      int64                  `gorm:"column:amount;not null" json:"amount"`
	Currency         enums.Currency         `gorm:"column:currency;type:text;not null;default:'INR'" json:"currency"`
	Items            types.OrderItems       `gorm:"column:items;type:jsonb;serializer:json" json:"items"`
	ShippingAddress  *types.ShippingAddress `gorm:"column:shipping_address;type:jsonb;serializer:json" json:"shipping_address,omitempty"`
	Status           enums.OrderStatus      `gorm:"column:status;type:text;not null;default:'completed'" json:"status"`
	CreatedAt        time.Time              `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time              `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
