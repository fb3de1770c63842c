package orders

import (
	"github.com/google/uuid"

	"github.com/crystara/crystara-backend/pkg/db/models"
	"github.com/crystara/crystara-backend/pkg/enums"
	"github.com/crystara/crystara-backend/pkg/pagination"
	"github.com/crystara/crystara-backend/pkg/types"
)

// CreateOrderInput carries the fields the storefront submits after a verified
// gateway callback. Amount is in the currency's smallest unit.
type CreateOrderInput struct {
	GatewayOrderID   string
	GatewayPaymentID string
	Amount           int64
	Currency         string
	Items            types.OrderItems
	ShippingAddress  *types.ShippingAddress
	Status           string
}

// AdminOrderFilters describe the inputs supported by the admin orders list.
type AdminOrderFilters struct {
	Status *enums.OrderStatus
	UserID *uuid.UUID
}

// AdminOrderRow is one admin list entry with the buyer's email joined in.
type AdminOrderRow struct {
	models.Order
	UserEmail string `gorm:"column:user_email" json:"user_email,omitempty"`
	UserName  string `gorm:"column:user_name" json:"user_name,omitempty"`
}

// UserOrderList wraps a page of a single user's orders.
type UserOrderList struct {
	Orders []models.Order  `json:"orders"`
	Page   pagination.Page `json:"pagination"`
}

// AdminOrderList wraps a page of the storewide order feed.
type AdminOrderList struct {
	Orders []AdminOrderRow `json:"orders"`
	Page   pagination.Page `json:"pagination"`
}

// Stats aggregates the dashboard counters in one query round trip.
type Stats struct {
	TotalOrders     int64 `json:"totalOrders"`
	TotalRevenue    int64 `json:"totalRevenue"`
	CompletedOrders int64 `json:"completedOrders"`
	PendingOrders   int64 `json:"pendingOrders"`
	FailedOrders    int64 `json:"failedOrders"`
}
