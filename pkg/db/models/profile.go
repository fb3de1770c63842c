package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/crystara/crystara-backend/pkg/enums"
	"github.com/crystara/crystara-backend/pkg/types"
)

// Profile extends the identity-provider account with commerce fields. The
// row is keyed by the provider's user id; email is mirrored at creation and
// never updated afterwards.
type Profile struct {
	UserID         uuid.UUID            `gorm:"column:user_id;type:uuid;primaryKey" json:"user_id"`
	Email          string               `gorm:"column:email;not null" json:"email"`
	Name           string               `gorm:"column:name;not null;default:''" json:"name"`
	Phone          string               `gorm:"column:phone;not null;default:''" json:"phone"`
	AddressStreet  *string              `gorm:"column:address_street" json:"address_street,omitempty"`
	AddressCity    *string              `gorm:"column:address_city" json:"address_city,omitempty"`
	AddressState   *string              `gorm:"column:address_state" json:"address_state,omitempty"`
	AddressPincode *string              `gorm:"column:address_pincode" json:"address_pincode,omitempty"`
	SavedAddresses types.SavedAddresses `gorm:"column:saved_addresses;type:jsonb;serializer:json" json:"saved_addresses,omitempty"`
	Role           enums.ProfileRole    `gorm:"column:role;type:text;not null;default:'customer'" json:"role"`
	CreatedAt      time.Time            `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time            `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
