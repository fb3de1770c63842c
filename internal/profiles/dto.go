package profiles

import (
	"github.com/crystara/crystara-backend/pkg/types"
)

// OnboardingInput carries the first-time profile submission. Name and phone
// are required; the primary address fields are optional.
type OnboardingInput struct {
	Name           string
	Phone          string
	AddressStreet  *string
	AddressCity    *string
	AddressState   *string
	AddressPincode *string
}

// UpdateProfileInput is a partial patch. A field is written only when its
// Set flag is true; an explicit null clears the column.
type UpdateProfileInput struct {
	Name           types.OptionalString
	Phone          types.OptionalString
	AddressStreet  types.OptionalString
	AddressCity    types.OptionalString
	AddressState   types.OptionalString
	AddressPincode types.OptionalString
	SavedAddresses *types.SavedAddresses
}

// OnboardingStatus reports whether the caller has completed onboarding.
type OnboardingStatus struct {
	IsOnboarded bool `json:"isOnboarded"`
}
