package controllers

import (
	"net/http"

	internalprofiles "github.com/crystara/crystara-backend/internal/profiles"
	"github.com/crystara/crystara-backend/pkg/logger"
	"github.com/crystara/crystara-backend/pkg/types"

	"github.com/crystara/crystara-backend/api/middleware"
	"github.com/crystara/crystara-backend/api/responses"
	"github.com/crystara/crystara-backend/api/validators"
)

type onboardingRequest struct {
	Name           string  `json:"name" validate:"required,max=120"`
	Phone          string  `json:"phone" validate:"required,max=20"`
	AddressStreet  *string `json:"address_street" validate:"omitempty,max=200"`
	AddressCity    *string `json:"address_city" validate:"omitempty,max=80"`
	AddressState   *string `json:"address_state" validate:"omitempty,max=80"`
	AddressPincode *string `json:"address_pincode" validate:"omitempty,max=12"`
}

type updateProfileRequest struct {
	Name           types.OptionalString  `json:"name" validate:"omitempty,max=120"`
	Phone          types.OptionalString  `json:"phone" validate:"omitempty,max=20"`
	AddressStreet  types.OptionalString  `json:"address_street" validate:"omitempty,max=200"`
	AddressCity    types.OptionalString  `json:"address_city" validate:"omitempty,max=80"`
	AddressState   types.OptionalString  `json:"address_state" validate:"omitempty,max=80"`
	AddressPincode types.OptionalString  `json:"address_pincode" validate:"omitempty,max=12"`
	SavedAddresses *types.SavedAddresses `json:"saved_addresses"`
}

// SaveOnboardingProfile records the caller's first-time profile. The email
// is taken from the access token, never from the body.
func SaveOnboardingProfile(svc internalprofiles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req onboardingRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		email := middleware.UserEmailFromContext(r.Context())
		profile, err := svc.SaveOnboarding(r.Context(), userID, email, internalprofiles.OnboardingInput{
			Name:           validators.SanitizeString(req.Name, 120),
			Phone:          validators.SanitizeString(req.Phone, 20),
			AddressStreet:  req.AddressStreet,
			AddressCity:    req.AddressCity,
			AddressState:   req.AddressState,
			AddressPincode: req.AddressPincode,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, profile)
	}
}

// OnboardingStatus answers whether the caller has finished onboarding.
// Lookup failures read as not onboarded so the storefront can always route.
func OnboardingStatus(svc internalprofiles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, svc.Status(r.Context(), userID))
	}
}

// GetProfile returns the caller's profile.
func GetProfile(svc internalprofiles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		profile, err := svc.Get(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, profile)
	}
}

// UpdateProfile applies a partial patch. Absent fields are left alone;
// explicit nulls clear the column.
func UpdateProfile(svc internalprofiles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req updateProfileRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		profile, err := svc.Update(r.Context(), userID, internalprofiles.UpdateProfileInput{
			Name:           req.Name,
			Phone:          req.Phone,
			AddressStreet:  req.AddressStreet,
			AddressCity:    req.AddressCity,
			AddressState:   req.AddressState,
			AddressPincode: req.AddressPincode,
			SavedAddresses: req.SavedAddresses,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, profile)
	}
}
