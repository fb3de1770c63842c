package profiles

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/crystara/crystara-backend/pkg/db/models"
	"github.com/crystara/crystara-backend/pkg/enums"
	pkgerrors "github.com/crystara/crystara-backend/pkg/errors"
	"github.com/crystara/crystara-backend/pkg/types"
)

// Service defines profile operations above the repository.
type Service interface {
	SaveOnboarding(ctx context.Context, userID uuid.UUID, email string, input OnboardingInput) (*models.Profile, error)
	Status(ctx context.Context, userID uuid.UUID) OnboardingStatus
	Get(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
	Update(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (*models.Profile, error)
	RoleOf(ctx context.Context, userID uuid.UUID) (enums.ProfileRole, error)
}

type service struct {
	repo Repository
}

// NewService builds a profile service bound to the repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("profiles repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) SaveOnboarding(ctx context.Context, userID uuid.UUID, email string, input OnboardingInput) (*models.Profile, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if strings.TrimSpace(input.Phone) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "phone is required")
	}

	profile := &models.Profile{
		UserID:         userID,
		Email:          email,
		Name:           input.Name,
		Phone:          input.Phone,
		AddressStreet:  input.AddressStreet,
		AddressCity:    input.AddressCity,
		AddressState:   input.AddressState,
		AddressPincode: input.AddressPincode,
	}

	saved, err := s.repo.Upsert(ctx, profile)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "saving profile")
	}
	return saved, nil
}

// Status never surfaces an error: a missing row or a failed lookup both read
// as "not onboarded". Any non-empty name counts, whitespace included.
func (s *service) Status(ctx context.Context, userID uuid.UUID) OnboardingStatus {
	profile, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return OnboardingStatus{IsOnboarded: false}
	}
	return OnboardingStatus{IsOnboarded: profile.Name != ""}
}

func (s *service) Get(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	profile, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "profile not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading profile")
	}
	return profile, nil
}

// Update applies a partial patch. Only fields present in the request are
// written; an explicit null clears the column. The update timestamp always
// refreshes, even for a patch that changes nothing else.
func (s *service) Update(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (*models.Profile, error) {
	updates := map[string]any{
		"updated_at": time.Now().UTC(),
	}

	assign := func(column string, field types.OptionalString) {
		if field.Set {
			updates[column] = field.Value
		}
	}
	// name and phone columns are NOT NULL; an explicit null patch writes the
	// empty string instead of tripping the constraint.
	assignRequired := func(column string, field types.OptionalString) {
		if !field.Set {
			return
		}
		if field.Value == nil {
			updates[column] = ""
			return
		}
		updates[column] = *field.Value
	}
	assignRequired("name", input.Name)
	assignRequired("phone", input.Phone)
	assign("address_street", input.AddressStreet)
	assign("address_city", input.AddressCity)
	assign("address_state", input.AddressState)
	assign("address_pincode", input.AddressPincode)
	if input.SavedAddresses != nil {
		// Map updates skip the model's json serializer, so the list is
		// encoded here before it reaches the driver.
		encoded, err := json.Marshal(*input.SavedAddresses)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid saved addresses")
		}
		updates["saved_addresses"] = string(encoded)
	}

	profile, err := s.repo.Update(ctx, userID, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "profile not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating profile")
	}
	return profile, nil
}

func (s *service) RoleOf(ctx context.Context, userID uuid.UUID) (enums.ProfileRole, error) {
	role, err := s.repo.RoleOf(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return enums.ProfileRoleCustomer, nil
		}
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading profile role")
	}
	return role, nil
}
