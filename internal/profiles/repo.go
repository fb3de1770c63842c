package profiles

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/crystara/crystara-backend/pkg/db/models"
	"github.com/crystara/crystara-backend/pkg/enums"
	"github.com/crystara/crystara-backend/pkg/types"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a profiles repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

// Upsert inserts or refreshes the row keyed by user id. Email is written only
// on insert; it mirrors the identity provider and never changes afterwards.
func (r *repository) Upsert(ctx context.Context, profile *models.Profile) (*models.Profile, error) {
	if profile.SavedAddresses == nil {
		// The json serializer turns a nil slice into SQL NULL, which the
		// NOT NULL saved_addresses column rejects.
		profile.SavedAddresses = types.SavedAddresses{}
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name",
				"phone",
				"address_street",
				"address_city",
				"address_state",
				"address_pincode",
				"updated_at",
			}),
		}).
		Create(profile).Error
	if err != nil {
		return nil, err
	}
	return r.FindByUserID(ctx, profile.UserID)
}

func (r *repository) FindByUserID(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *repository) Update(ctx context.Context, userID uuid.UUID, updates map[string]any) (*models.Profile, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Profile{}).
		Where("user_id = ?", userID).
		Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.FindByUserID(ctx, userID)
}

func (r *repository) RoleOf(ctx context.Context, userID uuid.UUID) (enums.ProfileRole, error) {
	var profile models.Profile
	err := r.db.WithContext(ctx).
		Select("role").
		Where("user_id = ?", userID).
		First(&profile).Error
	if err != nil {
		return "", err
	}
	return profile.Role, nil
}
