package profiles

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/crystara/crystara-backend/pkg/db/models"
	"github.com/crystara/crystara-backend/pkg/enums"
)

// Repository defines persistence operations for the profiles table.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Upsert(ctx context.Context, profile *models.Profile) (*models.Profile, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
	Update(ctx context.Context, userID uuid.UUID, updates map[string]any) (*models.Profile, error)
	RoleOf(ctx context.Context, userID uuid.UUID) (enums.ProfileRole, error)
}
