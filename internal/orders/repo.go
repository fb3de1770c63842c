package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/crystara/crystara-backend/pkg/db/models"
	"github.com/crystara/crystara-backend/pkg/enums"
	"github.com/crystara/crystara-backend/pkg/pagination"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds an orders repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, order *models.Order) (*models.Order, error) {
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

func (r *repository) FindByPaymentID(ctx context.Context, paymentID string) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Where("payment_id = ?", paymentID).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) FindByIDForUser(ctx context.Context, orderID, userID uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", orderID, userID).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID, params pagination.Params) (*UserOrderList, error) {
	params = params.Normalize()
	scope := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&models.Order{}).Where("user_id = ?", userID)
	}

	var total int64
	if err := scope().Count(&total).Error; err != nil {
		return nil, err
	}

	var rows []models.Order
	err := scope().
		Order("created_at DESC").
		Limit(params.Limit).
		Offset(params.Offset()).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	return &UserOrderList{
		Orders: rows,
		Page:   pagination.PageFor(params, total),
	}, nil
}

func (r *repository) AdminList(ctx context.Context, params pagination.Params, filters AdminOrderFilters) (*AdminOrderList, error) {
	params = params.Normalize()

	scope := func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(&models.Order{})
		if filters.Status != nil {
			q = q.Where("orders.status = ?", *filters.Status)
		}
		if filters.UserID != nil {
			q = q.Where("orders.user_id = ?", *filters.UserID)
		}
		return q
	}

	var total int64
	if err := scope().Count(&total).Error; err != nil {
		return nil, err
	}

	var rows []AdminOrderRow
	err := scope().
		Select("orders.*, profiles.email AS user_email, profiles.name AS user_name").
		Joins("LEFT JOIN profiles ON profiles.user_id = orders.user_id").
		Order("orders.created_at DESC").
		Limit(params.Limit).
		Offset(params.Offset()).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	return &AdminOrderList{
		Orders: rows,
		Page:   pagination.PageFor(params, total),
	}, nil
}

func (r *repository) UpdateStatus(ctx context.Context, orderID uuid.UUID, status enums.OrderStatus) (*models.Order, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", orderID).
		Update("status", status)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	var order models.Order
	if err := r.db.WithContext(ctx).Where("id = ?", orderID).First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) Stats(ctx context.Context) (*Stats, error) {
	var stats Stats
	err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Select(
			// Revenue is the naive sum across every status; the dashboard
			// tracks gross volume, not settled funds.
			"COUNT(*) AS total_orders, " +
				"COALESCE(SUM(amount), 0) AS total_revenue, " +
				"COALESCE(SUM(CASE WHEN status = 'completed' THEN 1 ELSE 0 END), 0) AS completed_orders, " +
				"COALESCE(SUM(CASE WHEN status = 'pending' THEN 1 ELSE 0 END), 0) AS pending_orders, " +
				"COALESCE(SUM(CASE WHEN status = 'failed' THEN 1 ELSE 0 END), 0) AS failed_orders").
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
