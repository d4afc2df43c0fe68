// Package grouporders owns the local lifecycle of group orders and their
// participant carts.
package grouporders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/maxscharwath/tacocrew-sub004/pkg/db/models"
	"github.com/maxscharwath/tacocrew-sub004/pkg/enums"
	"github.com/maxscharwath/tacocrew-sub004/pkg/types"
)

// Repository encapsulates group order persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the given transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Create inserts a new group order.
func (r *Repository) Create(ctx context.Context, order *models.GroupOrder) error {
	return r.db.WithContext(ctx).Create(order).Error
}

// FindByID loads a group order without its participant carts.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.GroupOrder, error) {
	var order models.GroupOrder
	err := r.db.WithContext(ctx).First(&order, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// FindByIDWithOrders loads a group order together with every participant cart.
func (r *Repository) FindByIDWithOrders(ctx context.Context, id uuid.UUID) (*models.GroupOrder, error) {
	var order models.GroupOrder
	err := r.db.WithContext(ctx).
		Preload("Orders").
		First(&order, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateFields applies a partial update to a group order.
func (r *Repository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.GroupOrder{}).
		Where("id = ?", id).
		Updates(fields).
		Error
}

// UpdateStatusIfOpen flips a group order's status only while it is still
// open and reports whether the flip happened. Zero rows means another
// writer got there first, or the order never existed.
func (r *Repository) UpdateStatusIfOpen(ctx context.Context, id uuid.UUID, status enums.GroupOrderStatus) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.GroupOrder{}).
		Where("id = ? AND status = ?", id, enums.GroupOrderStatusOpen).
		Update("status", status)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// FindUserOrder loads one participant's cart inside a group.
func (r *Repository) FindUserOrder(ctx context.Context, groupOrderID, userID uuid.UUID) (*models.UserOrder, error) {
	var order models.UserOrder
	err := r.db.WithContext(ctx).
		First(&order, "group_order_id = ? AND user_id = ?", groupOrderID, userID).
		Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// CreateUserOrder inserts a participant cart. The unique index on
// (group_order_id, user_id) rejects a second cart for the same user.
func (r *Repository) CreateUserOrder(ctx context.Context, order *models.UserOrder) error {
	return r.db.WithContext(ctx).Create(order).Error
}

// UpdateUserOrderItems replaces the items of an existing participant cart.
func (r *Repository) UpdateUserOrderItems(ctx context.Context, id uuid.UUID, items types.OrderItems) error {
	return r.db.WithContext(ctx).
		Model(&models.UserOrder{}).
		Where("id = ?", id).
		Update("items", items).
		Error
}

// MarkUserOrdersSubmitted flips every draft cart of the group to submitted.
func (r *Repository) MarkUserOrdersSubmitted(ctx context.Context, groupOrderID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.UserOrder{}).
		Where("group_order_id = ? AND status = ?", groupOrderID, enums.UserOrderStatusDraft).
		Update("status", enums.UserOrderStatusSubmitted).
		Error
}

// FinalizeSubmission flips every draft cart and then the group order itself
// to submitted, in one transaction. Reports whether the group order flip
// happened; zero rows means another writer got there first.
func (r *Repository) FinalizeSubmission(ctx context.Context, groupOrderID uuid.UUID) (bool, error) {
	flipped := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := r.WithTx(tx)
		if err := txRepo.MarkUserOrdersSubmitted(ctx, groupOrderID); err != nil {
			return err
		}
		var txErr error
		flipped, txErr = txRepo.UpdateStatusIfOpen(ctx, groupOrderID, enums.GroupOrderStatusSubmitted)
		return txErr
	})
	if err != nil {
		return false, err
	}
	return flipped, nil
}
