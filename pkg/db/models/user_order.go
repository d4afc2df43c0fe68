package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/maxscharwath/tacocrew-sub004/pkg/enums"
	"github.com/maxscharwath/tacocrew-sub004/pkg/types"
)

// UserOrder is one participant's cart inside a group order. A user gets at
// most one order per group (unique index on group_order_id + user_id).
type UserOrder struct {
	ID           uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	GroupOrderID uuid.UUID             `gorm:"column:group_order_id;type:uuid;not null;uniqueIndex:idx_user_orders_group_user"`
	UserID       uuid.UUID             `gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_user_orders_group_user"`
	Status       enums.UserOrderStatus `gorm:"column:status;type:text;not null;default:'draft'"`
	Items        types.OrderItems      `gorm:"column:items;type:jsonb;serializer:json"`
	CreatedAt    time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}

// BeforeCreate assigns the id app-side so created orders carry a usable id
// on any database, not just ones with gen_random_uuid().
func (u *UserOrder) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
