package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/maxscharwath/tacocrew-sub004/pkg/enums"
)

// GroupOrder is one shared ordering window owned by a leader user.
type GroupOrder struct {
	ID        uuid.UUID              `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	LeaderID  uuid.UUID              `gorm:"column:leader_id;type:uuid;not null"`
	Name      *string                `gorm:"column:name"`
	Status    enums.GroupOrderStatus `gorm:"column:status;type:text;not null;default:'open'"`
	StartDate time.Time              `gorm:"column:start_date;not null"`
	EndDate   time.Time              `gorm:"column:end_date;not null"`
	Orders    []UserOrder            `gorm:"foreignKey:GroupOrderID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time              `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time              `gorm:"column:updated_at;autoUpdateTime"`
}

// BeforeCreate assigns the id app-side so created aggregates carry a usable
// id on any database, not just ones with gen_random_uuid().
func (g *GroupOrder) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

// AcceptsOrders reports whether participant carts may still change.
func (g GroupOrder) AcceptsOrders(now time.Time) bool {
	return g.Status == enums.GroupOrderStatusOpen &&
		!now.Before(g.StartDate) &&
		!now.After(g.EndDate)
}
