package grouporders

import (
	"time"

	"github.com/google/uuid"

	"github.com/maxscharwath/tacocrew-sub004/pkg/enums"
	"github.com/maxscharwath/tacocrew-sub004/pkg/types"
)

// CreateGroupOrderInput captures the payload required to open a new group
// ordering window.
type CreateGroupOrderInput struct {
	LeaderID  uuid.UUID `validate:"required"`
	Name      *string   `validate:"omitempty,max=120"`
	StartDate time.Time `validate:"required"`
	EndDate   time.Time `validate:"required"`
}

// UpdateGroupOrderInput is a partial update; nil fields are left untouched.
type UpdateGroupOrderInput struct {
	Name      *string
	Status    *enums.GroupOrderStatus
	StartDate *time.Time
	EndDate   *time.Time
}

// UpsertOrderInput carries one participant's replacement cart.
type UpsertOrderInput struct {
	UserID uuid.UUID        `validate:"required"`
	Items  types.OrderItems `validate:"required"`
}
