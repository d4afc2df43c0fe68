package grouporders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/maxscharwath/tacocrew-sub004/pkg/db"
	"github.com/maxscharwath/tacocrew-sub004/pkg/db/models"
	"github.com/maxscharwath/tacocrew-sub004/pkg/enums"
	pkgerrors "github.com/maxscharwath/tacocrew-sub004/pkg/errors"
	"github.com/maxscharwath/tacocrew-sub004/pkg/types"
)

// Service exposes group order lifecycle operations.
type Service interface {
	Create(ctx context.Context, input CreateGroupOrderInput) (*models.GroupOrder, error)
	Get(ctx context.Context, id uuid.UUID) (*models.GroupOrder, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateGroupOrderInput) (*models.GroupOrder, error)
	UpsertUserOrder(ctx context.Context, groupOrderID uuid.UUID, input UpsertOrderInput) (*models.UserOrder, error)
}

type service struct {
	repo *Repository
	now  func() time.Time
}

// NewService builds the group order service.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("group order repository required")
	}
	return &service{repo: repo, now: time.Now}, nil
}

func notFound(err error, message string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, message)
	}
	return err
}

func (s *service) Create(ctx context.Context, input CreateGroupOrderInput) (*models.GroupOrder, error) {
	if input.LeaderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "leader id required")
	}
	if !input.EndDate.After(input.StartDate) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "end date must be after start date")
	}

	order := &models.GroupOrder{
		LeaderID:  input.LeaderID,
		Name:      input.Name,
		Status:    enums.GroupOrderStatusOpen,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
	}
	if err := s.repo.Create(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.GroupOrder, error) {
	order, err := s.repo.FindByIDWithOrders(ctx, id)
	if err != nil {
		return nil, notFound(err, "group order not found")
	}
	return order, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateGroupOrderInput) (*models.GroupOrder, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "group order not found")
	}

	fields := map[string]any{}
	if input.Name != nil {
		fields["name"] = *input.Name
	}

	startDate := order.StartDate
	endDate := order.EndDate
	if input.StartDate != nil {
		startDate = *input.StartDate
		fields["start_date"] = startDate
	}
	if input.EndDate != nil {
		endDate = *input.EndDate
		fields["end_date"] = endDate
	}
	if !endDate.After(startDate) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "end date must be after start date")
	}

	if input.Status != nil {
		if err := validateStatusChange(order.Status, *input.Status); err != nil {
			return nil, err
		}
		fields["status"] = *input.Status
	}

	if len(fields) > 0 {
		if err := s.repo.UpdateFields(ctx, id, fields); err != nil {
			return nil, err
		}
	}
	return s.repo.FindByID(ctx, id)
}

// validateStatusChange enforces the manual lifecycle. Submitted is owned by
// the submission engine and can never be set by hand.
func validateStatusChange(current, next enums.GroupOrderStatus) error {
	if !next.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown group order status")
	}
	if next == enums.GroupOrderStatusSubmitted {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "submitted status is set by submission only")
	}
	if current != enums.GroupOrderStatusOpen && current != next {
		return pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("cannot move group order from %s to %s", current, next))
	}
	return nil
}

func (s *service) UpsertUserOrder(ctx context.Context, groupOrderID uuid.UUID, input UpsertOrderInput) (*models.UserOrder, error) {
	if input.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	if err := validateItems(input.Items); err != nil {
		return nil, err
	}

	group, err := s.repo.FindByID(ctx, groupOrderID)
	if err != nil {
		return nil, notFound(err, "group order not found")
	}
	if !group.AcceptsOrders(s.now()) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "group order no longer accepts carts")
	}

	existing, err := s.repo.FindUserOrder(ctx, groupOrderID, input.UserID)
	switch {
	case err == nil:
		if err := s.repo.UpdateUserOrderItems(ctx, existing.ID, input.Items); err != nil {
			return nil, err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		order := &models.UserOrder{
			GroupOrderID: groupOrderID,
			UserID:       input.UserID,
			Status:       enums.UserOrderStatusDraft,
			Items:        input.Items,
		}
		if createErr := s.repo.CreateUserOrder(ctx, order); createErr != nil {
			// A concurrent first write can land between the lookup and the
			// insert; fall back to updating the row that beat us.
			if !db.IsUniqueViolation(createErr, "idx_user_orders_group_user") {
				return nil, createErr
			}
			existing, err = s.repo.FindUserOrder(ctx, groupOrderID, input.UserID)
			if err != nil {
				return nil, err
			}
			if err := s.repo.UpdateUserOrderItems(ctx, existing.ID, input.Items); err != nil {
				return nil, err
			}
		}
	default:
		return nil, err
	}

	return s.repo.FindUserOrder(ctx, groupOrderID, input.UserID)
}

// validateItems checks cart structure only; availability against live stock
// is the submission engine's job.
func validateItems(items types.OrderItems) error {
	if items.IsEmpty() {
		return pkgerrors.New(pkgerrors.CodeValidation, "cart must contain at least one item")
	}
	for i, taco := range items.Tacos {
		if !taco.Size.IsValid() {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("taco %d: unknown size", i))
		}
		if len(taco.Meats) == 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("taco %d: at least one meat required", i))
		}
		if taco.Qty < 1 {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("taco %d: quantity must be positive", i))
		}
		for j, meat := range taco.Meats {
			if meat.ID == uuid.Nil || meat.Qty < 1 {
				return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("taco %d meat %d: invalid portion", i, j))
			}
		}
	}
	for i, extra := range items.Extras {
		if extra.ID == uuid.Nil || extra.Qty < 1 {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("extra %d: invalid line", i))
		}
	}
	for i, drink := range items.Drinks {
		if drink.ID == uuid.Nil || drink.Qty < 1 {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("drink %d: invalid line", i))
		}
	}
	for i, dessert := range items.Desserts {
		if dessert.ID == uuid.Nil || dessert.Qty < 1 {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("dessert %d: invalid line", i))
		}
	}
	return nil
}
