// Package submission drives the one-shot handoff of a group order to the
// external ordering backend: merge, validate, replay, checkout, and only
// then flip local state.
package submission

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/maxscharwath/tacocrew-sub004/internal/stock"
	"github.com/maxscharwath/tacocrew-sub004/pkg/db/models"
	pkgerrors "github.com/maxscharwath/tacocrew-sub004/pkg/errors"
	"github.com/maxscharwath/tacocrew-sub004/pkg/logger"
	"github.com/maxscharwath/tacocrew-sub004/pkg/metrics"
	"github.com/maxscharwath/tacocrew-sub004/pkg/ordering"
	"github.com/maxscharwath/tacocrew-sub004/pkg/types"
)

type orderStore interface {
	FindByIDWithOrders(ctx context.Context, id uuid.UUID) (*models.GroupOrder, error)
	FinalizeSubmission(ctx context.Context, groupOrderID uuid.UUID) (bool, error)
}

type stockGateway interface {
	Fetch(ctx context.Context) (*stock.Snapshot, error)
}

type cartWriter interface {
	AddTaco(ctx context.Context, session *ordering.Session, params ordering.TacoParams) error
	AddExtra(ctx context.Context, session *ordering.Session, params ordering.ExtraParams) error
	AddDrink(ctx context.Context, session *ordering.Session, params ordering.ItemParams) error
	AddDessert(ctx context.Context, session *ordering.Session, params ordering.ItemParams) error
}

type backendClient interface {
	cartWriter
	OpenSession(ctx context.Context) (*ordering.Session, error)
	CloseSession(ctx context.Context, session *ordering.Session) error
	Checkout(ctx context.Context, session *ordering.Session, params ordering.CheckoutParams) (*ordering.CheckoutResult, error)
}

// SubmitInput carries the leader-provided checkout details.
type SubmitInput struct {
	Customer types.Customer `validate:"required"`
	Delivery types.Delivery `validate:"required"`
}

// Result is the successful outcome of a group submission.
type Result struct {
	ExternalOrderID string `json:"external_order_id"`
	CorrelationID   string `json:"correlation_id"`
	LineCount       int    `json:"line_count"`
}

// Service submits group orders to the external backend.
type Service interface {
	Submit(ctx context.Context, groupOrderID uuid.UUID, input SubmitInput) (*Result, error)
}

type service struct {
	repo        orderStore
	stock       stockGateway
	backend     backendClient
	logger      *logger.Logger
	metrics     *metrics.SubmissionMetrics
	concurrency int
	now         func() time.Time
}

// NewService builds the submission orchestrator.
func NewService(repo orderStore, stockSvc stockGateway, backend backendClient, logg *logger.Logger, m *metrics.SubmissionMetrics, replayConcurrency int) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("group order store required")
	}
	if stockSvc == nil {
		return nil, fmt.Errorf("stock gateway required")
	}
	if backend == nil {
		return nil, fmt.Errorf("ordering backend client required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	if replayConcurrency < 1 {
		replayConcurrency = 1
	}
	return &service{
		repo:        repo,
		stock:       stockSvc,
		backend:     backend,
		logger:      logg,
		metrics:     m,
		concurrency: replayConcurrency,
		now:         time.Now,
	}, nil
}

// Submit runs the full submission pipeline. Local state is mutated only
// after the backend has accepted the checkout; every earlier failure leaves
// the group order and all participant carts exactly as they were.
func (s *service) Submit(ctx context.Context, groupOrderID uuid.UUID, input SubmitInput) (*Result, error) {
	ctx = s.logger.WithGroupOrderID(ctx, groupOrderID.String())
	started := s.now()

	result, err := s.submit(ctx, groupOrderID, input)
	s.observe(started, err)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *service) observe(started time.Time, err error) {
	if s.metrics == nil {
		return
	}
	s.metrics.Observe(s.now().Sub(started), err == nil)
}

func (s *service) submit(ctx context.Context, groupOrderID uuid.UUID, input SubmitInput) (*Result, error) {
	group, err := s.loadEligibleGroup(ctx, groupOrderID)
	if err != nil {
		return nil, err
	}

	merged := mergeItems(group.Orders)

	snapshot, err := s.stock.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	if err := stock.ValidateAvailability(merged, snapshot); err != nil {
		return nil, err
	}

	session, err := s.backend.OpenSession(ctx)
	if err != nil {
		return nil, err
	}
	defer s.closeSession(ctx, session)

	lines, err := buildLines(s.backend, session, merged, snapshot)
	if err != nil {
		return nil, err
	}

	first, all := replayAll(ctx, lines, s.concurrency)
	if first != nil {
		s.logger.Error(ctx, "cart replay failed", all)
		return nil, first
	}

	correlationID := newCorrelationID(s.now())
	checkout, err := s.backend.Checkout(ctx, session, checkoutParams(input, correlationID))
	if err != nil {
		return nil, err
	}

	if err := s.finalize(ctx, group.ID); err != nil {
		// The backend order exists; surface it so the failure is traceable.
		typed := pkgerrors.Wrap(pkgerrors.CodeInternal, err, "group order submitted upstream but local finalize failed")
		return nil, typed.WithDetails(map[string]any{
			"external_order_id": checkout.OrderID,
			"correlation_id":    correlationID,
		})
	}

	s.logger.Info(s.logger.WithFields(ctx, map[string]any{
		"external_order_id": checkout.OrderID,
		"correlation_id":    correlationID,
		"line_count":        len(lines),
	}), "group order submitted")

	return &Result{
		ExternalOrderID: checkout.OrderID,
		CorrelationID:   correlationID,
		LineCount:       len(lines),
	}, nil
}

// loadEligibleGroup enforces every precondition that must hold before any
// external call is made.
func (s *service) loadEligibleGroup(ctx context.Context, groupOrderID uuid.UUID) (*models.GroupOrder, error) {
	group, err := s.repo.FindByIDWithOrders(ctx, groupOrderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "group order not found")
		}
		return nil, err
	}

	if !group.AcceptsOrders(s.now()) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "group order is not open for submission")
	}
	if len(group.Orders) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "group order has no participant orders")
	}
	for _, order := range group.Orders {
		if order.Items.IsEmpty() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("participant %s has an empty cart", order.UserID))
		}
	}
	return group, nil
}

// closeSession tears the backend session down exactly once per submission.
// Failures are logged and swallowed: teardown must never mask the result of
// the submission itself.
func (s *service) closeSession(ctx context.Context, session *ordering.Session) {
	if err := s.backend.CloseSession(ctx, session); err != nil {
		s.logger.Warn(s.logger.WithField(ctx, "error", err.Error()), "backend session close failed")
	}
}

func checkoutParams(input SubmitInput, correlationID string) ordering.CheckoutParams {
	params := ordering.CheckoutParams{
		FirstName:     input.Customer.FirstName,
		LastName:      input.Customer.LastName,
		Email:         input.Customer.Email,
		Phone:         input.Customer.Phone,
		DeliveryType:  string(input.Delivery.Type),
		CorrelationID: correlationID,
	}
	if !input.Delivery.RequestedAt.IsZero() {
		requested := input.Delivery.RequestedAt
		params.RequestedAt = &requested
	}
	if input.Delivery.Address != nil {
		params.AddressLine1 = input.Delivery.Address.Line1
		params.City = input.Delivery.Address.City
		params.PostalCode = input.Delivery.Address.PostalCode
	}
	return params
}

// finalize flips local state after the backend accepted the order: every
// participant cart and the group order itself, in one transaction.
func (s *service) finalize(ctx context.Context, groupOrderID uuid.UUID) error {
	flipped, err := s.repo.FinalizeSubmission(ctx, groupOrderID)
	if err != nil {
		return err
	}
	if !flipped {
		// A concurrent submission won the status flip. The backend order
		// from this attempt still exists; log loudly and move on.
		s.logger.Warn(ctx, "group order status was flipped by a concurrent submission")
	}
	return nil
}
