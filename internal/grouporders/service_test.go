package grouporders

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxscharwath/tacocrew-sub004/pkg/enums"
	pkgerrors "github.com/maxscharwath/tacocrew-sub004/pkg/errors"
	"github.com/maxscharwath/tacocrew-sub004/pkg/types"
)

func newTestService(t *testing.T) (Service, *Repository) {
	t.Helper()

	db := setupGroupOrdersTestDB(t)
	repo := NewRepository(db)
	svc, err := NewService(repo)
	require.NoError(t, err)
	return svc, repo
}

func requireCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()

	typed := pkgerrors.As(err)
	require.NotNil(t, typed, "expected coded error, got %v", err)
	assert.Equal(t, code, typed.Code())
}

func TestServiceCreateValidatesWindow(t *testing.T) {
	svc, _ := newTestService(t)
	now := time.Now().UTC()

	_, err := svc.Create(context.Background(), CreateGroupOrderInput{
		LeaderID:  uuid.New(),
		StartDate: now,
		EndDate:   now.Add(-time.Hour),
	})
	requireCode(t, err, pkgerrors.CodeValidation)
}

func TestServiceCreateOpensOrder(t *testing.T) {
	svc, _ := newTestService(t)
	now := time.Now().UTC()

	order, err := svc.Create(context.Background(), CreateGroupOrderInput{
		LeaderID:  uuid.New(),
		StartDate: now,
		EndDate:   now.Add(2 * time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, enums.GroupOrderStatusOpen, order.Status)
	assert.NotEqual(t, uuid.Nil, order.ID)
}

func TestServiceGetUnknownOrder(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Get(context.Background(), uuid.New())
	requireCode(t, err, pkgerrors.CodeNotFound)
}

func TestServiceUpdateRejectsManualSubmit(t *testing.T) {
	svc, repo := newTestService(t)
	group := seedGroupOrder(t, repo.db, enums.GroupOrderStatusOpen)

	submitted := enums.GroupOrderStatusSubmitted
	_, err := svc.Update(context.Background(), group.ID, UpdateGroupOrderInput{Status: &submitted})
	requireCode(t, err, pkgerrors.CodeStateConflict)
}

func TestServiceUpdateClosesOpenOrder(t *testing.T) {
	svc, repo := newTestService(t)
	group := seedGroupOrder(t, repo.db, enums.GroupOrderStatusOpen)

	closed := enums.GroupOrderStatusClosed
	updated, err := svc.Update(context.Background(), group.ID, UpdateGroupOrderInput{Status: &closed})
	require.NoError(t, err)
	assert.Equal(t, enums.GroupOrderStatusClosed, updated.Status)
}

func TestServiceUpsertUserOrderReplacesCart(t *testing.T) {
	svc, repo := newTestService(t)
	group := seedGroupOrder(t, repo.db, enums.GroupOrderStatusOpen)
	ctx := context.Background()
	userID := uuid.New()

	first, err := svc.UpsertUserOrder(ctx, group.ID, UpsertOrderInput{UserID: userID, Items: sampleItems()})
	require.NoError(t, err)
	assert.Equal(t, enums.UserOrderStatusDraft, first.Status)

	replacement := types.OrderItems{
		Drinks: []types.DrinkLine{{ID: uuid.New(), Qty: 3}},
	}
	second, err := svc.UpsertUserOrder(ctx, group.ID, UpsertOrderInput{UserID: userID, Items: replacement})
	require.NoError(t, err)

	// Replace, not merge: the previous taco line is gone.
	assert.Equal(t, first.ID, second.ID)
	assert.Empty(t, second.Items.Tacos)
	require.Len(t, second.Items.Drinks, 1)
	assert.Equal(t, 3, second.Items.Drinks[0].Qty)
}

func TestServiceUpsertUserOrderRejectsClosedGroup(t *testing.T) {
	svc, repo := newTestService(t)
	group := seedGroupOrder(t, repo.db, enums.GroupOrderStatusClosed)

	_, err := svc.UpsertUserOrder(context.Background(), group.ID, UpsertOrderInput{UserID: uuid.New(), Items: sampleItems()})
	requireCode(t, err, pkgerrors.CodeStateConflict)
}

func TestServiceUpsertUserOrderRejectsExpiredWindow(t *testing.T) {
	svc, repo := newTestService(t)
	group := seedGroupOrder(t, repo.db, enums.GroupOrderStatusOpen)

	svc.(*service).now = func() time.Time { return group.EndDate.Add(time.Minute) }

	_, err := svc.UpsertUserOrder(context.Background(), group.ID, UpsertOrderInput{UserID: uuid.New(), Items: sampleItems()})
	requireCode(t, err, pkgerrors.CodeStateConflict)
}

func TestServiceUpsertUserOrderValidatesStructure(t *testing.T) {
	svc, repo := newTestService(t)
	group := seedGroupOrder(t, repo.db, enums.GroupOrderStatusOpen)
	ctx := context.Background()

	_, err := svc.UpsertUserOrder(ctx, group.ID, UpsertOrderInput{UserID: uuid.New(), Items: types.OrderItems{}})
	requireCode(t, err, pkgerrors.CodeValidation)

	meatless := types.OrderItems{
		Tacos: []types.TacoLine{{Size: enums.TacoSizeM, Qty: 1}},
	}
	_, err = svc.UpsertUserOrder(ctx, group.ID, UpsertOrderInput{UserID: uuid.New(), Items: meatless})
	requireCode(t, err, pkgerrors.CodeValidation)
}
