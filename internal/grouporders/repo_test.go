package grouporders

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/maxscharwath/tacocrew-sub004/pkg/db/models"
	"github.com/maxscharwath/tacocrew-sub004/pkg/enums"
	"github.com/maxscharwath/tacocrew-sub004/pkg/types"
)

func setupGroupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	groupOrders := `
CREATE TABLE IF NOT EXISTS group_orders (
  id TEXT PRIMARY KEY,
  leader_id TEXT NOT NULL,
  name TEXT,
  status TEXT NOT NULL DEFAULT 'open',
  start_date DATETIME NOT NULL,
  end_date DATETIME NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
	userOrders := `
CREATE TABLE IF NOT EXISTS user_orders (
  id TEXT PRIMARY KEY,
  group_order_id TEXT NOT NULL,
  user_id TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'draft',
  items TEXT,
  created_at DATETIME,
  updated_at DATETIME,
  UNIQUE (group_order_id, user_id)
);`

	require.NoError(t, db.Exec(groupOrders).Error)
	require.NoError(t, db.Exec(userOrders).Error)
	return db
}

func seedGroupOrder(t *testing.T, db *gorm.DB, status enums.GroupOrderStatus) *models.GroupOrder {
	t.Helper()

	now := time.Now().UTC()
	order := &models.GroupOrder{
		ID:        uuid.New(),
		LeaderID:  uuid.New(),
		Status:    status,
		StartDate: now.Add(-time.Hour),
		EndDate:   now.Add(time.Hour),
	}
	require.NoError(t, db.Create(order).Error)
	return order
}

func sampleItems() types.OrderItems {
	return types.OrderItems{
		Tacos: []types.TacoLine{{
			Size:  enums.TacoSizeL,
			Meats: []types.MeatPortion{{ID: uuid.New(), Qty: 1}},
			Qty:   1,
		}},
	}
}

func TestRepositoryFindByIDWithOrders(t *testing.T) {
	db := setupGroupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	group := seedGroupOrder(t, db, enums.GroupOrderStatusOpen)
	order := &models.UserOrder{
		ID:           uuid.New(),
		GroupOrderID: group.ID,
		UserID:       uuid.New(),
		Status:       enums.UserOrderStatusDraft,
		Items:        sampleItems(),
	}
	require.NoError(t, repo.CreateUserOrder(ctx, order))

	loaded, err := repo.FindByIDWithOrders(ctx, group.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Orders, 1)
	assert.Equal(t, order.UserID, loaded.Orders[0].UserID)
	require.Len(t, loaded.Orders[0].Items.Tacos, 1)
}

func TestRepositoryUpdateStatusIfOpen(t *testing.T) {
	db := setupGroupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	group := seedGroupOrder(t, db, enums.GroupOrderStatusOpen)

	flipped, err := repo.UpdateStatusIfOpen(ctx, group.ID, enums.GroupOrderStatusSubmitted)
	require.NoError(t, err)
	assert.True(t, flipped)

	// Second flip must lose: the order is no longer open.
	flipped, err = repo.UpdateStatusIfOpen(ctx, group.ID, enums.GroupOrderStatusCanceled)
	require.NoError(t, err)
	assert.False(t, flipped)

	loaded, err := repo.FindByID(ctx, group.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.GroupOrderStatusSubmitted, loaded.Status)
}

func TestRepositoryUniqueUserOrderPerGroup(t *testing.T) {
	db := setupGroupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	group := seedGroupOrder(t, db, enums.GroupOrderStatusOpen)
	userID := uuid.New()

	first := &models.UserOrder{ID: uuid.New(), GroupOrderID: group.ID, UserID: userID, Status: enums.UserOrderStatusDraft, Items: sampleItems()}
	require.NoError(t, repo.CreateUserOrder(ctx, first))

	duplicate := &models.UserOrder{ID: uuid.New(), GroupOrderID: group.ID, UserID: userID, Status: enums.UserOrderStatusDraft, Items: sampleItems()}
	err := repo.CreateUserOrder(ctx, duplicate)
	require.Error(t, err)
}

func TestRepositoryMarkUserOrdersSubmitted(t *testing.T) {
	db := setupGroupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	group := seedGroupOrder(t, db, enums.GroupOrderStatusOpen)
	for i := 0; i < 2; i++ {
		order := &models.UserOrder{ID: uuid.New(), GroupOrderID: group.ID, UserID: uuid.New(), Status: enums.UserOrderStatusDraft, Items: sampleItems()}
		require.NoError(t, repo.CreateUserOrder(ctx, order))
	}
	other := seedGroupOrder(t, db, enums.GroupOrderStatusOpen)
	untouched := &models.UserOrder{ID: uuid.New(), GroupOrderID: other.ID, UserID: uuid.New(), Status: enums.UserOrderStatusDraft, Items: sampleItems()}
	require.NoError(t, repo.CreateUserOrder(ctx, untouched))

	require.NoError(t, repo.MarkUserOrdersSubmitted(ctx, group.ID))

	orders, err := repo.FindByIDWithOrders(ctx, group.ID)
	require.NoError(t, err)
	for _, order := range orders.Orders {
		assert.Equal(t, enums.UserOrderStatusSubmitted, order.Status)
	}

	otherLoaded, err := repo.FindUserOrder(ctx, other.ID, untouched.UserID)
	require.NoError(t, err)
	assert.Equal(t, enums.UserOrderStatusDraft, otherLoaded.Status)
}

func TestRepositoryCreateGeneratesIDs(t *testing.T) {
	db := setupGroupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	now := time.Now().UTC()
	group := &models.GroupOrder{
		LeaderID:  uuid.New(),
		Status:    enums.GroupOrderStatusOpen,
		StartDate: now.Add(-time.Hour),
		EndDate:   now.Add(time.Hour),
	}
	require.NoError(t, repo.Create(ctx, group))
	assert.NotEqual(t, uuid.Nil, group.ID)

	order := &models.UserOrder{
		GroupOrderID: group.ID,
		UserID:       uuid.New(),
		Status:       enums.UserOrderStatusDraft,
		Items:        sampleItems(),
	}
	require.NoError(t, repo.CreateUserOrder(ctx, order))
	assert.NotEqual(t, uuid.Nil, order.ID)

	loaded, err := repo.FindByID(ctx, group.ID)
	require.NoError(t, err)
	assert.Equal(t, group.ID, loaded.ID)
}

func TestRepositoryFinalizeSubmission(t *testing.T) {
	db := setupGroupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	group := seedGroupOrder(t, db, enums.GroupOrderStatusOpen)
	for i := 0; i < 2; i++ {
		order := &models.UserOrder{ID: uuid.New(), GroupOrderID: group.ID, UserID: uuid.New(), Status: enums.UserOrderStatusDraft, Items: sampleItems()}
		require.NoError(t, repo.CreateUserOrder(ctx, order))
	}

	flipped, err := repo.FinalizeSubmission(ctx, group.ID)
	require.NoError(t, err)
	assert.True(t, flipped)

	loaded, err := repo.FindByIDWithOrders(ctx, group.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.GroupOrderStatusSubmitted, loaded.Status)
	for _, order := range loaded.Orders {
		assert.Equal(t, enums.UserOrderStatusSubmitted, order.Status)
	}

	// A second finalize finds nothing open and loses the flip.
	flipped, err = repo.FinalizeSubmission(ctx, group.ID)
	require.NoError(t, err)
	assert.False(t, flipped)
}
