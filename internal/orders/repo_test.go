package orders

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/andresmolina/casamolina-backend/pkg/db/models"
	"github.com/andresmolina/casamolina-backend/pkg/enums"
	"github.com/andresmolina/casamolina-backend/pkg/pagination"
	"github.com/andresmolina/casamolina-backend/pkg/types"
)

func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// Named shared-cache DSN so every pooled connection sees the same
	// in-memory database.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	ordersTable := `
CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'placed',
  total TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
	lineItemsTable := `
CREATE TABLE IF NOT EXISTS order_line_items (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  menu_item_id TEXT,
  name TEXT NOT NULL,
  category TEXT NOT NULL,
  unit_price TEXT NOT NULL,
  quantity INTEGER NOT NULL,
  toppings TEXT,
  total TEXT NOT NULL,
  created_at DATETIME
);`
	require.NoError(t, db.Exec(ordersTable).Error)
	require.NoError(t, db.Exec(lineItemsTable).Error)
	return db
}

func insertOrder(t *testing.T, repo Repository, userID uuid.UUID, createdAt time.Time, total string) *models.Order {
	t.Helper()

	order, err := repo.CreateOrder(context.Background(), &models.Order{
		ID:        uuid.New(),
		UserID:    userID,
		Status:    enums.OrderStatusPlaced,
		Total:     decimal.RequireFromString(total),
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	})
	require.NoError(t, err)
	return order
}

func TestOrdersRepoCreateAndFind(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	userID := uuid.New()

	order := insertOrder(t, repo, userID, time.Now().UTC(), "22.00")

	itemID := uuid.New()
	lines := []models.OrderLineItem{
		{
			ID:         uuid.New(),
			OrderID:    order.ID,
			MenuItemID: &itemID,
			Name:       "Street Tacos al Pastor",
			Category:   "taco",
			UnitPrice:  decimal.RequireFromString("9.50"),
			Quantity:   2,
			Toppings: types.ToppingSelections{
				{ID: uuid.New(), Name: "Guacamole", Price: decimal.RequireFromString("1.50")},
			},
			Total: decimal.RequireFromString("22.00"),
		},
	}
	require.NoError(t, repo.CreateLineItems(context.Background(), lines))

	found, err := repo.FindByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, found.ID)
	require.Len(t, found.LineItems, 1)
	assert.Equal(t, "Street Tacos al Pastor", found.LineItems[0].Name)
	require.Len(t, found.LineItems[0].Toppings, 1)
	assert.Equal(t, "Guacamole", found.LineItems[0].Toppings[0].Name)
	assert.True(t, found.Total.Equal(decimal.RequireFromString("22.00")))
}

func TestOrdersRepoListByUserPagination(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	userID := uuid.New()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		insertOrder(t, repo, userID, base.Add(time.Duration(i)*time.Hour), "10.00")
	}
	// another user's order must never appear
	insertOrder(t, repo, uuid.New(), base.Add(12*time.Hour), "99.00")

	page1, cursor, err := repo.ListByUser(context.Background(), userID, pagination.Params{Limit: 2})
	require.NoError(t, err)
	require.Len(t, page1, 2)
	require.NotEmpty(t, cursor)
	assert.True(t, page1[0].CreatedAt.After(page1[1].CreatedAt), "expected newest first")

	page2, cursor2, err := repo.ListByUser(context.Background(), userID, pagination.Params{Limit: 2, Cursor: cursor})
	require.NoError(t, err)
	require.Len(t, page2, 1)
	assert.Empty(t, cursor2)

	for _, order := range append(page1, page2...) {
		assert.Equal(t, userID, order.UserID)
	}
}

func TestOrdersRepoFindMissing(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
