package menu

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/andresmolina/casamolina-backend/pkg/db/models"
	"github.com/andresmolina/casamolina-backend/pkg/enums"
	pkgerrors "github.com/andresmolina/casamolina-backend/pkg/errors"
	"github.com/andresmolina/casamolina-backend/pkg/pagination"
)

type stubItemStore struct {
	items []models.MenuItem
}

func (s *stubItemStore) FindByID(ctx context.Context, id uuid.UUID) (*models.MenuItem, error) {
	for i := range s.items {
		if s.items[i].ID == id {
			return &s.items[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubItemStore) ListAll(ctx context.Context) ([]models.MenuItem, error) {
	return s.items, nil
}

func (s *stubItemStore) CreateItem(ctx context.Context, item *models.MenuItem) (*models.MenuItem, error) {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	s.items = append(s.items, *item)
	return item, nil
}

func (s *stubItemStore) UpdateItem(ctx context.Context, item *models.MenuItem) (*models.MenuItem, error) {
	for i := range s.items {
		if s.items[i].ID == item.ID {
			s.items[i] = *item
			return item, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubItemStore) DeleteItem(ctx context.Context, id uuid.UUID) error {
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return nil
}

func orderedMenuFixture(n int) []models.MenuItem {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	items := make([]models.MenuItem, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, models.MenuItem{
			ID:         uuid.New(),
			Name:       "Item",
			Category:   enums.MenuCategoryTaco,
			Price:      decimal.NewFromInt(10),
			CreatedAt:  base.Add(-time.Duration(i) * time.Minute),
			SpiceLevel: 1,
		})
	}
	return items
}

func newTestService(t *testing.T, store *stubItemStore) Service {
	t.Helper()
	svc, err := NewService(store, loadTestRegistry(t))
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestListMenuPagesThroughFilteredResults(t *testing.T) {
	items := orderedMenuFixture(5)
	svc := newTestService(t, &stubItemStore{items: items})
	ctx := context.Background()

	first, err := svc.ListMenu(ctx, ListMenuInput{Pagination: pagination.Params{Limit: 2}})
	if err != nil {
		t.Fatalf("ListMenu: %v", err)
	}
	if len(first.Items) != 2 {
		t.Fatalf("expected 2 items on first page, got %d", len(first.Items))
	}
	if first.NextCursor == "" {
		t.Fatal("expected a next cursor")
	}
	if first.Items[0].ID != items[0].ID || first.Items[1].ID != items[1].ID {
		t.Fatal("first page out of order")
	}

	second, err := svc.ListMenu(ctx, ListMenuInput{Pagination: pagination.Params{Limit: 2, Cursor: first.NextCursor}})
	if err != nil {
		t.Fatalf("ListMenu second page: %v", err)
	}
	if len(second.Items) != 2 {
		t.Fatalf("expected 2 items on second page, got %d", len(second.Items))
	}
	if second.Items[0].ID != items[2].ID {
		t.Fatal("second page did not resume after cursor")
	}

	third, err := svc.ListMenu(ctx, ListMenuInput{Pagination: pagination.Params{Limit: 2, Cursor: second.NextCursor}})
	if err != nil {
		t.Fatalf("ListMenu third page: %v", err)
	}
	if len(third.Items) != 1 || third.NextCursor != "" {
		t.Fatalf("expected final page of 1 item and no cursor, got %d items cursor %q", len(third.Items), third.NextCursor)
	}
}

func TestListMenuRejectsBadCursor(t *testing.T) {
	svc := newTestService(t, &stubItemStore{items: orderedMenuFixture(2)})

	_, err := svc.ListMenu(context.Background(), ListMenuInput{Pagination: pagination.Params{Cursor: "%%%"}})
	if err == nil {
		t.Fatal("expected error for malformed cursor")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestGetItemNotFound(t *testing.T) {
	svc := newTestService(t, &stubItemStore{})

	_, err := svc.GetItem(context.Background(), uuid.New())
	if err == nil {
		t.Fatal("expected error for missing item")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestCreateItemValidation(t *testing.T) {
	svc := newTestService(t, &stubItemStore{})
	ctx := context.Background()

	cases := []struct {
		name  string
		input CreateItemInput
	}{
		{"emptyName", CreateItemInput{Name: "  ", Category: enums.MenuCategoryTaco, Price: decimal.NewFromInt(5)}},
		{"negativePrice", CreateItemInput{Name: "Taco", Category: enums.MenuCategoryTaco, Price: decimal.NewFromInt(-1)}},
		{"badCategory", CreateItemInput{Name: "Taco", Category: "sushi", Price: decimal.NewFromInt(5)}},
		{"spiceOutOfRange", CreateItemInput{Name: "Taco", Category: enums.MenuCategoryTaco, Price: decimal.NewFromInt(5), SpiceLevel: 9}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateItem(ctx, tc.input)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
				t.Fatalf("expected validation code, got %v", err)
			}
		})
	}
}

func TestUpdateItemAppliesPartialMutation(t *testing.T) {
	items := orderedMenuFixture(1)
	store := &stubItemStore{items: items}
	svc := newTestService(t, store)

	name := "  Renamed Taco  "
	outOfStock := false
	dto, err := svc.UpdateItem(context.Background(), items[0].ID, UpdateItemInput{
		Name:    &name,
		InStock: &outOfStock,
	})
	if err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}
	if dto.Name != "Renamed Taco" {
		t.Fatalf("expected trimmed name, got %q", dto.Name)
	}
	if dto.InStock {
		t.Fatal("expected item out of stock")
	}
	if !dto.Price.Equal(items[0].Price) {
		t.Fatal("untouched field changed")
	}
}

func TestSliceAfterCursorSkipsToCursorPosition(t *testing.T) {
	items := orderedMenuFixture(4)

	page, next := sliceAfterCursor(items, nil, 3)
	if len(page) != 3 || next == "" {
		t.Fatalf("expected 3 items and a cursor, got %d items cursor %q", len(page), next)
	}

	cursor := &pagination.Cursor{CreatedAt: items[2].CreatedAt, ID: items[2].ID}
	page, next = sliceAfterCursor(items, cursor, 3)
	if len(page) != 1 || next != "" {
		t.Fatalf("expected trailing page of 1 item, got %d items cursor %q", len(page), next)
	}
	if page[0].ID != items[3].ID {
		t.Fatal("page did not resume after cursor")
	}

	cursor = &pagination.Cursor{CreatedAt: items[3].CreatedAt, ID: items[3].ID}
	page, _ = sliceAfterCursor(items, cursor, 3)
	if len(page) != 0 {
		t.Fatalf("expected empty page past the end, got %d items", len(page))
	}
}
