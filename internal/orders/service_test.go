package orders

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

type stubRepo struct {
	orders []models.Order
}

func (s *stubRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubRepo) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	s.orders = append(s.orders, *order)
	return order, nil
}

func (s *stubRepo) CreateLineItems(ctx context.Context, items []models.OrderLineItem) error {
	return nil
}

func (s *stubRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	for i := range s.orders {
		if s.orders[i].ID == id {
			return &s.orders[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubRepo) ListByUser(ctx context.Context, userID uuid.UUID, params pagination.Params) ([]models.Order, string, error) {
	var rows []models.Order
	for i := range s.orders {
		if s.orders[i].UserID == userID {
			rows = append(rows, s.orders[i])
		}
	}
	return rows, "", nil
}

func orderFixture(userID uuid.UUID) models.Order {
	return models.Order{
		ID:     uuid.New(),
		UserID: userID,
		Status: enums.OrderStatusPlaced,
		Total:  decimal.NewFromFloat(22.00),
		LineItems: []models.OrderLineItem{
			{
				ID:        uuid.New(),
				Name:      "Street Tacos al Pastor",
				Category:  "taco",
				UnitPrice: decimal.NewFromInt(10),
				Quantity:  2,
				Total:     decimal.NewFromInt(22),
			},
		},
		CreatedAt: time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC),
	}
}

func TestGetOrderReturnsOwnOrder(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	order := orderFixture(userID)
	svc, err := NewService(&stubRepo{orders: []models.Order{order}})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	dto, err := svc.GetOrder(context.Background(), userID, order.ID)
	if err != nil {
		t.Fatalf("GetOrder: %v", err)
	}
	if dto.ID != order.ID || dto.Status != "placed" {
		t.Fatalf("unexpected order payload: %+v", dto)
	}
	if len(dto.Lines) != 1 || dto.Lines[0].Quantity != 2 {
		t.Fatalf("unexpected lines: %+v", dto.Lines)
	}
}

func TestGetOrderHidesForeignOrders(t *testing.T) {
	t.Parallel()

	order := orderFixture(uuid.New())
	svc, err := NewService(&stubRepo{orders: []models.Order{order}})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	_, err = svc.GetOrder(context.Background(), uuid.New(), order.ID)
	if err == nil {
		t.Fatal("expected error for foreign order")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found (not forbidden), got %v", err)
	}
}

func TestListOrdersRejectsBadCursor(t *testing.T) {
	t.Parallel()

	svc, err := NewService(&stubRepo{})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	_, err = svc.ListOrders(context.Background(), uuid.New(), pagination.Params{Cursor: "%%%"})
	if err == nil {
		t.Fatal("expected error for malformed cursor")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
