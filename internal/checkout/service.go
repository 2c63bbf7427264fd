package checkout

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/andresmolina/casamolina-backend/internal/cart"
	"github.com/andresmolina/casamolina-backend/internal/orders"
	"github.com/andresmolina/casamolina-backend/pkg/db/models"
	"github.com/andresmolina/casamolina-backend/pkg/enums"
	pkgerrors "github.com/andresmolina/casamolina-backend/pkg/errors"
	"github.com/andresmolina/casamolina-backend/pkg/logger"
)

// Service turns a session cart into a placed order.
type Service interface {
	Checkout(ctx context.Context, userID uuid.UUID, sessionID string) (*orders.OrderDTO, error)
}

type cartStore interface {
	Load(ctx context.Context, sessionID string) (*cart.State, error)
	Clear(ctx context.Context, sessionID string) error
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	carts  cartStore
	orders orders.Repository
	db     txRunner
	logg   *logger.Logger
}

// NewService constructs the checkout service.
func NewService(carts cartStore, orderRepo orders.Repository, db txRunner, logg *logger.Logger) (Service, error) {
	if carts == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if orderRepo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if db == nil {
		return nil, fmt.Errorf("db client required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{carts: carts, orders: orderRepo, db: db, logg: logg}, nil
}

// Checkout validates the guards, persists the order with its line snapshots
// in one transaction, then clears the session cart.
func (s *service) Checkout(ctx context.Context, userID uuid.UUID, sessionID string) (*orders.OrderDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "sign in to check out")
	}

	state, err := s.carts.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if state.Cart.IsEmpty() {
		return nil, pkgerrors.New(pkgerrors.CodeEmptyCart, "cart is empty")
	}

	order := &models.Order{
		UserID: userID,
		Status: enums.OrderStatusPlaced,
		Total:  state.Cart.Total(),
	}

	if err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.orders.WithTx(tx)

		created, err := txRepo.CreateOrder(ctx, order)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert order")
		}

		lines := make([]models.OrderLineItem, 0, len(state.Cart.Lines))
		for i := range state.Cart.Lines {
			line := &state.Cart.Lines[i]
			itemID := line.Item.ItemID
			lines = append(lines, models.OrderLineItem{
				OrderID:    created.ID,
				MenuItemID: &itemID,
				Name:       line.Item.Name,
				Category:   line.Item.Category,
				UnitPrice:  line.Item.UnitPrice,
				Quantity:   line.Quantity,
				Toppings:   line.Toppings,
				Total:      line.Total,
			})
		}
		if err := txRepo.CreateLineItems(ctx, lines); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert order lines")
		}
		order.LineItems = lines
		return nil
	}); err != nil {
		return nil, err
	}

	// The order is already placed; a failed cart clear only means the
	// session still shows the old cart until it expires.
	if err := s.carts.Clear(ctx, sessionID); err != nil {
		s.logg.Warn(s.logg.WithFields(ctx, map[string]any{
			"order_id": order.ID,
			"error":    err.Error(),
		}), "clearing cart after checkout failed")
	}

	return orders.NewOrderDTO(order), nil
}
