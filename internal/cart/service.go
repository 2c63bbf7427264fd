package cart

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/andresmolina/casamolina-backend/internal/menu"
	pkgerrors "github.com/andresmolina/casamolina-backend/pkg/errors"
	"github.com/andresmolina/casamolina-backend/pkg/types"
)

// Service exposes the cart engine and customization session over the
// session-scoped Redis state.
type Service interface {
	GetCart(ctx context.Context, sessionID string) (*CartDTO, error)
	AddItem(ctx context.Context, sessionID string, input AddItemInput) (*CartDTO, error)
	UpdateLineQuantity(ctx context.Context, sessionID string, index, quantity int) (*CartDTO, error)
	RemoveLine(ctx context.Context, sessionID string, index int) (*CartDTO, error)

	OpenCustomization(ctx context.Context, sessionID string, itemID uuid.UUID) (*CartDTO, error)
	ToggleTopping(ctx context.Context, sessionID string, toppingID uuid.UUID) (*CartDTO, error)
	SetCustomizationQuantity(ctx context.Context, sessionID string, quantity int) (*CartDTO, error)
	CommitCustomization(ctx context.Context, sessionID string) (*CartDTO, error)
	CancelCustomization(ctx context.Context, sessionID string) (*CartDTO, error)
}

// AddItemInput is the direct add-to-cart payload.
type AddItemInput struct {
	ItemID     uuid.UUID
	Quantity   int
	ToppingIDs []uuid.UUID
}

type catalog interface {
	GetItem(ctx context.Context, id uuid.UUID) (*menu.ItemDTO, error)
}

type toppingResolver interface {
	SelectionsFromIDs(ids []uuid.UUID) (types.ToppingSelections, error)
}

type stateStore interface {
	Load(ctx context.Context, sessionID string) (*State, error)
	Save(ctx context.Context, sessionID string, state *State) error
	Clear(ctx context.Context, sessionID string) error
}

type service struct {
	store    stateStore
	catalog  catalog
	toppings toppingResolver
}

// NewService constructs the cart service.
func NewService(store stateStore, catalog catalog, toppings toppingResolver) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if catalog == nil {
		return nil, fmt.Errorf("catalog required")
	}
	if toppings == nil {
		return nil, fmt.Errorf("topping resolver required")
	}
	return &service{store: store, catalog: catalog, toppings: toppings}, nil
}

func (s *service) GetCart(ctx context.Context, sessionID string) (*CartDTO, error) {
	state, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return NewCartDTO(state), nil
}

func (s *service) AddItem(ctx context.Context, sessionID string, input AddItemInput) (*CartDTO, error) {
	toppings, err := s.toppings.SelectionsFromIDs(input.ToppingIDs)
	if err != nil {
		return nil, err
	}
	snapshot, err := s.loadSnapshot(ctx, input.ItemID)
	if err != nil {
		return nil, err
	}

	return s.mutate(ctx, sessionID, func(state *State) error {
		return state.Cart.Add(*snapshot, input.Quantity, toppings)
	})
}

func (s *service) UpdateLineQuantity(ctx context.Context, sessionID string, index, quantity int) (*CartDTO, error) {
	return s.mutate(ctx, sessionID, func(state *State) error {
		return state.Cart.UpdateQuantity(index, quantity)
	})
}

func (s *service) RemoveLine(ctx context.Context, sessionID string, index int) (*CartDTO, error) {
	return s.mutate(ctx, sessionID, func(state *State) error {
		return state.Cart.Remove(index)
	})
}

func (s *service) OpenCustomization(ctx context.Context, sessionID string, itemID uuid.UUID) (*CartDTO, error) {
	// load first so unknown items fail before the session is touched
	if _, err := s.loadSnapshot(ctx, itemID); err != nil {
		return nil, err
	}
	return s.mutate(ctx, sessionID, func(state *State) error {
		state.Customization.Open(itemID)
		return nil
	})
}

func (s *service) ToggleTopping(ctx context.Context, sessionID string, toppingID uuid.UUID) (*CartDTO, error) {
	selections, err := s.toppings.SelectionsFromIDs([]uuid.UUID{toppingID})
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, sessionID, func(state *State) error {
		return state.Customization.ToggleTopping(selections[0])
	})
}

func (s *service) SetCustomizationQuantity(ctx context.Context, sessionID string, quantity int) (*CartDTO, error) {
	return s.mutate(ctx, sessionID, func(state *State) error {
		return state.Customization.SetQuantity(quantity)
	})
}

func (s *service) CommitCustomization(ctx context.Context, sessionID string) (*CartDTO, error) {
	state, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !state.Customization.IsOpen() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no item is being customized")
	}

	snapshot, err := s.loadSnapshot(ctx, *state.Customization.ExpandedItemID)
	if err != nil {
		return nil, err
	}
	if err := state.Customization.Commit(&state.Cart, *snapshot); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, sessionID, state); err != nil {
		return nil, err
	}
	return NewCartDTO(state), nil
}

func (s *service) CancelCustomization(ctx context.Context, sessionID string) (*CartDTO, error) {
	return s.mutate(ctx, sessionID, func(state *State) error {
		state.Customization.Cancel()
		return nil
	})
}

// mutate is the load-mutate-save cycle every cart operation runs through.
func (s *service) mutate(ctx context.Context, sessionID string, fn func(*State) error) (*CartDTO, error) {
	state, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := fn(state); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, sessionID, state); err != nil {
		return nil, err
	}
	return NewCartDTO(state), nil
}

func (s *service) loadSnapshot(ctx context.Context, itemID uuid.UUID) (*ItemSnapshot, error) {
	item, err := s.catalog.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if !item.InStock {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("%s is out of stock", item.Name))
	}
	return &ItemSnapshot{
		ItemID:    item.ID,
		Name:      item.Name,
		Category:  item.Category,
		UnitPrice: item.Price,
	}, nil
}
