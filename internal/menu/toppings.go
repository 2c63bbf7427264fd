package menu

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/andresmolina/casamolina-backend/pkg/db/models"
	pkgerrors "github.com/andresmolina/casamolina-backend/pkg/errors"
	"github.com/andresmolina/casamolina-backend/pkg/types"
)

type toppingLister interface {
	ListToppings(ctx context.Context) ([]models.Topping, error)
}

// Registry holds the fixed topping set in memory. It is loaded once at
// startup; toppings only change via migration followed by a restart.
type Registry struct {
	ordered []models.Topping
	byID    map[uuid.UUID]models.Topping
}

// LoadRegistry reads the topping set from the repository.
func LoadRegistry(ctx context.Context, repo toppingLister) (*Registry, error) {
	if repo == nil {
		return nil, fmt.Errorf("topping repository required")
	}

	rows, err := repo.ListToppings(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading toppings: %w", err)
	}

	byID := make(map[uuid.UUID]models.Topping, len(rows))
	for _, row := range rows {
		byID[row.ID] = row
	}
	return &Registry{ordered: rows, byID: byID}, nil
}

// List returns the topping set in display order.
func (r *Registry) List() []ToppingDTO {
	out := make([]ToppingDTO, 0, len(r.ordered))
	for i := range r.ordered {
		out = append(out, NewToppingDTO(&r.ordered[i]))
	}
	return out
}

// Len reports how many toppings are registered.
func (r *Registry) Len() int {
	return len(r.ordered)
}

// SelectionsFromIDs resolves topping ids into priced selections, keeping
// the caller's order. Unknown or repeated ids are a validation fault.
func (r *Registry) SelectionsFromIDs(ids []uuid.UUID) (types.ToppingSelections, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	seen := make(map[uuid.UUID]struct{}, len(ids))
	selections := make(types.ToppingSelections, 0, len(ids))
	for _, id := range ids {
		topping, ok := r.byID[id]
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown topping %s", id))
		}
		if _, dup := seen[id]; dup {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("duplicate topping %s", id))
		}
		seen[id] = struct{}{}
		selections = append(selections, types.ToppingSelection{
			ID:    topping.ID,
			Name:  topping.Name,
			Price: topping.Price,
		})
	}
	return selections, nil
}
