package cart

import (
	"fmt"

	"github.com/google/uuid"

	pkgerrors "github.com/andresmolina/casamolina-backend/pkg/errors"
	"github.com/andresmolina/casamolina-backend/pkg/types"
)

// Session tracks the item being customized before it is committed to the
// cart. At most one item is open at a time; opening another discards the
// in-progress selections.
type Session struct {
	ExpandedItemID *uuid.UUID              `json:"expanded_item_id,omitempty"`
	Toppings       types.ToppingSelections `json:"toppings,omitempty"`
	Quantity       int                     `json:"quantity,omitempty"`
}

// IsOpen reports whether any item is being customized.
func (s *Session) IsOpen() bool {
	return s.ExpandedItemID != nil
}

// IsOpenFor reports whether the session is open for the given item.
func (s *Session) IsOpenFor(itemID uuid.UUID) bool {
	return s.ExpandedItemID != nil && *s.ExpandedItemID == itemID
}

// Open starts customizing itemID with defaults (no toppings, quantity 1).
// Opening the item that is already open closes it instead, so the expand
// control doubles as cancel. Opening a different item discards the previous
// selections first. Returns whether the session is open afterwards.
func (s *Session) Open(itemID uuid.UUID) bool {
	if s.IsOpenFor(itemID) {
		s.reset()
		return false
	}
	s.reset()
	id := itemID
	s.ExpandedItemID = &id
	s.Quantity = 1
	return true
}

// ToggleTopping adds the topping if absent and removes it if present.
// Quantity is untouched.
func (s *Session) ToggleTopping(topping types.ToppingSelection) error {
	if !s.IsOpen() {
		return pkgerrors.New(pkgerrors.CodeValidation, "no item is being customized")
	}
	for i := range s.Toppings {
		if s.Toppings[i].ID == topping.ID {
			s.Toppings = append(s.Toppings[:i], s.Toppings[i+1:]...)
			return nil
		}
	}
	s.Toppings = append(s.Toppings, topping)
	return nil
}

// SetQuantity sets the pending quantity, clamped to a minimum of 1.
func (s *Session) SetQuantity(quantity int) error {
	if !s.IsOpen() {
		return pkgerrors.New(pkgerrors.CodeValidation, "no item is being customized")
	}
	if quantity < 1 {
		return nil
	}
	s.Quantity = quantity
	return nil
}

// Commit adds the customized item to the cart and closes the session.
func (s *Session) Commit(c *Cart, item ItemSnapshot) error {
	if !s.IsOpenFor(item.ItemID) {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("item %s is not being customized", item.ItemID))
	}
	if err := c.Add(item, s.Quantity, s.Toppings); err != nil {
		return err
	}
	s.reset()
	return nil
}

// Cancel closes the session without touching the cart.
func (s *Session) Cancel() {
	s.reset()
}

func (s *Session) reset() {
	s.ExpandedItemID = nil
	s.Toppings = nil
	s.Quantity = 0
}
