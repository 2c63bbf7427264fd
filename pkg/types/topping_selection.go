package types

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ToppingSelection captures the priced snapshot of one chosen topping.
// Cart lines and order lines store these instead of foreign keys so a
// later price change never rewrites history.
type ToppingSelection struct {
	ID    uuid.UUID       `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// ToppingSelections is an ordered sequence of selections. Order matters:
// two selections are the same only when their id sequences are identical
// in order and content.
type ToppingSelections []ToppingSelection

// Equal reports order-sensitive content equality by topping id.
func (s ToppingSelections) Equal(other ToppingSelections) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i].ID != other[i].ID {
			return false
		}
	}
	return true
}

// PriceSum returns the combined price of the selections.
func (s ToppingSelections) PriceSum() decimal.Decimal {
	sum := decimal.Zero
	for _, topping := range s {
		sum = sum.Add(topping.Price)
	}
	return sum
}
