package cart

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	pkgerrors "github.com/andresmolina/casamolina-backend/pkg/errors"
	"github.com/andresmolina/casamolina-backend/pkg/types"
)

// ItemSnapshot is the copy of the menu item fields a line item carries.
// Prices are frozen at the moment the line is created so later menu edits
// do not silently change an open cart.
type ItemSnapshot struct {
	ItemID    uuid.UUID       `json:"item_id"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// LineItem is one row of the cart.
//
// Invariant: Total == (UnitPrice + sum of topping prices) * Quantity,
// recomputed on every mutation.
type LineItem struct {
	Item     ItemSnapshot            `json:"item"`
	Quantity int                     `json:"quantity"`
	Toppings types.ToppingSelections `json:"toppings"`
	Total    decimal.Decimal         `json:"total"`
}

func (l *LineItem) recompute() {
	unit := l.Item.UnitPrice.Add(l.Toppings.PriceSum())
	l.Total = unit.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// matches reports whether the line shares the merge key (item id plus the
// exact topping sequence, order-sensitive) with the given add request.
func (l *LineItem) matches(itemID uuid.UUID, toppings types.ToppingSelections) bool {
	return l.Item.ItemID == itemID && l.Toppings.Equal(toppings)
}

// Cart is an ordered sequence of line items; insertion order is display
// order. It is owned by a single ordering session and never shared, so no
// locking happens here.
type Cart struct {
	Lines []LineItem `json:"lines"`
}

// Add merges the request into an existing line with the same merge key, or
// appends a new line at the end. Quantity must be positive.
func (c *Cart) Add(item ItemSnapshot, quantity int, toppings types.ToppingSelections) error {
	if quantity < 1 {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("quantity must be positive, got %d", quantity))
	}

	for i := range c.Lines {
		if c.Lines[i].matches(item.ItemID, toppings) {
			c.Lines[i].Quantity += quantity
			c.Lines[i].recompute()
			return nil
		}
	}

	line := LineItem{
		Item:     item,
		Quantity: quantity,
		Toppings: toppings,
	}
	line.recompute()
	c.Lines = append(c.Lines, line)
	return nil
}

// UpdateQuantity sets the quantity of the line at index. Values below 1 are
// a no-op: decrementing to zero must not silently delete the line, removal
// is its own operation.
func (c *Cart) UpdateQuantity(index, quantity int) error {
	if err := c.checkIndex(index); err != nil {
		return err
	}
	if quantity < 1 {
		return nil
	}
	c.Lines[index].Quantity = quantity
	c.Lines[index].recompute()
	return nil
}

// Remove deletes the line at index; later lines shift down by one.
func (c *Cart) Remove(index int) error {
	if err := c.checkIndex(index); err != nil {
		return err
	}
	c.Lines = append(c.Lines[:index], c.Lines[index+1:]...)
	return nil
}

// Total sums the line totals; zero for an empty cart.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for i := range c.Lines {
		total = total.Add(c.Lines[i].Total)
	}
	return total
}

// ItemCount sums the quantities across all lines.
func (c *Cart) ItemCount() int {
	count := 0
	for i := range c.Lines {
		count += c.Lines[i].Quantity
	}
	return count
}

// IsEmpty reports whether the cart holds no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// Clear drops every line.
func (c *Cart) Clear() {
	c.Lines = nil
}

func (c *Cart) checkIndex(index int) error {
	if index < 0 || index >= len(c.Lines) {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("line index %d out of range (cart has %d lines)", index, len(c.Lines)))
	}
	return nil
}
