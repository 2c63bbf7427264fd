package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/andresmolina/casamolina-backend/pkg/types"
)

// LineDTO is one cart row as returned to clients. Index is the positional
// handle used by the update and remove operations.
type LineDTO struct {
	Index     int                     `json:"index"`
	ItemID    uuid.UUID               `json:"item_id"`
	Name      string                  `json:"name"`
	Category  string                  `json:"category"`
	UnitPrice decimal.Decimal         `json:"unit_price"`
	Quantity  int                     `json:"quantity"`
	Toppings  types.ToppingSelections `json:"toppings,omitempty"`
	Total     decimal.Decimal         `json:"total"`
}

// CustomizationDTO surfaces the in-progress customization, when one exists.
type CustomizationDTO struct {
	ItemID   uuid.UUID               `json:"item_id"`
	Toppings types.ToppingSelections `json:"toppings,omitempty"`
	Quantity int                     `json:"quantity"`
}

// CartDTO is the full cart payload.
type CartDTO struct {
	Lines         []LineDTO         `json:"lines"`
	Total         decimal.Decimal   `json:"total"`
	ItemCount     int               `json:"item_count"`
	Customization *CustomizationDTO `json:"customization,omitempty"`
}

// NewCartDTO builds the client payload from the session state.
func NewCartDTO(state *State) *CartDTO {
	lines := make([]LineDTO, 0, len(state.Cart.Lines))
	for i := range state.Cart.Lines {
		line := &state.Cart.Lines[i]
		lines = append(lines, LineDTO{
			Index:     i,
			ItemID:    line.Item.ItemID,
			Name:      line.Item.Name,
			Category:  line.Item.Category,
			UnitPrice: line.Item.UnitPrice,
			Quantity:  line.Quantity,
			Toppings:  line.Toppings,
			Total:     line.Total,
		})
	}

	dto := &CartDTO{
		Lines:     lines,
		Total:     state.Cart.Total(),
		ItemCount: state.Cart.ItemCount(),
	}
	if state.Customization.IsOpen() {
		dto.Customization = &CustomizationDTO{
			ItemID:   *state.Customization.ExpandedItemID,
			Toppings: state.Customization.Toppings,
			Quantity: state.Customization.Quantity,
		}
	}
	return dto
}
