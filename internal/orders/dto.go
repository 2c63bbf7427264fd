package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/andresmolina/casamolina-backend/pkg/db/models"
	"github.com/andresmolina/casamolina-backend/pkg/types"
)

// LineDTO is one snapshotted row of a placed order.
type LineDTO struct {
	ID        uuid.UUID               `json:"id"`
	ItemID    *uuid.UUID              `json:"item_id,omitempty"`
	Name      string                  `json:"name"`
	Category  string                  `json:"category"`
	UnitPrice decimal.Decimal         `json:"unit_price"`
	Quantity  int                     `json:"quantity"`
	Toppings  types.ToppingSelections `json:"toppings,omitempty"`
	Total     decimal.Decimal         `json:"total"`
}

// OrderDTO is the order payload returned to clients.
type OrderDTO struct {
	ID        uuid.UUID       `json:"id"`
	Status    string          `json:"status"`
	Total     decimal.Decimal `json:"total"`
	Lines     []LineDTO       `json:"lines"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ListResult is one page of a user's order history.
type ListResult struct {
	Orders     []OrderDTO `json:"orders"`
	NextCursor string     `json:"next_cursor,omitempty"`
}

// NewOrderDTO builds a DTO from the persisted order and its line items.
func NewOrderDTO(order *models.Order) *OrderDTO {
	lines := make([]LineDTO, 0, len(order.LineItems))
	for i := range order.LineItems {
		line := &order.LineItems[i]
		lines = append(lines, LineDTO{
			ID:        line.ID,
			ItemID:    line.MenuItemID,
			Name:      line.Name,
			Category:  line.Category,
			UnitPrice: line.UnitPrice,
			Quantity:  line.Quantity,
			Toppings:  line.Toppings,
			Total:     line.Total,
		})
	}
	return &OrderDTO{
		ID:        order.ID,
		Status:    order.Status.String(),
		Total:     order.Total,
		Lines:     lines,
		CreatedAt: order.CreatedAt,
		UpdatedAt: order.UpdatedAt,
	}
}
