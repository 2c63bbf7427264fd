package menu

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/andresmolina/casamolina-backend/pkg/db/models"
)

// ItemDTO represents a menu entry returned to clients.
type ItemDTO struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	ImageURL    *string         `json:"image_url,omitempty"`
	InStock     bool            `json:"in_stock"`
	SpiceLevel  int             `json:"spice_level"`
	Tags        []string        `json:"tags"`
	Featured    bool            `json:"featured"`
	Rating      decimal.Decimal `json:"rating"`
	Ingredients []string        `json:"ingredients"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ToppingDTO is one entry of the fixed topping set.
type ToppingDTO struct {
	ID    uuid.UUID       `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// ListResult is one page of menu items.
type ListResult struct {
	Items      []ItemDTO `json:"items"`
	NextCursor string    `json:"next_cursor,omitempty"`
}

// NewItemDTO builds a DTO from the persisted model.
func NewItemDTO(item *models.MenuItem) ItemDTO {
	return ItemDTO{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		Price:       item.Price,
		Category:    item.Category.String(),
		ImageURL:    item.ImageURL,
		InStock:     item.InStock,
		SpiceLevel:  item.SpiceLevel,
		Tags:        append([]string{}, item.Tags...),
		Featured:    item.Featured,
		Rating:      item.Rating,
		Ingredients: append([]string{}, item.Ingredients...),
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}

// NewToppingDTO builds a DTO from the persisted model.
func NewToppingDTO(topping *models.Topping) ToppingDTO {
	return ToppingDTO{
		ID:    topping.ID,
		Name:  topping.Name,
		Price: topping.Price,
	}
}
