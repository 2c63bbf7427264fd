package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/andresmolina/casamolina-backend/pkg/types"
)

// OrderLineItem captures the snapshot of each cart line at checkout time.
type OrderLineItem struct {
	ID         uuid.UUID               `gorm:"column:id;type:uuid;primaryKey"`
	OrderID    uuid.UUID               `gorm:"column:order_id;type:uuid;not null"`
	MenuItemID *uuid.UUID              `gorm:"column:menu_item_id;type:uuid"`
	Name       string                  `gorm:"column:name;not null"`
	Category   string                  `gorm:"column:category;not null"`
	UnitPrice  decimal.Decimal         `gorm:"column:unit_price;type:numeric(10,2);not null"`
	Quantity   int                     `gorm:"column:quantity;not null"`
	Toppings   types.ToppingSelections `gorm:"column:toppings;type:jsonb;serializer:json"`
	Total      decimal.Decimal         `gorm:"column:total;type:numeric(10,2);not null"`
	CreatedAt  time.Time               `gorm:"column:created_at;autoCreateTime"`
}
