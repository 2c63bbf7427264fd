package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/andresmolina/casamolina-backend/pkg/enums"
)

// MenuItem represents one purchasable entry on the menu.
type MenuItem struct {
	ID          uuid.UUID          `gorm:"column:id;type:uuid;primaryKey"`
	Name        string             `gorm:"column:name;not null"`
	Description string             `gorm:"column:description;not null"`
	Price       decimal.Decimal    `gorm:"column:price;type:numeric(10,2);not null"`
	Category    enums.MenuCategory `gorm:"column:category;not null"`
	ImageURL    *string            `gorm:"column:image_url"`
	InStock     bool               `gorm:"column:in_stock;not null;default:true"`
	SpiceLevel  int                `gorm:"column:spice_level;not null;default:0"`
	Tags        pq.StringArray     `gorm:"column:tags;type:text[];not null;default:ARRAY[]::text[]"`
	Featured    bool               `gorm:"column:featured;not null;default:false"`
	Rating      decimal.Decimal    `gorm:"column:rating;type:numeric(3,1);not null;default:0"`
	Ingredients pq.StringArray     `gorm:"column:ingredients;type:text[];not null;default:ARRAY[]::text[]"`
	CreatedAt   time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
