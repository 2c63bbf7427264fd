package menu

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/andresmolina/casamolina-backend/pkg/db/models"
	"github.com/andresmolina/casamolina-backend/pkg/enums"
	pkgerrors "github.com/andresmolina/casamolina-backend/pkg/errors"
	"github.com/andresmolina/casamolina-backend/pkg/pagination"
)

// Service exposes menu reads plus the admin mutations.
type Service interface {
	ListMenu(ctx context.Context, input ListMenuInput) (*ListResult, error)
	GetItem(ctx context.Context, id uuid.UUID) (*ItemDTO, error)
	ListToppings(ctx context.Context) ([]ToppingDTO, error)
	CreateItem(ctx context.Context, input CreateItemInput) (*ItemDTO, error)
	UpdateItem(ctx context.Context, id uuid.UUID, input UpdateItemInput) (*ItemDTO, error)
	DeleteItem(ctx context.Context, id uuid.UUID) error
}

// ListMenuInput carries the filter predicates and pagination inputs.
type ListMenuInput struct {
	Filters    FilterParams
	Pagination pagination.Params
}

// CreateItemInput holds the validated payload to create a menu item.
type CreateItemInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Category    enums.MenuCategory
	ImageURL    *string
	InStock     bool
	SpiceLevel  int
	Tags        []string
	Featured    bool
	Ingredients []string
}

// UpdateItemInput holds optional mutation values for a menu item.
type UpdateItemInput struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	Category    *enums.MenuCategory
	ImageURL    *string
	InStock     *bool
	SpiceLevel  *int
	Tags        *[]string
	Featured    *bool
	Ingredients *[]string
}

type itemStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.MenuItem, error)
	ListAll(ctx context.Context) ([]models.MenuItem, error)
	CreateItem(ctx context.Context, item *models.MenuItem) (*models.MenuItem, error)
	UpdateItem(ctx context.Context, item *models.MenuItem) (*models.MenuItem, error)
	DeleteItem(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo     itemStore
	toppings *Registry
}

// NewService constructs a menu service instance.
func NewService(repo itemStore, toppings *Registry) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("menu repository required")
	}
	if toppings == nil {
		return nil, fmt.Errorf("topping registry required")
	}
	return &service{repo: repo, toppings: toppings}, nil
}

// ListMenu loads the full menu, applies the filter predicates and pages
// the filtered result with an opaque cursor.
func (s *service) ListMenu(ctx context.Context, input ListMenuInput) (*ListResult, error) {
	items, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list menu items")
	}

	matched := Filter(items, input.Filters)

	cursor, err := pagination.Decode(input.Pagination.Cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}
	page, nextCursor := sliceAfterCursor(matched, cursor, input.Pagination.Limit)

	dtos := make([]ItemDTO, 0, len(page))
	for i := range page {
		dtos = append(dtos, NewItemDTO(&page[i]))
	}
	return &ListResult{Items: dtos, NextCursor: nextCursor}, nil
}

// GetItem returns the full detail for one menu item.
func (s *service) GetItem(ctx context.Context, id uuid.UUID) (*ItemDTO, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "menu item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load menu item")
	}
	dto := NewItemDTO(item)
	return &dto, nil
}

// ListToppings returns the fixed topping set.
func (s *service) ListToppings(ctx context.Context) ([]ToppingDTO, error) {
	return s.toppings.List(), nil
}

// CreateItem inserts a new menu item.
func (s *service) CreateItem(ctx context.Context, input CreateItemInput) (*ItemDTO, error) {
	if err := validateItemFields(input.Name, input.Price, input.Category, input.SpiceLevel); err != nil {
		return nil, err
	}

	item := &models.MenuItem{
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
		Price:       input.Price,
		Category:    input.Category,
		ImageURL:    input.ImageURL,
		InStock:     input.InStock,
		SpiceLevel:  input.SpiceLevel,
		Tags:        append([]string{}, input.Tags...),
		Featured:    input.Featured,
		Ingredients: append([]string{}, input.Ingredients...),
	}

	created, err := s.repo.CreateItem(ctx, item)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert menu item")
	}
	dto := NewItemDTO(created)
	return &dto, nil
}

// UpdateItem applies the provided mutations to an existing menu item.
func (s *service) UpdateItem(ctx context.Context, id uuid.UUID, input UpdateItemInput) (*ItemDTO, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "menu item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load menu item")
	}

	applyUpdateToItem(item, input)
	if err := validateItemFields(item.Name, item.Price, item.Category, item.SpiceLevel); err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdateItem(ctx, item)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update menu item")
	}
	dto := NewItemDTO(updated)
	return &dto, nil
}

// DeleteItem removes a menu item.
func (s *service) DeleteItem(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "menu item not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load menu item")
	}
	if err := s.repo.DeleteItem(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete menu item")
	}
	return nil
}

// sliceAfterCursor pages a filtered, already-ordered slice. The cursor names
// the last item of the previous page; ordering is created_at DESC with id
// DESC as tie breaker, matching Repository.ListAll.
func sliceAfterCursor(items []models.MenuItem, cursor *pagination.Cursor, limit int) ([]models.MenuItem, string) {
	start := 0
	if cursor != nil {
		start = len(items)
		for i, item := range items {
			if item.CreatedAt.Before(cursor.CreatedAt) ||
				(item.CreatedAt.Equal(cursor.CreatedAt) && item.ID.String() < cursor.ID.String()) {
				start = i
				break
			}
		}
	}

	rest := items[start:]
	page, more := pagination.Trim(rest, limit)
	if !more {
		return page, ""
	}

	last := page[len(page)-1]
	next := pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID}
	return page, next.Encode()
}

func applyUpdateToItem(item *models.MenuItem, input UpdateItemInput) {
	if input.Name != nil {
		item.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		item.Description = strings.TrimSpace(*input.Description)
	}
	if input.Price != nil {
		item.Price = *input.Price
	}
	if input.Category != nil {
		item.Category = *input.Category
	}
	if input.ImageURL != nil {
		item.ImageURL = input.ImageURL
	}
	if input.InStock != nil {
		item.InStock = *input.InStock
	}
	if input.SpiceLevel != nil {
		item.SpiceLevel = *input.SpiceLevel
	}
	if input.Tags != nil {
		item.Tags = append([]string{}, (*input.Tags)...)
	}
	if input.Featured != nil {
		item.Featured = *input.Featured
	}
	if input.Ingredients != nil {
		item.Ingredients = append([]string{}, (*input.Ingredients)...)
	}
}

func validateItemFields(name string, price decimal.Decimal, category enums.MenuCategory, spiceLevel int) error {
	if strings.TrimSpace(name) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if price.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}
	if !category.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid category %q", category))
	}
	if !enums.IsValidSpiceLevel(spiceLevel) {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("spice level %d out of range", spiceLevel))
	}
	return nil
}
