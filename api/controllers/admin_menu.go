package controllers

import (
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/andresmolina/casamolina-backend/api/responses"
	"github.com/andresmolina/casamolina-backend/api/validators"
	"github.com/andresmolina/casamolina-backend/internal/menu"
	"github.com/andresmolina/casamolina-backend/pkg/enums"
	pkgerrors "github.com/andresmolina/casamolina-backend/pkg/errors"
	"github.com/andresmolina/casamolina-backend/pkg/logger"
)

type createMenuItemRequest struct {
	Name        string          `json:"name" validate:"required,max=120"`
	Description string          `json:"description" validate:"max=2000"`
	Price       decimal.Decimal `json:"price" validate:"required"`
	Category    string          `json:"category" validate:"required"`
	ImageURL    *string         `json:"image_url,omitempty"`
	InStock     *bool           `json:"in_stock,omitempty"`
	SpiceLevel  int             `json:"spice_level" validate:"min=0,max=4"`
	Tags        []string        `json:"tags,omitempty"`
	Featured    bool            `json:"featured"`
	Ingredients []string        `json:"ingredients,omitempty"`
}

type updateMenuItemRequest struct {
	Name        *string          `json:"name,omitempty" validate:"omitempty,max=120"`
	Description *string          `json:"description,omitempty" validate:"omitempty,max=2000"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Category    *string          `json:"category,omitempty"`
	ImageURL    *string          `json:"image_url,omitempty"`
	InStock     *bool            `json:"in_stock,omitempty"`
	SpiceLevel  *int             `json:"spice_level,omitempty" validate:"omitempty,min=0,max=4"`
	Tags        *[]string        `json:"tags,omitempty"`
	Featured    *bool            `json:"featured,omitempty"`
	Ingredients *[]string        `json:"ingredients,omitempty"`
}

// AdminMenuCreate adds a dish to the menu.
func AdminMenuCreate(svc menu.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "menu service unavailable"))
			return
		}

		var body createMenuItemRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		category, err := enums.ParseMenuCategory(strings.ToLower(strings.TrimSpace(body.Category)))
		if err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unknown category").WithDetails(map[string]any{"field": "category"}))
			return
		}

		inStock := true
		if body.InStock != nil {
			inStock = *body.InStock
		}

		item, err := svc.CreateItem(r.Context(), menu.CreateItemInput{
			Name:        body.Name,
			Description: body.Description,
			Price:       body.Price,
			Category:    category,
			ImageURL:    body.ImageURL,
			InStock:     inStock,
			SpiceLevel:  body.SpiceLevel,
			Tags:        body.Tags,
			Featured:    body.Featured,
			Ingredients: body.Ingredients,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, item)
	}
}

// AdminMenuUpdate applies a partial update to a dish.
func AdminMenuUpdate(svc menu.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "menu service unavailable"))
			return
		}

		itemID, err := validators.ParseUUIDParam(r, "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateMenuItemRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := menu.UpdateItemInput{
			Name:        body.Name,
			Description: body.Description,
			Price:       body.Price,
			ImageURL:    body.ImageURL,
			InStock:     body.InStock,
			SpiceLevel:  body.SpiceLevel,
			Tags:        body.Tags,
			Featured:    body.Featured,
			Ingredients: body.Ingredients,
		}
		if body.Category != nil {
			category, err := enums.ParseMenuCategory(strings.ToLower(strings.TrimSpace(*body.Category)))
			if err != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unknown category").WithDetails(map[string]any{"field": "category"}))
				return
			}
			input.Category = &category
		}

		item, err := svc.UpdateItem(r.Context(), itemID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, item)
	}
}

// AdminMenuDelete removes a dish from the menu.
func AdminMenuDelete(svc menu.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "menu service unavailable"))
			return
		}

		itemID, err := validators.ParseUUIDParam(r, "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteItem(r.Context(), itemID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
