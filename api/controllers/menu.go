package controllers

import (
	"net/http"
	"strings"

	"github.com/andresmolina/casamolina-backend/api/responses"
	"github.com/andresmolina/casamolina-backend/api/validators"
	"github.com/andresmolina/casamolina-backend/internal/menu"
	"github.com/andresmolina/casamolina-backend/pkg/enums"
	pkgerrors "github.com/andresmolina/casamolina-backend/pkg/errors"
	"github.com/andresmolina/casamolina-backend/pkg/logger"
	"github.com/andresmolina/casamolina-backend/pkg/pagination"
)

// MenuList serves the filtered, cursor-paged menu.
//
// Query parameters: category, q (free-text search), spice_level, limit,
// cursor. All are optional; an empty query returns the whole menu.
func MenuList(svc menu.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "menu service unavailable"))
			return
		}

		category := validators.SanitizeString(r.URL.Query().Get("category"), 64)
		if category != "" && !strings.EqualFold(category, menu.CategoryAll) && !enums.MenuCategory(strings.ToLower(category)).IsValid() {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeValidation, "unknown category").WithDetails(map[string]any{"field": "category"}))
			return
		}

		spiceLevel, err := validators.ParseOptionalQueryInt(r, "spice_level", enums.SpiceLevelMin, enums.SpiceLevelMax)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ListMenu(r.Context(), menu.ListMenuInput{
			Filters: menu.FilterParams{
				Category:   category,
				Search:     validators.SanitizeString(r.URL.Query().Get("q"), 128),
				SpiceLevel: spiceLevel,
			},
			Pagination: pagination.Params{
				Limit:  limit,
				Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
			},
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// MenuItemDetail serves a single menu item by id.
func MenuItemDetail(svc menu.Service, logg *logger.Logger) http.HandlerFunc {
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

		item, err := svc.GetItem(r.Context(), itemID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, item)
	}
}

// ToppingsList serves the topping catalog in display order.
func ToppingsList(svc menu.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "menu service unavailable"))
			return
		}

		toppings, err := svc.ListToppings(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"toppings": toppings})
	}
}
