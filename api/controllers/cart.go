package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/andresmolina/casamolina-backend/api/middleware"
	"github.com/andresmolina/casamolina-backend/api/responses"
	"github.com/andresmolina/casamolina-backend/api/validators"
	"github.com/andresmolina/casamolina-backend/internal/cart"
	pkgerrors "github.com/andresmolina/casamolina-backend/pkg/errors"
	"github.com/andresmolina/casamolina-backend/pkg/logger"
)

const cartSessionHeader = "X-Cart-Session"

// cartSessionID resolves which session cart a request operates on. Signed-in
// users get a cart keyed by their user id; guests supply an opaque session
// id in the X-Cart-Session header.
func cartSessionID(r *http.Request) (string, error) {
	if userID := middleware.UserIDFromContext(r.Context()); userID != "" {
		return "user:" + userID, nil
	}
	session := validators.SanitizeString(r.Header.Get(cartSessionHeader), 128)
	if session == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "cart session required").
			WithDetails(map[string]any{"header": cartSessionHeader})
	}
	return "guest:" + session, nil
}

type addCartItemRequest struct {
	ItemID     uuid.UUID   `json:"item_id" validate:"required"`
	Quantity   int         `json:"quantity" validate:"required,min=1"`
	ToppingIDs []uuid.UUID `json:"topping_ids,omitempty"`
}

// Quantity carries no floor on purpose: values below one are a no-op in the
// cart engine, not an error.
type updateCartLineRequest struct {
	Quantity int `json:"quantity"`
}

type openCustomizationRequest struct {
	ItemID uuid.UUID `json:"item_id" validate:"required"`
}

type toggleToppingRequest struct {
	ToppingID uuid.UUID `json:"topping_id" validate:"required"`
}

type customizationQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// cartHandler wraps the shared session-resolve / respond plumbing around a
// cart operation.
func cartHandler(svc cart.Service, logg *logger.Logger, op func(r *http.Request, sessionID string) (*cart.CartDTO, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		sessionID, err := cartSessionID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := op(r, sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// CartFetch returns the session cart, creating an empty one on first read.
func CartFetch(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return cartHandler(svc, logg, func(r *http.Request, sessionID string) (*cart.CartDTO, error) {
		return svc.GetCart(r.Context(), sessionID)
	})
}

// CartAddItem adds a dish, with optional toppings, straight to the cart.
func CartAddItem(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return cartHandler(svc, logg, func(r *http.Request, sessionID string) (*cart.CartDTO, error) {
		var body addCartItemRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			return nil, err
		}
		return svc.AddItem(r.Context(), sessionID, cart.AddItemInput{
			ItemID:     body.ItemID,
			Quantity:   body.Quantity,
			ToppingIDs: body.ToppingIDs,
		})
	})
}

// CartUpdateLine changes the quantity of the line at the given position.
func CartUpdateLine(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return cartHandler(svc, logg, func(r *http.Request, sessionID string) (*cart.CartDTO, error) {
		index, err := lineIndex(r)
		if err != nil {
			return nil, err
		}
		var body updateCartLineRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			return nil, err
		}
		return svc.UpdateLineQuantity(r.Context(), sessionID, index, body.Quantity)
	})
}

// CartRemoveLine deletes the line at the given position.
func CartRemoveLine(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return cartHandler(svc, logg, func(r *http.Request, sessionID string) (*cart.CartDTO, error) {
		index, err := lineIndex(r)
		if err != nil {
			return nil, err
		}
		return svc.RemoveLine(r.Context(), sessionID, index)
	})
}

// CustomizationOpen opens (or toggles closed) the topping picker for a dish.
func CustomizationOpen(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return cartHandler(svc, logg, func(r *http.Request, sessionID string) (*cart.CartDTO, error) {
		var body openCustomizationRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			return nil, err
		}
		return svc.OpenCustomization(r.Context(), sessionID, body.ItemID)
	})
}

// CustomizationToggleTopping adds or removes a topping in the open picker.
func CustomizationToggleTopping(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return cartHandler(svc, logg, func(r *http.Request, sessionID string) (*cart.CartDTO, error) {
		var body toggleToppingRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			return nil, err
		}
		return svc.ToggleTopping(r.Context(), sessionID, body.ToppingID)
	})
}

// CustomizationQuantity sets the quantity inside the open picker.
func CustomizationQuantity(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return cartHandler(svc, logg, func(r *http.Request, sessionID string) (*cart.CartDTO, error) {
		var body customizationQuantityRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			return nil, err
		}
		return svc.SetCustomizationQuantity(r.Context(), sessionID, body.Quantity)
	})
}

// CustomizationCommit turns the open picker into a cart line.
func CustomizationCommit(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return cartHandler(svc, logg, func(r *http.Request, sessionID string) (*cart.CartDTO, error) {
		return svc.CommitCustomization(r.Context(), sessionID)
	})
}

// CustomizationCancel discards the open picker.
func CustomizationCancel(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return cartHandler(svc, logg, func(r *http.Request, sessionID string) (*cart.CartDTO, error) {
		return svc.CancelCustomization(r.Context(), sessionID)
	})
}

func lineIndex(r *http.Request) (int, error) {
	return validators.ParsePathInt(r, "index", 0)
}
