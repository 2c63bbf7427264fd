package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/andresmolina/casamolina-backend/api/middleware"
	"github.com/andresmolina/casamolina-backend/api/responses"
	"github.com/andresmolina/casamolina-backend/internal/checkout"
	pkgerrors "github.com/andresmolina/casamolina-backend/pkg/errors"
	"github.com/andresmolina/casamolina-backend/pkg/logger"
)

// Checkout places an order from the session cart. The route allows
// anonymous callers through so the service can answer with its own
// unauthorized error instead of a generic 401.
func Checkout(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		sessionID, err := cartSessionID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		userID := uuid.Nil
		if raw := middleware.UserIDFromContext(r.Context()); raw != "" {
			parsed, parseErr := uuid.Parse(raw)
			if parseErr != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, parseErr, "invalid user id"))
				return
			}
			userID = parsed
		}

		order, err := svc.Checkout(r.Context(), userID, sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}
