package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/fatimaskitchen/storefront/api/responses"
	"github.com/fatimaskitchen/storefront/internal/orders"
	"github.com/fatimaskitchen/storefront/pkg/enums"
	pkgerrors "github.com/fatimaskitchen/storefront/pkg/errors"
	"github.com/fatimaskitchen/storefront/pkg/logger"
	"github.com/fatimaskitchen/storefront/pkg/pagination"
)

// OrdersList pages through placed orders, newest first.
func OrdersList(book OrderReader, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		params := orders.ListParams{Cursor: query.Get("cursor")}

		if raw := query.Get("status"); raw != "" {
			status, err := enums.ParseOrderStatus(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status filter").
					WithDetails(map[string]any{"field": "status"}))
				return
			}
			params.Status = status
		}

		limit, err := pagination.ParseLimit(query.Get("limit"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid limit").
				WithDetails(map[string]any{"field": "limit"}))
			return
		}
		params.Limit = limit

		page, err := book.List(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}

func OrderGet(book OrderReader, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseOrderID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		order, err := book.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

// OrderAdvance moves an order to the next kitchen status.
func OrderAdvance(book OrderReader, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseOrderID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		order, err := book.Advance(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

func parseOrderID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "orderID"))
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid order id")
	}
	return id, nil
}
