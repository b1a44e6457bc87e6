package controllers

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fatimaskitchen/storefront/api/responses"
	"github.com/fatimaskitchen/storefront/api/validators"
	pkgerrors "github.com/fatimaskitchen/storefront/pkg/errors"
	"github.com/fatimaskitchen/storefront/pkg/logger"
)

const maxSearchQuery = 64

func MenuList(m MenuReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]any{"categories": m.Categories()})
	}
}

func MenuItem(m MenuReader, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "itemID")
		item, ok := m.Lookup(id)
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("menu item %s not found", id)))
			return
		}
		responses.WriteSuccess(w, item)
	}
}

func MenuSearch(m MenuReader, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := validators.SanitizeString(r.URL.Query().Get("q"), maxSearchQuery)
		if q == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "query parameter q is required").
				WithDetails(map[string]any{"field": "q"}))
			return
		}
		responses.WriteSuccess(w, map[string]any{"query": q, "items": m.Search(q)})
	}
}
