package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fatimaskitchen/storefront/api/responses"
	"github.com/fatimaskitchen/storefront/api/validators"
	"github.com/fatimaskitchen/storefront/internal/inventory"
	"github.com/fatimaskitchen/storefront/pkg/logger"
)

type adjustStockRequest struct {
	Amount int `json:"amount" validate:"required"`
}

func InventoryList(tracker StockTracker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string][]inventory.Item{"items": tracker.List()})
	}
}

// InventoryAdjust adds to or consumes from one stock counter.
func InventoryAdjust(tracker StockTracker, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload adjustStockRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		item, err := tracker.Adjust(r.Context(), chi.URLParam(r, "itemID"), payload.Amount)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, item)
	}
}
