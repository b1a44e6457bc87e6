package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fatimaskitchen/storefront/api/responses"
	"github.com/fatimaskitchen/storefront/api/validators"
	"github.com/fatimaskitchen/storefront/internal/cart"
	"github.com/fatimaskitchen/storefront/internal/checkout"
	"github.com/fatimaskitchen/storefront/internal/pricing"
	"github.com/fatimaskitchen/storefront/pkg/logger"
)

type cartResponse struct {
	Cart cart.State   `json:"cart"`
	Bill pricing.Bill `json:"bill"`
}

type addItemRequest struct {
	ItemID string `json:"item_id" validate:"required,max=64"`
}

type removeItemResponse struct {
	cartResponse
	Removed bool `json:"removed"`
}

func newCartResponse(r *http.Request, svc checkout.Service) cartResponse {
	state, bill := svc.Bill(r.Context())
	return cartResponse{Cart: state, Bill: bill}
}

func CartGet(svc checkout.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, newCartResponse(r, svc))
	}
}

// CartAddItem adds one unit of a menu item to the cart.
func CartAddItem(m MenuReader, store CartMutator, svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload addItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		candidate, err := m.Candidate(payload.ItemID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := store.AddItem(r.Context(), candidate); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartResponse(r, svc))
	}
}

// CartRemoveItem takes one unit of an item out. Unknown ids leave the cart as is.
func CartRemoveItem(store CartMutator, svc checkout.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		removed := store.RemoveItem(r.Context(), chi.URLParam(r, "itemID"))
		responses.WriteSuccess(w, removeItemResponse{
			cartResponse: newCartResponse(r, svc),
			Removed:      removed,
		})
	}
}

func CartClear(store CartMutator, svc checkout.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store.ClearCart(r.Context())
		responses.WriteSuccess(w, newCartResponse(r, svc))
	}
}
