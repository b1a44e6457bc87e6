package controllers

import (
	"net/http"

	"github.com/fatimaskitchen/storefront/api/responses"
	"github.com/fatimaskitchen/storefront/api/validators"
	"github.com/fatimaskitchen/storefront/internal/checkout"
	"github.com/fatimaskitchen/storefront/internal/vouchers"
	"github.com/fatimaskitchen/storefront/pkg/logger"
)

type redeemVoucherRequest struct {
	Code string `json:"code" validate:"required,max=32"`
}

type checkoutRequest struct {
	Name          string `json:"name" validate:"required"`
	Phone         string `json:"phone" validate:"required"`
	Email         string `json:"email"`
	Address       string `json:"address" validate:"required"`
	City          string `json:"city"`
	PaymentMethod string `json:"payment_method" validate:"required"`
}

func (p checkoutRequest) toDetails() checkout.Details {
	return checkout.Details{
		Name:          p.Name,
		Phone:         p.Phone,
		Email:         p.Email,
		Address:       p.Address,
		City:          p.City,
		PaymentMethod: p.PaymentMethod,
	}
}

// VoucherRedeem applies a promo code to the cart.
func VoucherRedeem(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload redeemVoucherRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if _, err := svc.RedeemVoucher(r.Context(), payload.Code); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartResponse(r, svc))
	}
}

func VouchersFeatured(svc checkout.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		featured := svc.FeaturedVouchers()
		if featured == nil {
			featured = []vouchers.Voucher{}
		}
		responses.WriteSuccess(w, map[string]any{"vouchers": featured})
	}
}

func CartBill(svc checkout.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, bill := svc.Bill(r.Context())
		responses.WriteSuccess(w, bill)
	}
}

// CheckoutPlaceOrder runs checkout and returns the recorded order.
func CheckoutPlaceOrder(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload checkoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		order, err := svc.PlaceOrder(r.Context(), payload.toDetails())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}
