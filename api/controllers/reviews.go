package controllers

import (
	"net/http"

	"github.com/fatimaskitchen/storefront/api/responses"
	"github.com/fatimaskitchen/storefront/api/validators"
	"github.com/fatimaskitchen/storefront/internal/reviews"
	"github.com/fatimaskitchen/storefront/pkg/logger"
)

type reviewsResponse struct {
	Reviews []reviews.Review `json:"reviews"`
	Summary reviews.Summary  `json:"summary"`
}

type submitReviewRequest struct {
	Name    string `json:"name"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

func ReviewsList(board ReviewBoard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, reviewsResponse{Reviews: board.List(), Summary: board.Summary()})
	}
}

// ReviewSubmit posts a guest review. A missing rating counts as five stars.
func ReviewSubmit(board ReviewBoard, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload submitReviewRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		review, err := board.Submit(r.Context(), reviews.Submission(payload))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, review)
	}
}
