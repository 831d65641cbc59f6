package inbound

import (
	"context"

	"github.com/learnnect/platform-api/internal/pkg/router"
	"github.com/learnnect/platform-api/internal/review/usecase"
)

type uc interface {
	SubmitReview(ctx context.Context, in usecase.SubmitReviewInput) (*usecase.SubmitReviewOutput, error)
	ListReviews(ctx context.Context, in usecase.ListReviewsInput) (*usecase.ListReviewsOutput, error)
	ModerateReview(ctx context.Context, in usecase.ModerateReviewInput) (*usecase.ModerateReviewOutput, error)
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.POST("/api/v1/reviews", end.SubmitReview)
	r.GET("/api/v1/reviews", end.ListReviews)
	r.PATCH("/api/v1/reviews/:id/moderate", end.ModerateReview) // need authenticated & authorization
}
