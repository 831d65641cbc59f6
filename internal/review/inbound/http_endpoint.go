package inbound

import (
	"github.com/learnnect/platform-api/internal/pkg/router"
	"github.com/learnnect/platform-api/internal/review/entity"
	"github.com/learnnect/platform-api/internal/review/usecase"
	"github.com/samber/lo"
)

// HTTPEndpoint exposes course reviews: public submission and listing plus
// the moderation decision for admins.
type HTTPEndpoint struct {
	uc uc
}

// SubmitReview accepts a public course review; it stays pending until a
// moderator approves it.
func (h *HTTPEndpoint) SubmitReview(r *router.Request) (any, error) {
	var req SubmitReviewRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.SubmitReview(r.Context(), usecase.SubmitReviewInput{
		CourseID: req.CourseID,
		Name:     req.Name,
		Email:    req.Email,
		Rating:   req.Rating,
		Comment:  req.Comment,
	})
	if err != nil {
		return nil, err
	}

	return SubmitReviewResponse{ReviewID: resp.ReviewID, Status: resp.Status.String()}, nil
}

// ListReviews returns approved reviews, optionally filtered by course.
// Reviewer email addresses never appear in the public payload.
func (h *HTTPEndpoint) ListReviews(r *router.Request) (any, error) {
	limit, _ := r.GetQueryInt32("limit")
	offset, _ := r.GetQueryInt32("offset")

	resp, err := h.uc.ListReviews(r.Context(), usecase.ListReviewsInput{
		CourseID: r.GetQuery("course_id"),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		return nil, err
	}

	return ListReviewsResponse{
		Reviews: lo.Map(resp.Reviews, func(rev entity.Review, _ int) ReviewResponse {
			return ReviewResponse{
				ID:        rev.ID,
				CourseID:  rev.CourseID,
				Name:      rev.Name,
				Rating:    rev.Rating,
				Comment:   rev.Comment,
				CreatedAt: rev.CreatedAt,
			}
		}),
	}, nil
}

// ModerateReview applies an approve or reject decision to a pending review.
func (h *HTTPEndpoint) ModerateReview(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	var req ModerateReviewRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.ModerateReview(r.Context(), usecase.ModerateReviewInput{
		ReviewID: id,
		Action:   usecase.ModerateAction(req.Action),
	})
	if err != nil {
		return nil, err
	}

	return ModerateReviewResponse{ReviewID: resp.ReviewID, Status: resp.Status.String()}, nil
}
