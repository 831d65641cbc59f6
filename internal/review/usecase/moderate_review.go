package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/learnnect/platform-api/internal/pkg/goerror"
	"github.com/learnnect/platform-api/internal/review/entity"
)

type ModerateAction string

const (
	ModerateActionApprove ModerateAction = "approve"
	ModerateActionReject  ModerateAction = "reject"
)

type ModerateReviewInput struct {
	ReviewID int64          `validate:"required"`
	Action   ModerateAction `validate:"required,oneof=approve reject"`
}

type ModerateReviewOutput struct {
	ReviewID int64
	Status   entity.Status
}

// ModerateReview applies an approve or reject decision to a pending
// review, recording the moderator and decision time. A review that was
// already decided reports not found rather than flipping again.
func (s *Usecase) ModerateReview(ctx context.Context, in ModerateReviewInput) (*ModerateReviewOutput, error) {
	ctx, span := s.startSpan(ctx, "ModerateReview")
	defer span.End()

	clm, err := s.authenticatedAndAuthorized(ctx, "reviews", "moderate")
	if err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	status := entity.StatusApproved
	if in.Action == ModerateActionReject {
		status = entity.StatusRejected
	}

	if err := s.repoDB.Moderate(ctx, in.ReviewID, status, clm.UserID, s.clock.Now()); err != nil {
		if errors.Is(err, goerror.ErrNotFound) {
			return nil, goerror.NewBusiness("Review not found or already moderated", goerror.CodeNotFound)
		}

		slog.ErrorContext(ctx, "failed to moderate review", "review_id", in.ReviewID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &ModerateReviewOutput{ReviewID: in.ReviewID, Status: status}, nil
}
