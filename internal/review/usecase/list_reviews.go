package usecase

import (
	"context"
	"log/slog"

	"github.com/learnnect/platform-api/internal/pkg/goerror"
	"github.com/learnnect/platform-api/internal/review/entity"
)

type ListReviewsInput struct {
	CourseID string
	Limit    int32
	Offset   int32
}

type ListReviewsOutput struct {
	Reviews []entity.Review
}

// ListReviews returns approved reviews for the public course page;
// pending and rejected submissions never leave the database.
func (s *Usecase) ListReviews(ctx context.Context, in ListReviewsInput) (*ListReviewsOutput, error) {
	ctx, span := s.startSpan(ctx, "ListReviews")
	defer span.End()

	revs, err := s.repoDB.ListApproved(ctx, in.CourseID, in.Limit, in.Offset)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list reviews", "course_id", in.CourseID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &ListReviewsOutput{Reviews: revs}, nil
}
