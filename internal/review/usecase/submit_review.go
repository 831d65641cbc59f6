package usecase

import (
	"context"
	"log/slog"

	"github.com/learnnect/platform-api/internal/pkg/goerror"
	"github.com/learnnect/platform-api/internal/pkg/validate"
	"github.com/learnnect/platform-api/internal/review/entity"
)

type SubmitReviewInput struct {
	CourseID string `validate:"required"`
	Name     string `validate:"required"`
	Email    string `validate:"required"`
	Rating   int16  `validate:"required,min=1,max=5"`
	Comment  string `validate:"required"`
}

type SubmitReviewOutput struct {
	ReviewID int64
	Status   entity.Status
}

// SubmitReview stores a review as pending moderation. The submission
// event is published best effort so the reviewer gets an acknowledgement
// email without the write depending on the broker.
func (s *Usecase) SubmitReview(ctx context.Context, in SubmitReviewInput) (*SubmitReviewOutput, error) {
	ctx, span := s.startSpan(ctx, "SubmitReview")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}
	if msg := validate.EmailError(in.Email); msg != "" {
		return nil, goerror.NewBusiness(msg, goerror.CodeInvalidInput)
	}

	rev := entity.Review{
		ID:        s.uid.Generate(),
		CourseID:  in.CourseID,
		Name:      in.Name,
		Email:     in.Email,
		Rating:    in.Rating,
		Comment:   in.Comment,
		Status:    entity.StatusPending,
		CreatedAt: s.clock.Now(),
	}

	if err := s.repoDB.CreateReview(ctx, rev); err != nil {
		slog.ErrorContext(ctx, "failed to create review", "course_id", in.CourseID, "error", err)
		return nil, goerror.NewServer(err)
	}

	s.goroutine.Go(context.WithoutCancel(ctx), func(ctx context.Context) error {
		if err := s.repoMsg.PublishReviewSubmitted(ctx, ReviewSubmittedEvent{
			ReviewID: rev.ID,
			CourseID: rev.CourseID,
			Email:    rev.Email,
			Name:     rev.Name,
			Rating:   int(rev.Rating),
		}); err != nil {
			slog.WarnContext(ctx, "failed to publish review submitted event", "review_id", rev.ID, "error", err)
		}
		return nil
	})

	return &SubmitReviewOutput{ReviewID: rev.ID, Status: entity.StatusPending}, nil
}
