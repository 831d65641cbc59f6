package usecase

import (
	"context"
	"log/slog"
)

type ConsumeReviewSubmittedInput struct {
	ReviewID int64  `validate:"required,gt=0"`
	CourseID string `validate:"required"`
	Email    string `validate:"required,email"`
	Name     string `validate:"required"`
	Rating   int    `validate:"required,min=1,max=5"`
}

func (s *Usecase) ConsumeReviewSubmitted(ctx context.Context, in ConsumeReviewSubmittedInput) error {
	ctx, span := s.startSpan(ctx, "ConsumeReviewSubmitted")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		slog.ErrorContext(ctx, "Validation failed", "error", err)
		return nil
	}

	data := s.baseEmailTemplateData()
	data["name"] = in.Name
	data["course_id"] = in.CourseID
	data["rating"] = in.Rating

	s.sendConfirmationEmail(ctx, confirmationEmailInput{
		Email:        in.Email,
		Template:     reviewTemplate,
		TemplateData: data,
	})

	return nil
}
