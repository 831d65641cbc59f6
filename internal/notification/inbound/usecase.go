package inbound

import (
	"context"

	"github.com/learnnect/platform-api/internal/notification/usecase"
)

type uc interface {
	ConsumeFormSubmitted(ctx context.Context, in usecase.ConsumeFormSubmittedInput) error
	ConsumeReviewSubmitted(ctx context.Context, in usecase.ConsumeReviewSubmittedInput) error
}
