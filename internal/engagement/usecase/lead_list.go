package usecase

import (
	"context"
	"log/slog"

	"github.com/learnnect/platform-api/internal/engagement/entity"
	"github.com/learnnect/platform-api/internal/pkg/goerror"
)

type LeadListInput struct {
	FormType entity.FormType
	Limit    int32
	Offset   int32
}

type LeadListOutput struct {
	Leads []entity.Lead
	Total int64
}

// LeadList returns stored submissions for the admin console.
func (s *Usecase) LeadList(ctx context.Context, in LeadListInput) (*LeadListOutput, error) {
	ctx, span := s.startSpan(ctx, "LeadList")
	defer span.End()

	if _, err := s.authenticatedAndAuthorized(ctx, "leads", "read"); err != nil {
		return nil, err
	}

	leads, total, err := s.repoDB.ListLeads(ctx, entity.LeadListFilter{
		FormType: in.FormType,
		Limit:    in.Limit,
		Offset:   in.Offset,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to list leads", "error", err)
		return nil, goerror.NewServer(err)
	}

	return &LeadListOutput{Leads: leads, Total: total}, nil
}
