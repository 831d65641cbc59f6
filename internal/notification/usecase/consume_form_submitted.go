package usecase

import (
	"context"
	"log/slog"
)

type ConsumeFormSubmittedInput struct {
	LeadID   int64  `validate:"required,gt=0"`
	FormType string `validate:"required"`
	Email    string `validate:"required,email"`
	Name     string
	Fields   map[string]string
}

func (s *Usecase) ConsumeFormSubmitted(ctx context.Context, in ConsumeFormSubmittedInput) error {
	ctx, span := s.startSpan(ctx, "ConsumeFormSubmitted")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		slog.ErrorContext(ctx, "Validation failed", "error", err)
		return nil
	}

	tpl, ok := formTemplates[in.FormType]
	if !ok {
		slog.WarnContext(ctx, "no confirmation template for form type", "form_type", in.FormType, "lead_id", in.LeadID)
		return nil
	}

	data := s.baseEmailTemplateData()
	data["name"] = in.Name
	for k, v := range in.Fields {
		if _, taken := data[k]; !taken {
			data[k] = v
		}
	}

	s.sendConfirmationEmail(ctx, confirmationEmailInput{
		Email:        in.Email,
		Template:     tpl,
		TemplateData: data,
	})

	return nil
}
