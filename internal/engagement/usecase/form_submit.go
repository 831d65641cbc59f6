package usecase

import (
	"context"
	"log/slog"

	"github.com/learnnect/platform-api/internal/engagement/entity"
	"github.com/learnnect/platform-api/internal/pkg/goerror"
	"github.com/learnnect/platform-api/internal/pkg/validate"
	verificationuc "github.com/learnnect/platform-api/internal/verification/usecase"
)

type SubmitFormInput struct {
	FormType      entity.FormType
	Fields        map[string]string `validate:"required"`
	AttachmentKey string
}

type SubmitFormOutput struct {
	OTPRequired bool
	LeadID      int64
	Message     string
}

// SubmitForm takes a public form submission. With verification disabled
// the lead is stored immediately and the confirmation event is published
// best effort. With verification enabled the payload is stashed, a code
// is emailed, and the caller must come back through CompleteForm.
func (s *Usecase) SubmitForm(ctx context.Context, in SubmitFormInput) (*SubmitFormOutput, error) {
	ctx, span := s.startSpan(ctx, "SubmitForm")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	formType := in.FormType.Ensure()
	if formType == entity.FormTypeUnknown {
		return nil, goerror.NewInvalidFormat("form_type must be enquiry, contact, newsletter, or signup")
	}

	email := in.Fields[s.emailField(formType)]
	if msg := validate.EmailError(email); msg != "" {
		return nil, goerror.NewBusiness(msg, goerror.CodeInvalidInput)
	}

	if !s.requireOTP() {
		lead, err := s.persistLead(ctx, formType, email, in.Fields, in.AttachmentKey)
		if err != nil {
			return nil, err
		}

		return &SubmitFormOutput{OTPRequired: false, LeadID: lead.ID, Message: "Form submitted successfully."}, nil
	}

	out, err := s.otp.SendEmailOTP(ctx, verificationuc.SendEmailOTPInput{
		Destination: email,
		Purpose:     "signup",
	})
	if err != nil {
		return nil, err
	}
	if !out.Sent {
		return nil, goerror.NewBusiness(out.Message, goerror.CodeInvalidInput)
	}

	pending := entity.PendingForm{
		FormType:      formType,
		Email:         email,
		Fields:        in.Fields,
		AttachmentKey: in.AttachmentKey,
		CreatedAt:     s.clock.Now(),
	}
	if err := s.stash.Put(ctx, pending, s.stashTTL()); err != nil {
		slog.ErrorContext(ctx, "failed to stash pending form", "form_type", formType.String(), "error", err)
		return nil, goerror.NewServer(err)
	}

	return &SubmitFormOutput{OTPRequired: true, Message: out.Message}, nil
}

// persistLead stores the lead and publishes the submission event without
// blocking the caller; a lost event costs one confirmation email, not the
// submission.
func (s *Usecase) persistLead(ctx context.Context, formType entity.FormType, email string, fields map[string]string, attachmentKey string) (*entity.Lead, error) {
	lead := entity.Lead{
		ID:            s.uid.Generate(),
		FormType:      formType,
		Name:          fields["name"],
		Email:         email,
		Phone:         fields["phone"],
		Fields:        fields,
		AttachmentKey: attachmentKey,
		CreatedAt:     s.clock.Now(),
	}

	if err := s.repoDB.CreateLead(ctx, lead); err != nil {
		slog.ErrorContext(ctx, "failed to create lead", "form_type", formType.String(), "error", err)
		return nil, goerror.NewServer(err)
	}

	s.goroutine.Go(context.WithoutCancel(ctx), func(ctx context.Context) error {
		if err := s.repoMsg.PublishFormSubmitted(ctx, FormSubmittedEvent{
			LeadID:   lead.ID,
			FormType: formType.String(),
			Email:    email,
			Name:     lead.Name,
			Fields:   fields,
		}); err != nil {
			slog.WarnContext(ctx, "failed to publish form submitted event", "lead_id", lead.ID, "error", err)
		}
		return nil
	})

	return &lead, nil
}
