package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/learnnect/platform-api/internal/engagement/entity"
	"github.com/learnnect/platform-api/internal/pkg/goerror"
	"github.com/learnnect/platform-api/internal/pkg/idempotency"
	verificationuc "github.com/learnnect/platform-api/internal/verification/usecase"
)

type CompleteFormInput struct {
	FormType entity.FormType
	Email    string `validate:"required,email"`
	Code     string `validate:"required,len=6,numeric"`
}

type CompleteFormOutput struct {
	Completed         bool
	LeadID            int64
	Message           string
	RemainingAttempts *int
}

// CompleteForm finishes a stashed submission once the emailed code checks
// out. Verification failures are reported with the verification message;
// a persistence failure clears the pending state so the user restarts,
// and the idempotency guard keeps a duplicate callback from inserting the
// lead twice.
func (s *Usecase) CompleteForm(ctx context.Context, in CompleteFormInput) (*CompleteFormOutput, error) {
	ctx, span := s.startSpan(ctx, "CompleteForm")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	formType := in.FormType.Ensure()
	if formType == entity.FormTypeUnknown {
		return nil, goerror.NewInvalidFormat("form_type must be enquiry, contact, newsletter, or signup")
	}

	vr, err := s.otp.VerifyOTP(ctx, verificationuc.VerifyOTPInput{
		Destination: in.Email,
		Code:        in.Code,
		Channel:     "email",
	})
	if err != nil {
		return nil, err
	}
	if !vr.Verified {
		return &CompleteFormOutput{
			Completed:         false,
			Message:           vr.Message,
			RemainingAttempts: vr.RemainingAttempts,
		}, nil
	}

	var out *CompleteFormOutput

	idempKey := fmt.Sprintf("engagement:complete:%s:%s", formType.String(), in.Email)
	err = s.idemp.Exec(ctx, idempKey, func(ctx context.Context) error {
		pending, err := s.stash.Pop(ctx, formType, in.Email)
		if errors.Is(err, goerror.ErrNotFound) {
			return goerror.NewBusiness("No pending submission found. Please submit the form again.", goerror.CodeNotFound)
		}
		if err != nil {
			slog.ErrorContext(ctx, "failed to pop pending form", "form_type", formType.String(), "error", err)
			return goerror.NewServer(err)
		}

		lead, err := s.persistLead(ctx, formType, pending.Email, pending.Fields, pending.AttachmentKey)
		if err != nil {
			return err
		}

		out = &CompleteFormOutput{Completed: true, LeadID: lead.ID, Message: "Form submitted successfully."}
		return nil
	})
	if errors.Is(err, idempotency.ErrAlreadyCompleted) || errors.Is(err, idempotency.ErrAlreadyInProgress) {
		return &CompleteFormOutput{Completed: true, Message: "Form submitted successfully."}, nil
	}
	if err != nil {
		return nil, err
	}

	return out, nil
}
