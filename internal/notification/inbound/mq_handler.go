package inbound

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/learnnect/platform-api/internal/notification/usecase"
	"github.com/learnnect/platform-api/internal/pkg/instrument"
	"github.com/learnnect/platform-api/internal/pkg/messaging"
	"github.com/learnnect/platform-api/internal/pkg/uid"
	"github.com/learnnect/platform-api/internal/shared/event"
)

const keyOfCorrelationID string = "cID"

type MQHandler struct {
	uc   uc
	uuid uid.StringID
	ins  instrument.Instrumentation
}

func (h *MQHandler) ensureCorrelationID(ctx context.Context, headers []messaging.Header) context.Context {
	for i := range headers {
		if headers[i].Key == keyOfCorrelationID {
			return instrument.SetCorrelationID(ctx, string(headers[i].Value))
		}
	}
	return instrument.SetCorrelationID(ctx, h.uuid.Generate())
}

func (h *MQHandler) FormSubmittedNotification(ctx context.Context, msg messaging.Message) error {
	ctx = h.ensureCorrelationID(ctx, msg.Headers())

	ctx, span := h.ins.Tracer("notification.inbound.mq").Start(ctx, "FormSubmittedNotification")
	defer span.End()

	body := msg.Body()
	slog.InfoContext(ctx, "consume: form submitted notification", "msg_body", string(body))

	var payload event.FormSubmittedMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		slog.ErrorContext(ctx, "failed to parse message body of form submitted notification", "msg_body", string(body), "error", err)
		return nil
	}

	if err := h.uc.ConsumeFormSubmitted(ctx, usecase.ConsumeFormSubmittedInput{
		LeadID:   payload.LeadID,
		FormType: payload.FormType,
		Email:    payload.Email,
		Name:     payload.Name,
		Fields:   payload.Fields,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to consume form submitted", "msg_body", string(body), "error", err)
		return err
	}

	return nil
}

func (h *MQHandler) ReviewSubmittedNotification(ctx context.Context, msg messaging.Message) error {
	ctx = h.ensureCorrelationID(ctx, msg.Headers())

	ctx, span := h.ins.Tracer("notification.inbound.mq").Start(ctx, "ReviewSubmittedNotification")
	defer span.End()

	body := msg.Body()
	slog.InfoContext(ctx, "consume: review submitted notification", "msg_body", string(body))

	var payload event.ReviewSubmittedMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		slog.ErrorContext(ctx, "failed to parse message body of review submitted notification", "msg_body", string(body), "error", err)
		return nil
	}

	if err := h.uc.ConsumeReviewSubmitted(ctx, usecase.ConsumeReviewSubmittedInput{
		ReviewID: payload.ReviewID,
		CourseID: payload.CourseID,
		Email:    payload.Email,
		Name:     payload.Name,
		Rating:   payload.Rating,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to consume review submitted", "msg_body", string(body), "error", err)
		return err
	}

	return nil
}
