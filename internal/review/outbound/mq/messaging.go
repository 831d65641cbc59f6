package mq

import (
	"context"
	"encoding/json"

	"github.com/learnnect/platform-api/internal/pkg/instrument"
	"github.com/learnnect/platform-api/internal/pkg/messaging"
	"github.com/learnnect/platform-api/internal/review/usecase"
	"github.com/learnnect/platform-api/internal/shared/event"
	"go.opentelemetry.io/otel/codes"
)

const keyOfCorrelationID string = "cID"

type Messaging struct {
	client messaging.Messaging
	ins    instrument.Instrumentation
}

func NewMessaging(client messaging.Messaging, ins instrument.Instrumentation) *Messaging {
	return &Messaging{client: client, ins: ins}
}

func (m *Messaging) PublishReviewSubmitted(ctx context.Context, msg usecase.ReviewSubmittedEvent) error {
	ctx, span := m.ins.Tracer("review.outbound.mq").Start(ctx, "PublishReviewSubmitted")
	defer span.End()

	body, err := json.Marshal(event.ReviewSubmittedMessage{
		ReviewID: msg.ReviewID,
		CourseID: msg.CourseID,
		Email:    msg.Email,
		Name:     msg.Name,
		Rating:   msg.Rating,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	cID := instrument.GetCorrelationID(ctx)
	if _, err := m.client.Publish(ctx, event.ReviewSubmittedDestination, messaging.OutgoingMessage{
		Body:    body,
		Headers: []messaging.Header{{Key: keyOfCorrelationID, Value: []byte(cID)}},
	}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
