package mq

import (
	"context"
	"encoding/json"

	"github.com/learnnect/platform-api/internal/engagement/usecase"
	"github.com/learnnect/platform-api/internal/pkg/instrument"
	"github.com/learnnect/platform-api/internal/pkg/messaging"
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

func (m *Messaging) PublishFormSubmitted(ctx context.Context, msg usecase.FormSubmittedEvent) error {
	ctx, span := m.ins.Tracer("engagement.outbound.mq").Start(ctx, "PublishFormSubmitted")
	defer span.End()

	body, err := json.Marshal(event.FormSubmittedMessage{
		LeadID:   msg.LeadID,
		FormType: msg.FormType,
		Email:    msg.Email,
		Name:     msg.Name,
		Fields:   msg.Fields,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	cID := instrument.GetCorrelationID(ctx)
	if _, err := m.client.Publish(ctx, event.FormSubmittedDestination, messaging.OutgoingMessage{
		Body:    body,
		Headers: []messaging.Header{{Key: keyOfCorrelationID, Value: []byte(cID)}},
	}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
