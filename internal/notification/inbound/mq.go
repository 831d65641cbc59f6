package inbound

import (
	"context"
	"log/slog"
	"slices"

	"github.com/learnnect/platform-api/internal/pkg/config"
	"github.com/learnnect/platform-api/internal/pkg/goroutine"
	"github.com/learnnect/platform-api/internal/pkg/instrument"
	"github.com/learnnect/platform-api/internal/pkg/messaging"
	"github.com/learnnect/platform-api/internal/pkg/uid"
	"github.com/learnnect/platform-api/internal/shared/event"
)

func RegisterMQConsumer(
	ctx context.Context,
	cfg config.Config,
	routine *goroutine.Manager,
	messenger messaging.Messaging,
	uuid uid.StringID,
	uc uc,
	ins instrument.Instrumentation,
) {
	mqHandler := &MQHandler{uc: uc, uuid: uuid, ins: ins}

	enableConsumerNames := cfg.GetArray("modules.notification.consumer_names")

	var consumers = []struct {
		name               string
		topic              string // destination where publisher sent message
		nsqConsumerName    string // for nsq
		natsConsumerName   string // for nats
		kafkaConsumerName  string // for kafka
		pubsubConsumerName string // for google pubsub
		handler            messaging.Handler
	}{
		{
			name:               event.FormSubmittedConsumerNotification,
			topic:              event.FormSubmittedDestination,
			nsqConsumerName:    event.FormSubmittedConsumerNotification,
			natsConsumerName:   event.FormSubmittedConsumerNotification,
			kafkaConsumerName:  event.FormSubmittedConsumerNotification,
			pubsubConsumerName: event.FormSubmittedConsumerNotification,
			handler:            mqHandler.FormSubmittedNotification,
		},
		{
			name:               event.ReviewSubmittedConsumerNotification,
			topic:              event.ReviewSubmittedDestination,
			nsqConsumerName:    event.ReviewSubmittedConsumerNotification,
			natsConsumerName:   event.ReviewSubmittedConsumerNotification,
			kafkaConsumerName:  event.ReviewSubmittedConsumerNotification,
			pubsubConsumerName: event.ReviewSubmittedConsumerNotification,
			handler:            mqHandler.ReviewSubmittedNotification,
		},
	}

	for _, consumer := range consumers {
		if len(enableConsumerNames) > 0 && slices.Contains(enableConsumerNames, consumer.name) {
			routine.Go(ctx, func(pCtx context.Context) error {
				slog.InfoContext(ctx, "Running job for handling consumer", "consumer", consumer.name)
				return messenger.Consume(pCtx,
					consumer.topic,
					consumer.handler,
					messaging.WithChannel(consumer.nsqConsumerName),
					messaging.WithQueueGroup(consumer.natsConsumerName),
					messaging.WithGroup(consumer.kafkaConsumerName),
					messaging.WithSubscription(consumer.pubsubConsumerName),
					messaging.WithAutoAck(true),
					messaging.WithConcurrency(10),
					messaging.WithMaxInFlight(10),
				)
			})
		}
	}
}
