// Package store persists chat sessions in Redis. A session lives for a
// configured idle TTL; every message refreshes it.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/learnnect/platform-api/internal/chatbot/entity"
	"github.com/learnnect/platform-api/internal/pkg/goerror"
	"github.com/learnnect/platform-api/internal/pkg/instrument"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const keyPrefix = "chatSessions:"

type Redis struct {
	client *redis.Client
	ins    instrument.Instrumentation
}

func NewRedis(client *redis.Client, ins instrument.Instrumentation) *Redis {
	return &Redis{client: client, ins: ins}
}

func (r *Redis) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return r.ins.Tracer("chatbot.outbound.store").Start(ctx, name)
}

func (r *Redis) endSpan(span trace.Span, err error) {
	if err != nil && !errors.Is(err, goerror.ErrNotFound) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func (r *Redis) Put(ctx context.Context, sess entity.Session, ttl time.Duration) (err error) {
	ctx, span := r.startSpan(ctx, "Put")
	defer func() { r.endSpan(span, err) }()

	body, err := json.Marshal(sess)
	if err != nil {
		return err
	}

	err = r.client.Set(ctx, keyPrefix+sess.ID, body, ttl).Err()
	return err
}

func (r *Redis) Get(ctx context.Context, id string) (sess *entity.Session, err error) {
	ctx, span := r.startSpan(ctx, "Get")
	defer func() { r.endSpan(span, err) }()

	body, err := r.client.Get(ctx, keyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		err = goerror.ErrNotFound
		return nil, err
	}
	if err != nil {
		return nil, err
	}

	var s entity.Session
	if err = json.Unmarshal(body, &s); err != nil {
		return nil, err
	}

	return &s, nil
}

func (r *Redis) Delete(ctx context.Context, id string) (err error) {
	ctx, span := r.startSpan(ctx, "Delete")
	defer func() { r.endSpan(span, err) }()

	err = r.client.Del(ctx, keyPrefix+id).Err()
	return err
}
