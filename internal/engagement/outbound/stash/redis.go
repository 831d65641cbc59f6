// Package stash parks form submissions in Redis while the submitter's
// email address is being verified.
package stash

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/learnnect/platform-api/internal/engagement/entity"
	"github.com/learnnect/platform-api/internal/pkg/goerror"
	"github.com/learnnect/platform-api/internal/pkg/instrument"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const keyPrefix = "pendingForms:"

type Redis struct {
	client *redis.Client
	ins    instrument.Instrumentation
}

func NewRedis(client *redis.Client, ins instrument.Instrumentation) *Redis {
	return &Redis{client: client, ins: ins}
}

func key(formType entity.FormType, email string) string {
	return keyPrefix + formType.String() + ":" + email
}

func (r *Redis) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return r.ins.Tracer("engagement.outbound.stash").Start(ctx, name)
}

func (r *Redis) endSpan(span trace.Span, err error) {
	if err != nil && !errors.Is(err, goerror.ErrNotFound) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func (r *Redis) Put(ctx context.Context, form entity.PendingForm, ttl time.Duration) (err error) {
	ctx, span := r.startSpan(ctx, "Put")
	defer func() { r.endSpan(span, err) }()

	body, err := json.Marshal(form)
	if err != nil {
		return err
	}

	err = r.client.Set(ctx, key(form.FormType, form.Email), body, ttl).Err()
	return err
}

// Pop atomically takes the pending form, so a duplicate completion finds
// nothing.
func (r *Redis) Pop(ctx context.Context, formType entity.FormType, email string) (form *entity.PendingForm, err error) {
	ctx, span := r.startSpan(ctx, "Pop")
	defer func() { r.endSpan(span, err) }()

	body, err := r.client.GetDel(ctx, key(formType, email)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, goerror.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var out entity.PendingForm
	if err = json.Unmarshal(body, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (r *Redis) Delete(ctx context.Context, formType entity.FormType, email string) (err error) {
	ctx, span := r.startSpan(ctx, "Delete")
	defer func() { r.endSpan(span, err) }()

	err = r.client.Del(ctx, key(formType, email)).Err()
	return err
}
