// Package store persists one-time-code records in Redis, playing the
// document-store role: one JSON document per (channel, destination) key
// under the otpVerifications keyspace.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/learnnect/platform-api/internal/pkg/goerror"
	"github.com/learnnect/platform-api/internal/pkg/instrument"
	"github.com/learnnect/platform-api/internal/verification/entity"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const keyPrefix = "otpVerifications:"

type Redis struct {
	client *redis.Client
	ins    instrument.Instrumentation
}

func NewRedis(client *redis.Client, ins instrument.Instrumentation) *Redis {
	return &Redis{client: client, ins: ins}
}

func (r *Redis) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return r.ins.Tracer("verification.outbound.store").Start(ctx, name)
}

func (r *Redis) endSpan(span trace.Span, err error) {
	if err != nil && !errors.Is(err, goerror.ErrNotFound) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// Put writes the record unconditionally. A concurrent send for the same
// key loses to the last writer; that narrow race is accepted, matching the
// one-live-code-per-destination contract.
func (r *Redis) Put(ctx context.Context, key string, rec entity.Record, ttl time.Duration) (err error) {
	ctx, span := r.startSpan(ctx, "Put")
	defer func() { r.endSpan(span, err) }()

	body, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	err = r.client.Set(ctx, keyPrefix+key, body, ttl).Err()
	return err
}

func (r *Redis) Get(ctx context.Context, key string) (rec *entity.Record, err error) {
	ctx, span := r.startSpan(ctx, "Get")
	defer func() { r.endSpan(span, err) }()

	body, err := r.client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, goerror.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var out entity.Record
	if err = json.Unmarshal(body, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// Update persists the whole record again, keeping the TTL slack so an
// expired record remains observable until the lazy delete.
func (r *Redis) Update(ctx context.Context, key string, rec entity.Record, ttl time.Duration) error {
	return r.Put(ctx, key, rec, ttl)
}

func (r *Redis) Delete(ctx context.Context, key string) (err error) {
	ctx, span := r.startSpan(ctx, "Delete")
	defer func() { r.endSpan(span, err) }()

	err = r.client.Del(ctx, keyPrefix+key).Err()
	return err
}
