package store

import (
	"context"
	"errors"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/a3tai/mcp-planning-hours/internal/schedule"
)

// RetryPolicy bounds the retries of store writes.
type RetryPolicy struct {
	Attempts uint
	Delay    time.Duration
}

// DefaultRetryPolicy suits a database reached over the network.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{Attempts: 3, Delay: 200 * time.Millisecond}
}

// RetryingStore retries writes that fail with transient errors. Reads are
// passed through.
type RetryingStore struct {
	Store
	policy RetryPolicy
	logger *zap.Logger
}

// WithRetry wraps s so that UpsertWeeks and DeletePerson are retried.
func WithRetry(s Store, policy RetryPolicy, logger *zap.Logger) *RetryingStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	if policy.Attempts == 0 {
		policy.Attempts = 1
	}
	return &RetryingStore{Store: s, policy: policy, logger: logger}
}

func (r *RetryingStore) options(ctx context.Context, op string) []retry.Option {
	return []retry.Option{
		retry.Context(ctx),
		retry.Attempts(r.policy.Attempts),
		retry.Delay(r.policy.Delay),
		retry.LastErrorOnly(true),
		retry.RetryIf(retryable),
		retry.OnRetry(func(n uint, err error) {
			r.logger.Warn("store write failed, retrying",
				zap.String("op", op),
				zap.Uint("attempt", n+1),
				zap.Error(err))
		}),
	}
}

func (r *RetryingStore) UpsertWeeks(ctx context.Context, person string, importID uuid.UUID, weeks schedule.WeeklyHours) (int, error) {
	return retry.DoWithData(func() (int, error) {
		return r.Store.UpsertWeeks(ctx, person, importID, weeks)
	}, r.options(ctx, "upsert")...)
}

func (r *RetryingStore) DeletePerson(ctx context.Context, person string) (int, error) {
	return retry.DoWithData(func() (int, error) {
		return r.Store.DeletePerson(ctx, person)
	}, r.options(ctx, "delete")...)
}

func retryable(err error) bool {
	return !errors.Is(err, ErrNotFound) &&
		!errors.Is(err, context.Canceled) &&
		!errors.Is(err, context.DeadlineExceeded)
}
