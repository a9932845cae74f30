package store

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a3tai/mcp-planning-hours/internal/schedule"
)

// flakyStore fails the first failures writes.
type flakyStore struct {
	*MemoryStore
	failures int
	calls    int
}

func (f *flakyStore) UpsertWeeks(ctx context.Context, person string, importID uuid.UUID, weeks schedule.WeeklyHours) (int, error) {
	f.calls++
	if f.calls <= f.failures {
		return 0, errors.New("transient")
	}
	return f.MemoryStore.UpsertWeeks(ctx, person, importID, weeks)
}

func TestRetryingStore_RetriesTransientErrors(t *testing.T) {
	flaky := &flakyStore{MemoryStore: NewMemoryStore(), failures: 2}
	s := WithRetry(flaky, RetryPolicy{Attempts: 3}, nil)

	n, err := s.UpsertWeeks(context.Background(), "Jean Dupont", uuid.New(), schedule.WeeklyHours{"2024-W01": 7})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 3, flaky.calls)
}

func TestRetryingStore_GivesUp(t *testing.T) {
	flaky := &flakyStore{MemoryStore: NewMemoryStore(), failures: 5}
	s := WithRetry(flaky, RetryPolicy{Attempts: 2}, nil)

	_, err := s.UpsertWeeks(context.Background(), "Jean Dupont", uuid.New(), schedule.WeeklyHours{"2024-W01": 7})
	require.Error(t, err)
	assert.Equal(t, "transient", err.Error())
	assert.Equal(t, 2, flaky.calls)
}

func TestRetryingStore_NotFoundIsFinal(t *testing.T) {
	s := WithRetry(NewMemoryStore(), DefaultRetryPolicy(), nil)

	_, err := s.DeletePerson(context.Background(), "Nobody")
	assert.ErrorIs(t, err, ErrNotFound)

	persons, err := s.Persons(context.Background())
	require.NoError(t, err)
	assert.Empty(t, persons)
}
