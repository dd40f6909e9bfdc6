package audit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePublisher struct {
	batches [][]Entry
	fail    bool
}

func (f *fakePublisher) Publish(_ context.Context, entries []Entry) error {
	if f.fail {
		return assert.AnError
	}
	f.batches = append(f.batches, entries)
	return nil
}

func (f *fakePublisher) Close() {}

func TestRecorderAppendsEvent(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()
	recorder := NewRecorder(store, nil)

	recorder.Record(ctx, "report.saved", "2025-03")

	entries, err := store.ListUnpublished(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "report.saved", entries[0].EventType)
	assert.Equal(t, "2025-03", entries[0].AggregateID)
}

func TestWorkerDrainMarksPublished(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()
	pub := &fakePublisher{}
	worker := NewWorker(store, pub, nil)

	require.NoError(t, store.Append(ctx, Event{Action: "a", Subject: "s"}))
	require.NoError(t, store.Append(ctx, Event{Action: "b", Subject: "s"}))

	require.NoError(t, worker.drain(ctx))
	require.Len(t, pub.batches, 1)
	assert.Len(t, pub.batches[0], 2)

	left, err := store.ListUnpublished(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, left)
}

func TestWorkerDrainLeavesBatchOnFailure(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()
	pub := &fakePublisher{fail: true}
	worker := NewWorker(store, pub, nil)

	require.NoError(t, store.Append(ctx, Event{Action: "a", Subject: "s"}))
	require.Error(t, worker.drain(ctx))

	left, err := store.ListUnpublished(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, left, 1, "failed batches stay queued for the next tick")
}
