package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/scrolly/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunTraceStoreContract runs a suite of tests to verify that a TraceStore implementation
// adheres to the defined interface contract.
func RunTraceStoreContract(t *testing.T, store TraceStore) {
	ctx := context.Background()
	traceID := "contract-trace-" + time.Now().Format("20060102150405")

	newTrace := func(id string) *domain.Trace {
		return &domain.Trace{
			ID:        id,
			Scenario:  "contract",
			CreatedAt: time.Now().UTC().Truncate(time.Second),
			Events: []domain.Event{
				{Type: domain.EventStepEnter, Index: 0, Direction: domain.DirectionDown},
				{Type: domain.EventStepProgress, Index: 0, Progress: 0.5, Direction: domain.DirectionDown},
				{Type: domain.EventStepExit, Index: 0, Direction: domain.DirectionDown, Synthetic: true},
			},
		}
	}

	t.Run("Save and Load", func(t *testing.T) {
		trace := newTrace(traceID)

		err := store.Save(ctx, trace)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, traceID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, trace.Scenario, loaded.Scenario)
		require.Len(t, loaded.Events, 3)
		assert.Equal(t, domain.EventStepProgress, loaded.Events[1].Type)
		assert.Equal(t, 0.5, loaded.Events[1].Progress)
		assert.True(t, loaded.Events[2].Synthetic)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+traceID)
		assert.ErrorIs(t, err, domain.ErrTraceNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, newTrace(traceID)))

		err := store.Delete(ctx, traceID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, traceID)
		assert.ErrorIs(t, err, domain.ErrTraceNotFound, "Load after Delete should return ErrTraceNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := traceID + "-1"
		id2 := traceID + "-2"
		_ = store.Save(ctx, newTrace(id1))
		_ = store.Save(ctx, newTrace(id2))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, id1)
		assert.Contains(t, ids, id2)
	})
}
