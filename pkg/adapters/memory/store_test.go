package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/scrolly/pkg/adapters/memory"
	"github.com/aretw0/scrolly/pkg/domain"
	"github.com/aretw0/scrolly/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Contract(t *testing.T) {
	store := memory.NewStore()
	ports.RunTraceStoreContract(t, store)
}

func TestMemoryStore_Isolation(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	trace := &domain.Trace{ID: "a", Events: []domain.Event{{Type: domain.EventStepEnter}}}
	require.NoError(t, store.Save(ctx, trace))
	trace.Events[0].Index = 9

	loaded, err := store.Load(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, 0, loaded.Events[0].Index)

	loaded.Events = nil
	again, err := store.Load(ctx, "a")
	require.NoError(t, err)
	assert.Len(t, again.Events, 1)
}

func TestMemoryStore_ListOrder(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, store.Save(ctx, &domain.Trace{ID: "late", CreatedAt: now}))
	require.NoError(t, store.Save(ctx, &domain.Trace{ID: "early", CreatedAt: now.Add(-time.Hour)}))

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"early", "late"}, ids)
}
