package expiry

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackmichael/instaapp/internal/domain"
)

var t0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestMemoryQueue_DueOrder(t *testing.T) {
	ctx := context.Background()
	q := NewMemoryQueue(time.Minute)

	for i, offset := range []time.Duration{3 * time.Hour, time.Hour, 2 * time.Hour} {
		require.NoError(t, q.Enqueue(ctx, domain.ExpiryJob{ID: string(rune('a' + i)), StoryID: int64(i), RunAt: t0.Add(offset)}))
	}

	due, err := q.Due(ctx, t0.Add(2*time.Hour), 10)
	require.NoError(t, err)
	require.Len(t, due, 2)
	assert.Equal(t, "b", due[0].ID)
	assert.Equal(t, "c", due[1].ID)
	assert.Equal(t, 3, q.Len())
}

func TestMemoryQueue_Limit(t *testing.T) {
	ctx := context.Background()
	q := NewMemoryQueue(time.Minute)
	for _, id := range []string{"x", "y", "z"} {
		require.NoError(t, q.Enqueue(ctx, domain.ExpiryJob{ID: id, RunAt: t0}))
	}

	due, err := q.Due(ctx, t0, 2)
	require.NoError(t, err)
	assert.Len(t, due, 2)

	due, err = q.Due(ctx, t0, 2)
	require.NoError(t, err)
	assert.Len(t, due, 1)
}

func TestMemoryQueue_RedeliversAfterLease(t *testing.T) {
	ctx := context.Background()
	q := NewMemoryQueue(time.Minute)
	require.NoError(t, q.Enqueue(ctx, domain.ExpiryJob{ID: "j", StoryID: 1, RunAt: t0}))

	first, err := q.Due(ctx, t0, 10)
	require.NoError(t, err)
	require.Len(t, first, 1)

	during, err := q.Due(ctx, t0.Add(30*time.Second), 10)
	require.NoError(t, err)
	assert.Empty(t, during)

	after, err := q.Due(ctx, t0.Add(time.Minute), 10)
	require.NoError(t, err)
	require.Len(t, after, 1)
	assert.Equal(t, "j", after[0].ID)

	require.NoError(t, q.Complete(ctx, "j"))
	assert.Zero(t, q.Len())

	gone, err := q.Due(ctx, t0.Add(time.Hour), 10)
	require.NoError(t, err)
	assert.Empty(t, gone)
}

func TestMemoryQueue_ConcurrentUse(t *testing.T) {
	ctx := context.Background()
	q := NewMemoryQueue(time.Hour)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = q.Enqueue(ctx, domain.ExpiryJob{ID: string(rune(0x4e00 + i)), RunAt: t0})
		}(i)
	}
	wg.Wait()

	seen := make(map[string]bool)
	var mu sync.Mutex
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			jobs, _ := q.Due(ctx, t0, 10)
			mu.Lock()
			defer mu.Unlock()
			for _, j := range jobs {
				assert.False(t, seen[j.ID], "job %s delivered twice", j.ID)
				seen[j.ID] = true
			}
		}()
	}
	wg.Wait()
	assert.Len(t, seen, 50)
}
