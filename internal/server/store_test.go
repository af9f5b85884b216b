package server

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreInsertAssignsIDs(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	id1, err := s.Insert(ctx, Entry{Rating: 1})
	require.NoError(t, err)
	id2, err := s.Insert(ctx, Entry{Rating: 2})
	require.NoError(t, err)

	assert.NotEmpty(t, id1)
	assert.NotEqual(t, id1, id2)
	assert.Equal(t, 2, s.Len())
}

func TestMemoryStoreListNewestFirst(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	_, _ = s.Insert(ctx, Entry{Rating: 1, CreatedAt: base})
	_, _ = s.Insert(ctx, Entry{Rating: 3, CreatedAt: base.Add(2 * time.Minute)})
	_, _ = s.Insert(ctx, Entry{Rating: 2, CreatedAt: base.Add(time.Minute)})
	_, _ = s.Insert(ctx, Entry{Rating: 4, CreatedAt: base.Add(2 * time.Minute)})

	list, err := s.List(ctx)
	require.NoError(t, err)

	var ratings []int
	for _, e := range list {
		ratings = append(ratings, e.Rating)
	}
	// Ties keep the later insert first.
	assert.Equal(t, []int{4, 3, 2, 1}, ratings)
}

func TestMemoryStoreClosed(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.Close())

	_, err := s.Insert(context.Background(), Entry{})
	assert.ErrorIs(t, err, ErrStoreClosed)
	_, err = s.List(context.Background())
	assert.ErrorIs(t, err, ErrStoreClosed)
}

func TestMemoryStoreCancelledContext(t *testing.T) {
	s := NewMemoryStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Insert(ctx, Entry{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMemoryStoreConcurrentInserts(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := s.Insert(ctx, Entry{Rating: i%5 + 1, UserAgent: fmt.Sprint(i)})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 50, s.Len())
}
