package redis

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLock(t *testing.T) (*Lock, *miniredis.Miniredis) {
	t.Helper()
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	return NewLock(client, zerolog.New(io.Discard)), s
}

func TestLock_Acquire(t *testing.T) {
	lock, s := newTestLock(t)
	ctx := context.Background()

	h, err := lock.Acquire(ctx, "ProductList", 5*time.Minute)
	require.NoError(t, err)
	require.NotNil(t, h)
	assert.Equal(t, "ProductList", h.ProcessType)
	assert.NotEmpty(t, h.Token)

	got, _ := s.Get("lock:sync:ProductList")
	assert.Equal(t, h.Token, got)
}

func TestLock_Acquire_Contended(t *testing.T) {
	lock, _ := newTestLock(t)
	ctx := context.Background()

	first, err := lock.Acquire(ctx, "ProductList", 5*time.Minute)
	require.NoError(t, err)
	require.NotNil(t, first)

	second, err := lock.Acquire(ctx, "ProductList", 5*time.Minute)
	require.NoError(t, err, "contention is not an error")
	assert.Nil(t, second)
}

func TestLock_Acquire_MutualExclusion(t *testing.T) {
	lock, _ := newTestLock(t)
	ctx := context.Background()

	const attempts = 20
	var wg sync.WaitGroup
	var mu sync.Mutex
	granted := 0

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h, err := lock.Acquire(ctx, "ProductList", time.Minute)
			require.NoError(t, err)
			if h != nil {
				mu.Lock()
				granted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, granted, "exactly one concurrent acquire may succeed")
}

func TestLock_Acquire_ProcessTypesIndependent(t *testing.T) {
	lock, _ := newTestLock(t)
	ctx := context.Background()

	products, err := lock.Acquire(ctx, "ProductList", time.Minute)
	require.NoError(t, err)
	require.NotNil(t, products)

	campaigns, err := lock.Acquire(ctx, "CampaignList", time.Minute)
	require.NoError(t, err)
	assert.NotNil(t, campaigns, "locks are scoped per process type")
}

func TestLock_Release_AllowsReacquire(t *testing.T) {
	lock, _ := newTestLock(t)
	ctx := context.Background()

	h, err := lock.Acquire(ctx, "ProductList", time.Minute)
	require.NoError(t, err)
	require.NotNil(t, h)

	require.NoError(t, lock.Release(ctx, h))

	again, err := lock.Acquire(ctx, "ProductList", time.Minute)
	require.NoError(t, err)
	assert.NotNil(t, again)
}

func TestLock_Release_Idempotent(t *testing.T) {
	lock, _ := newTestLock(t)
	ctx := context.Background()

	h, err := lock.Acquire(ctx, "ProductList", time.Minute)
	require.NoError(t, err)

	require.NoError(t, lock.Release(ctx, h))
	require.NoError(t, lock.Release(ctx, h), "second release is a no-op")
	require.NoError(t, lock.Release(ctx, nil))
}

func TestLock_Release_DoesNotRemoveNewHolder(t *testing.T) {
	lock, s := newTestLock(t)
	ctx := context.Background()

	stale, err := lock.Acquire(ctx, "ProductList", 5*time.Second)
	require.NoError(t, err)
	require.NotNil(t, stale)

	// Lease expires, another holder takes over.
	s.FastForward(6 * time.Second)
	fresh, err := lock.Acquire(ctx, "ProductList", time.Minute)
	require.NoError(t, err)
	require.NotNil(t, fresh)

	// Releasing the stale handle must not delete the new holder's key.
	require.NoError(t, lock.Release(ctx, stale))
	got, _ := s.Get("lock:sync:ProductList")
	assert.Equal(t, fresh.Token, got)
}

func TestLock_Renew_CorrectToken(t *testing.T) {
	lock, s := newTestLock(t)
	ctx := context.Background()

	h, err := lock.Acquire(ctx, "ProductList", 5*time.Second)
	require.NoError(t, err)

	// Renewal near the end of the lease keeps the lock held.
	s.FastForward(4 * time.Second)
	ok, err := lock.Renew(ctx, "ProductList", h.Token, 5*time.Second)
	require.NoError(t, err)
	assert.True(t, ok)

	s.FastForward(4 * time.Second)
	assert.True(t, s.Exists("lock:sync:ProductList"), "new expiry applied")
}

func TestLock_Renew_WrongToken(t *testing.T) {
	lock, s := newTestLock(t)
	ctx := context.Background()

	h, err := lock.Acquire(ctx, "ProductList", time.Minute)
	require.NoError(t, err)

	ok, err := lock.Renew(ctx, "ProductList", "not-the-token", time.Hour)
	require.NoError(t, err, "mismatch returns false, not an error")
	assert.False(t, ok)
	got, _ := s.Get("lock:sync:ProductList")
	assert.Equal(t, h.Token, got, "lock untouched")
}

func TestLock_Renew_AfterExpiry(t *testing.T) {
	lock, s := newTestLock(t)
	ctx := context.Background()

	h, err := lock.Acquire(ctx, "ProductList", 2*time.Second)
	require.NoError(t, err)

	s.FastForward(3 * time.Second)
	ok, err := lock.Renew(ctx, "ProductList", h.Token, time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLock_IsActive(t *testing.T) {
	lock, s := newTestLock(t)
	ctx := context.Background()

	active, err := lock.IsActive(ctx, "ProductList")
	require.NoError(t, err)
	assert.False(t, active)

	_, err = lock.Acquire(ctx, "ProductList", 2*time.Second)
	require.NoError(t, err)

	active, err = lock.IsActive(ctx, "ProductList")
	require.NoError(t, err)
	assert.True(t, active)

	s.FastForward(3 * time.Second)
	active, err = lock.IsActive(ctx, "ProductList")
	require.NoError(t, err)
	assert.False(t, active, "expiry destroys the lock passively")
}
