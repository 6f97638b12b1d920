package redis

import (
	"context"
	"fmt"
	"time"

	"dealer-catalog-sync/internal/core/ports"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Compare-and-delete: remove the key only when it still holds our token.
// A plain GET+DEL pair would race with expiry-driven takeover.
var releaseScript = goredis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// Compare-and-expire: extend the lease only when it still holds our token.
var renewScript = goredis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("pexpire", KEYS[1], ARGV[2])
end
return 0
`)

// Lock implements ports.DistributedLock on Redis SET NX/EX primitives.
// Locks are scoped per process type: ProductList and CampaignList syncs may
// run concurrently, two ProductList syncs may not.
type Lock struct {
	client *goredis.Client
	prefix string
	log    zerolog.Logger
}

// NewLock creates a Redis-backed distributed lock.
func NewLock(client *goredis.Client, log zerolog.Logger) *Lock {
	return &Lock{
		client: client,
		prefix: "lock:sync:",
		log:    log,
	}
}

func (l *Lock) key(processType string) string {
	return l.prefix + processType
}

// Acquire attempts a conditional set of the process-type key. Returns
// nil, nil when the key already exists (another holder), an error only when
// the store call itself fails.
func (l *Lock) Acquire(ctx context.Context, processType string, expiry time.Duration) (*ports.LockHandle, error) {
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, l.key(processType), token, expiry).Result()
	if err != nil {
		return nil, fmt.Errorf("redis lock acquire %q: %w", processType, err)
	}
	if !ok {
		return nil, nil
	}

	l.log.Debug().
		Str("process_type", processType).
		Str("token", token).
		Dur("expiry", expiry).
		Msg("lock acquired")

	return &ports.LockHandle{
		ProcessType: processType,
		Token:       token,
		Expiry:      expiry,
	}, nil
}

// Release deletes the key if it still holds the handle's token. Safe to call
// repeatedly; an expired or taken-over lock is logged and left alone.
func (l *Lock) Release(ctx context.Context, handle *ports.LockHandle) error {
	if handle == nil {
		return nil
	}

	deleted, err := releaseScript.Run(ctx, l.client, []string{l.key(handle.ProcessType)}, handle.Token).Int()
	if err != nil {
		return fmt.Errorf("redis lock release %q: %w", handle.ProcessType, err)
	}
	if deleted == 0 {
		l.log.Warn().
			Str("process_type", handle.ProcessType).
			Str("token", handle.Token).
			Msg("lock release was a no-op: key expired or held by another token")
		return nil
	}

	l.log.Debug().
		Str("process_type", handle.ProcessType).
		Msg("lock released")
	return nil
}

// Renew extends the lease if the stored token matches. Returns false,
// without error, on mismatch so the caller can abort cleanly.
func (l *Lock) Renew(ctx context.Context, processType, token string, newExpiry time.Duration) (bool, error) {
	extended, err := renewScript.Run(ctx, l.client,
		[]string{l.key(processType)}, token, newExpiry.Milliseconds()).Int()
	if err != nil {
		return false, fmt.Errorf("redis lock renew %q: %w", processType, err)
	}
	return extended == 1, nil
}

// IsActive reports whether the process-type key exists.
func (l *Lock) IsActive(ctx context.Context, processType string) (bool, error) {
	n, err := l.client.Exists(ctx, l.key(processType)).Result()
	if err != nil {
		return false, fmt.Errorf("redis lock exists %q: %w", processType, err)
	}
	return n > 0, nil
}
