package redis

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/oklog/ulid/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const defaultLockTTL = 10 * time.Second

var errLockHeld = errors.New("lock held by another owner")

// releaseScript deletes the key only while it still holds our token, so an
// expired lock taken over by someone else is never released by us.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// UserLocker implements usecase.UserLocker with SET NX PX locks.
type UserLocker struct {
	client          *redis.Client
	prefix          string
	ttl             time.Duration
	initialInterval time.Duration
	maxInterval     time.Duration
}

// NewUserLocker creates a new UserLocker. The TTL bounds how long a crashed
// holder can block other writers.
func NewUserLocker(client *redis.Client, ttl time.Duration) *UserLocker {
	if ttl <= 0 {
		ttl = defaultLockTTL
	}

	return &UserLocker{
		client:          client,
		prefix:          "lock:user:",
		ttl:             ttl,
		initialInterval: 10 * time.Millisecond,
		maxInterval:     250 * time.Millisecond,
	}
}

// Lock polls until the user's lock is acquired or ctx is done.
func (l *UserLocker) Lock(ctx context.Context, userID int64) (func(), error) {
	key := l.key(userID)
	token := ulid.Make().String()

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = l.initialInterval
	b.MaxInterval = l.maxInterval
	b.MaxElapsedTime = 0

	err := backoff.Retry(func() error {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return backoff.Permanent(err)
		}
		if !ok {
			return errLockHeld
		}
		return nil
	}, backoff.WithContext(b, ctx))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("acquire lock %s: %w", key, ctxErr)
		}
		return nil, fmt.Errorf("acquire lock %s: %w", key, err)
	}

	logger := zerolog.Ctx(ctx)

	var once sync.Once
	return func() {
		once.Do(func() {
			releaseCtx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()

			released, err := releaseScript.Run(releaseCtx, l.client, []string{key}, token).Int()
			if err != nil {
				logger.Warn().Err(err).Str("key", key).Msg("failed to release lock")
				return
			}
			if released == 0 {
				logger.Error().
					Str("key", key).
					Dur("ttl", l.ttl).
					Msg("lock expired before release, another writer may have run concurrently")
			}
		})
	}, nil
}

func (l *UserLocker) key(userID int64) string {
	return fmt.Sprintf("%s%d", l.prefix, userID)
}
