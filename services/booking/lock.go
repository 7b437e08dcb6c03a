package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"knead/utils"
)

// Locker provides the mutual-exclusion boundary for reservations, scoped to
// a (date, therapistGender) partition. Acquisition is bounded: a caller that
// cannot get the lock in time fails fast instead of queueing.
type Locker interface {
	Acquire(ctx context.Context, key string) (release func(), err error)
}

const (
	lockTTL         = 5 * time.Second
	lockAcquireWait = 2 * time.Second
	lockRetryDelay  = 50 * time.Millisecond
)

// releaseScript deletes the lock only while this acquisition's token is still
// the value, in one round trip. An expired lock may have been re-acquired by
// another reservation, and a GET followed by a DEL could delete theirs.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// RedisLocker implements Locker with SETNX and a per-acquisition token so a
// holder only ever releases its own lock.
type RedisLocker struct {
	Client *redis.Client
}

func NewRedisLocker() *RedisLocker {
	return &RedisLocker{Client: utils.GetLockClient()}
}

func (l *RedisLocker) Acquire(ctx context.Context, key string) (func(), error) {
	token := uuid.New().String()
	deadline := time.Now().Add(lockAcquireWait)

	for {
		ok, err := l.Client.SetNX(ctx, key, token, lockTTL).Result()
		if err != nil {
			return nil, fmt.Errorf("lock acquisition failed: %w", err)
		}
		if ok {
			break
		}
		if time.Now().After(deadline) {
			return nil, ErrSlotConflict
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(lockRetryDelay):
		}
	}

	release := func() {
		if err := releaseScript.Run(context.Background(), l.Client, []string{key}, token).Err(); err != nil {
			utils.GetLogger().Warn("failed to release reservation lock",
				zap.String("key", key), zap.Error(err))
		}
	}
	return release, nil
}

// reservationLockKey scopes the exclusion boundary to one date and one
// therapist pool.
func reservationLockKey(date string, gender string) string {
	return fmt.Sprintf("bookinglock:%s:%s", date, gender)
}
