// Package locks implements the shared close lock on Redis.
package locks

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/branchledger/backend/internal/application/adapter"
	"github.com/branchledger/backend/internal/domain/entity"
	domainerror "github.com/branchledger/backend/internal/domain/error"
)

// lockTTL bounds how long a crashed holder can block other closers.
const lockTTL = 30 * time.Second

// redisCloseLock implements adapter.CloseLock with SET NX PX.
type redisCloseLock struct {
	client *redis.Client
}

// NewRedisCloseLock creates a close lock backed by the given Redis client.
func NewRedisCloseLock(client *redis.Client) adapter.CloseLock {
	return &redisCloseLock{client: client}
}

// Acquire takes the lock for the (account, date) key. It returns
// ErrCloseInProgress when another caller already holds it.
func (l *redisCloseLock) Acquire(ctx context.Context, accountID uuid.UUID, date time.Time) (func(), error) {
	key := lockKey(accountID, date)
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, key, token, lockTTL).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire close lock: %w", err)
	}
	if !ok {
		return nil, domainerror.ErrCloseInProgress
	}

	release := func() {
		// Only the holder's token may delete the key; a lock that expired
		// and was re-acquired by someone else stays untouched.
		current, err := l.client.Get(context.Background(), key).Result()
		if err != nil || current != token {
			return
		}
		if err := l.client.Del(context.Background(), key).Err(); err != nil {
			slog.Warn("Failed to release close lock", "key", key, "error", err)
		}
	}
	return release, nil
}

func lockKey(accountID uuid.UUID, date time.Time) string {
	return fmt.Sprintf("close-lock:%s:%s", accountID, entity.DateOf(date).Format("2006-01-02"))
}
