package locker

import (
	"carepulse-service/internal/app/contracts"
	"carepulse-service/internal/pkg/constvars"
	"carepulse-service/internal/pkg/exceptions"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	lockerServiceInstance contracts.LockerService
	onceLockerService     sync.Once
)

type redisLocker struct {
	RedisRepository contracts.RedisRepository
	Log             *zap.Logger
}

func NewLockerService(repo contracts.RedisRepository, logger *zap.Logger) contracts.LockerService {
	onceLockerService.Do(func() {
		lockerServiceInstance = &redisLocker{
			RedisRepository: repo,
			Log:             logger,
		}
	})
	return lockerServiceInstance
}

// TryLock sets key only when it is absent. The returned owner value must be
// handed back to Unlock.
func (l *redisLocker) TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	owner := uuid.NewString()
	acquired, err := l.RedisRepository.TrySetNX(ctx, key, owner, expiration)
	if err != nil {
		l.Log.Error("redisLocker.TryLock error calling RedisRepository.TrySetNX",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, key),
			zap.Error(err),
		)
		return false, "", err
	}

	if !acquired {
		l.Log.Info("redisLocker.TryLock already held",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, key),
		)
		return false, "", nil
	}

	l.Log.Debug("redisLocker.TryLock acquired",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingRedisKey, key),
		zap.String(constvars.LoggingLockValueKey, owner),
		zap.Duration(constvars.LoggingLockExpirationTimeKey, expiration),
	)
	return true, owner, nil
}

// Unlock deletes key if it is still owned by owner. A lock that already
// expired is not an error.
func (l *redisLocker) Unlock(ctx context.Context, key, owner string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	storedValue, err := l.RedisRepository.Get(ctx, key)
	if err != nil {
		l.Log.Error("redisLocker.Unlock error calling RedisRepository.Get",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, key),
			zap.Error(err),
		)
		return err
	}

	if storedValue == "" {
		l.Log.Info("redisLocker.Unlock lock already expired",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, key),
		)
		return nil
	}

	// values are stored JSON encoded
	expectedValue := fmt.Sprintf("%q", owner)
	if storedValue != expectedValue {
		err := exceptions.ErrRedisUnlock(fmt.Errorf("lock %s is owned by another holder", key))
		l.Log.Error("redisLocker.Unlock ownership mismatch",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingLockStoredValueKey, storedValue),
			zap.String(constvars.LoggingLockExpectedValueKey, expectedValue),
			zap.Error(err),
		)
		return err
	}

	err = l.RedisRepository.Delete(ctx, key)
	if err != nil {
		l.Log.Error("redisLocker.Unlock error calling RedisRepository.Delete",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, key),
			zap.Error(err),
		)
		return err
	}

	l.Log.Debug("redisLocker.Unlock released",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingRedisKey, key),
	)
	return nil
}

func (l *redisLocker) IsLocked(ctx context.Context, key string) (bool, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	locked, err := l.RedisRepository.Exists(ctx, key)
	if err != nil {
		l.Log.Error("redisLocker.IsLocked error calling RedisRepository.Exists",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, key),
			zap.Error(err),
		)
		return false, err
	}
	return locked, nil
}
