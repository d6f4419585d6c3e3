package locker

import (
	"carepulse-service/internal/pkg/exceptions"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockRedisRepository struct {
	mock.Mock
}

func (m *MockRedisRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockRedisRepository) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockRedisRepository) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockRedisRepository) TrySetNX(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error) {
	args := m.Called(ctx, key, value, exp)
	return args.Bool(0), args.Error(1)
}

func newTestLocker(repo *MockRedisRepository) *redisLocker {
	return &redisLocker{RedisRepository: repo, Log: zap.NewNop()}
}

func TestRedisLocker_TryLock(t *testing.T) {
	ctx := context.Background()

	t.Run("Acquired", func(t *testing.T) {
		repo := new(MockRedisRepository)
		repo.On("TrySetNX", ctx, "form:busy:1", mock.AnythingOfType("string"), time.Minute).Return(true, nil)

		acquired, owner, err := newTestLocker(repo).TryLock(ctx, "form:busy:1", time.Minute)
		require.NoError(t, err)
		assert.True(t, acquired)
		assert.NotEmpty(t, owner)
		repo.AssertExpectations(t)
	})

	t.Run("Held by someone else", func(t *testing.T) {
		repo := new(MockRedisRepository)
		repo.On("TrySetNX", ctx, "form:busy:1", mock.Anything, time.Minute).Return(false, nil)

		acquired, owner, err := newTestLocker(repo).TryLock(ctx, "form:busy:1", time.Minute)
		require.NoError(t, err)
		assert.False(t, acquired)
		assert.Empty(t, owner)
	})

	t.Run("Redis failure", func(t *testing.T) {
		repo := new(MockRedisRepository)
		repo.On("TrySetNX", ctx, "form:busy:1", mock.Anything, time.Minute).Return(false, errors.New("connection refused"))

		acquired, _, err := newTestLocker(repo).TryLock(ctx, "form:busy:1", time.Minute)
		assert.Error(t, err)
		assert.False(t, acquired)
	})
}

func TestRedisLocker_Unlock(t *testing.T) {
	ctx := context.Background()

	t.Run("Owner releases", func(t *testing.T) {
		repo := new(MockRedisRepository)
		repo.On("Get", ctx, "form:busy:1").Return(`"owner-1"`, nil)
		repo.On("Delete", ctx, "form:busy:1").Return(nil)

		err := newTestLocker(repo).Unlock(ctx, "form:busy:1", "owner-1")
		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("Expired lock", func(t *testing.T) {
		repo := new(MockRedisRepository)
		repo.On("Get", ctx, "form:busy:1").Return("", nil)

		err := newTestLocker(repo).Unlock(ctx, "form:busy:1", "owner-1")
		assert.NoError(t, err)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("Not the owner", func(t *testing.T) {
		repo := new(MockRedisRepository)
		repo.On("Get", ctx, "form:busy:1").Return(`"owner-2"`, nil)

		err := newTestLocker(repo).Unlock(ctx, "form:busy:1", "owner-1")

		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}
