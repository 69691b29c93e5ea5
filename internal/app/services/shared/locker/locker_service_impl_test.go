package locker

import (
	"context"
	"errors"
	"tawjih-service/internal/pkg/constvars"
	"tawjih-service/internal/pkg/exceptions"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockRedisRepository struct {
	mock.Mock
}

func (m *mockRedisRepository) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *mockRedisRepository) Set(ctx context.Context, key string, value interface{}, exp time.Duration) error {
	return m.Called(ctx, key, value, exp).Error(0)
}

func (m *mockRedisRepository) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *mockRedisRepository) TrySetNX(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error) {
	args := m.Called(ctx, key, value, exp)
	return args.Bool(0), args.Error(1)
}

func (m *mockRedisRepository) Expire(ctx context.Context, key string, exp time.Duration) (bool, error) {
	args := m.Called(ctx, key, exp)
	return args.Bool(0), args.Error(1)
}

func TestLockService(t *testing.T) {
	ctx := context.Background()
	key := "assessment:session:s-1:lock"

	t.Run("TryLock Returns An Owned Value", func(t *testing.T) {
		repo := new(mockRedisRepository)
		repo.On("TrySetNX", ctx, key, mock.AnythingOfType("string"), 5*time.Second).Return(true, nil).Once()

		acquired, value, err := NewLockService(repo, zap.NewNop()).TryLock(ctx, key, 5*time.Second)
		require.NoError(t, err)
		assert.True(t, acquired)
		assert.Contains(t, value, constvars.RedisKeyLockValuePrefix+":")
	})

	t.Run("TryLock Reports A Held Lock", func(t *testing.T) {
		repo := new(mockRedisRepository)
		repo.On("TrySetNX", ctx, key, mock.Anything, mock.Anything).Return(false, nil).Once()

		acquired, value, err := NewLockService(repo, zap.NewNop()).TryLock(ctx, key, time.Second)
		require.NoError(t, err)
		assert.False(t, acquired)
		assert.Empty(t, value)
	})

	t.Run("Unlock Deletes An Owned Lock", func(t *testing.T) {
		repo := new(mockRedisRepository)
		repo.On("Get", ctx, key).Return(`"lock:abc"`, nil).Once()
		repo.On("Delete", ctx, key).Return(nil).Once()

		require.NoError(t, NewLockService(repo, zap.NewNop()).Unlock(ctx, key, "lock:abc"))
		repo.AssertExpectations(t)
	})

	t.Run("Unlock Refuses A Foreign Lock", func(t *testing.T) {
		repo := new(mockRedisRepository)
		repo.On("Get", ctx, key).Return(`"lock:other"`, nil).Once()

		err := NewLockService(repo, zap.NewNop()).Unlock(ctx, key, "lock:abc")
		assert.Error(t, err)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("Unlock Of An Expired Lock Is A No Op", func(t *testing.T) {
		repo := new(mockRedisRepository)
		repo.On("Get", ctx, key).Return("", nil).Once()

		assert.NoError(t, NewLockService(repo, zap.NewNop()).Unlock(ctx, key, "lock:abc"))
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("Refresh Extends An Owned Lock", func(t *testing.T) {
		repo := new(mockRedisRepository)
		repo.On("Get", ctx, key).Return(`"lock:abc"`, nil).Once()
		repo.On("Expire", ctx, key, 10*time.Second).Return(true, nil).Once()

		assert.NoError(t, NewLockService(repo, zap.NewNop()).Refresh(ctx, key, "lock:abc", 10*time.Second))
		repo.AssertExpectations(t)
	})

	t.Run("Refresh Of An Expired Lock Fails", func(t *testing.T) {
		repo := new(mockRedisRepository)
		repo.On("Get", ctx, key).Return("", nil).Once()

		err := NewLockService(repo, zap.NewNop()).Refresh(ctx, key, "lock:abc", time.Second)
		assert.True(t, exceptions.IsRetryable(err))
	})

	t.Run("Redis Failure Is Returned", func(t *testing.T) {
		repo := new(mockRedisRepository)
		repo.On("Get", ctx, key).Return("", exceptions.ErrRedisGet(errors.New("conn refused"))).Once()

		err := NewLockService(repo, zap.NewNop()).Unlock(ctx, key, "lock:abc")
		assert.True(t, exceptions.IsRetryable(err))
	})
}
