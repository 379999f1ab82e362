package grpc

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/godilite/review-calibration/internal/grpc/mocks"
)

func TestAddTTLJitter(t *testing.T) {
	t.Run("stays within bounds", func(t *testing.T) {
		ttl := 10 * time.Minute
		for range 200 {
			got := addTTLJitter(ttl)
			assert.GreaterOrEqual(t, got, ttl-maxTTLJitter)
			assert.Less(t, got, ttl+maxTTLJitter)
		}
	})

	t.Run("non-positive ttl is unchanged", func(t *testing.T) {
		assert.Equal(t, time.Duration(0), addTTLJitter(0))
		assert.Equal(t, -time.Second, addTTLJitter(-time.Second))
	})

	t.Run("short ttl never becomes non-positive", func(t *testing.T) {
		for range 200 {
			assert.Greater(t, addTTLJitter(time.Second), time.Duration(0))
		}
	})
}

func TestFindAndCache(t *testing.T) {
	logger := zap.NewNop()

	t.Run("nil cacher still fetches", func(t *testing.T) {
		var sf singleflight.Group

		got, err := FindAndCache(context.Background(), nil, &sf, "k", time.Minute, logger, func(ctx context.Context) (int, error) {
			return 42, nil
		})

		require.NoError(t, err)
		assert.Equal(t, 42, got)
	})

	t.Run("fetch error is returned", func(t *testing.T) {
		var sf singleflight.Group
		boom := errors.New("boom")

		_, err := FindAndCache(context.Background(), &mocks.MockCacher{}, &sf, "k", time.Minute, logger, func(ctx context.Context) (int, error) {
			return 0, boom
		})

		assert.ErrorIs(t, err, boom)
	})

	t.Run("concurrent misses collapse into one fetch", func(t *testing.T) {
		var (
			sf      singleflight.Group
			fetches atomic.Int32
			wg      sync.WaitGroup
		)
		release := make(chan struct{})
		fetch := func(ctx context.Context) (string, error) {
			fetches.Add(1)
			<-release
			return "report", nil
		}

		results := make([]string, 8)
		for i := range results {
			wg.Add(1)
			go func() {
				defer wg.Done()
				v, err := FindAndCache(context.Background(), nil, &sf, "shared", time.Minute, logger, fetch)
				assert.NoError(t, err)
				results[i] = v
			}()
		}

		time.Sleep(50 * time.Millisecond)
		close(release)
		wg.Wait()

		assert.Equal(t, int32(1), fetches.Load())
		for _, r := range results {
			assert.Equal(t, "report", r)
		}
	})

	t.Run("hit schedules a background refresh", func(t *testing.T) {
		var sf singleflight.Group
		refreshed := make(chan struct{}, 1)
		cache := &mocks.MockCacher{
			GetFunc: func(ctx context.Context, key string, dest any) error {
				*(dest.(*string)) = "cached"
				return nil
			},
		}

		got, err := FindAndCache(context.Background(), cache, &sf, "warm", time.Minute, logger, func(ctx context.Context) (string, error) {
			select {
			case refreshed <- struct{}{}:
			default:
			}
			return "fresh", nil
		})

		require.NoError(t, err)
		assert.Equal(t, "cached", got)

		select {
		case <-refreshed:
		case <-time.After(3 * time.Second):
			t.Fatal("background refresh did not run")
		}
	})
}
