package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/KonishchevDmitry/easypub/pkg/test/testutil"
)

func TestCached(t *testing.T) {
	t.Parallel()

	ctx := testutil.Context(t)
	cache := New[string](0)

	var calls int
	fetch := func(value string, err error) func(ctx context.Context) (string, error) {
		return func(ctx context.Context) (string, error) {
			calls++
			return value, err
		}
	}

	_, err := cache.Cached(ctx, "10.1063/5.0090126", fetch("", errors.New("service is unavailable")))
	require.Error(t, err)

	value, err := cache.Cached(ctx, "10.1063/5.0090126", fetch("first", nil))
	require.NoError(t, err)
	require.Equal(t, "first", value)

	value, err = cache.Cached(ctx, "10.1063/5.0090126", fetch("second", nil))
	require.NoError(t, err)
	require.Equal(t, "first", value)
	require.Equal(t, 2, calls)
}

func TestRetain(t *testing.T) {
	t.Parallel()

	ctx := testutil.Context(t)
	cache := New[int](time.Hour)

	for i, key := range []string{"a", "b", "c"} {
		_, err := cache.Cached(ctx, key, func(ctx context.Context) (int, error) {
			return i, nil
		})
		require.NoError(t, err)
	}
	require.Equal(t, 3, cache.Len())

	cache.Retain(ctx, []string{"b", "d"})
	require.Equal(t, 1, cache.Len())

	value, err := cache.Cached(ctx, "b", func(ctx context.Context) (int, error) {
		return -1, nil
	})
	require.NoError(t, err)
	require.Equal(t, 1, value)
}

func TestExpiration(t *testing.T) {
	t.Parallel()

	ctx := testutil.Context(t)
	cache := New[int](10 * time.Millisecond)

	_, err := cache.Cached(ctx, "a", func(ctx context.Context) (int, error) { return 1, nil })
	require.NoError(t, err)

	time.Sleep(50 * time.Millisecond)

	value, err := cache.Cached(ctx, "a", func(ctx context.Context) (int, error) { return 2, nil })
	require.NoError(t, err)
	require.Equal(t, 2, value)
}
