package stoneconnect

import (
	"errors"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheableCachesValue(t *testing.T) {
	calls := 0
	c := ResettableCached(func() (int, error) {
		calls++
		return 42, nil
	}, time.Hour)

	v, err := c.Get()
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	_, err = c.Get()
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	c.Reset()
	_, err = c.Get()
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestCacheableExpires(t *testing.T) {
	mock := clock.NewMock()
	calls := 0
	c := &cached[int]{
		clock: mock,
		cache: time.Minute,
		g: func() (int, error) {
			calls++
			return calls, nil
		},
	}

	v, err := c.Get()
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	mock.Add(30 * time.Second)
	v, _ = c.Get()
	assert.Equal(t, 1, v)

	mock.Add(time.Minute)
	v, _ = c.Get()
	assert.Equal(t, 2, v)
}

func TestCacheableDoesNotCacheErrors(t *testing.T) {
	calls := 0
	c := ResettableCached(func() (int, error) {
		calls++
		if calls == 1 {
			return 0, errors.New("boom")
		}
		return 7, nil
	}, time.Hour)

	_, err := c.Get()
	require.Error(t, err)

	v, err := c.Get()
	require.NoError(t, err)
	assert.Equal(t, 7, v)
	assert.Equal(t, 2, calls)
}
