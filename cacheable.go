package stoneconnect

// Adapted from https://github.com/evcc-io/evcc

import (
	"time"

	"github.com/benbjohnson/clock"
)

// Cacheable is a resettable cached getter.
type Cacheable[T any] interface {
	Get() (T, error)
	Reset()
}

type cached[T any] struct {
	clock   clock.Clock
	updated time.Time
	cache   time.Duration
	g       func() (T, error)
	val     T
	err     error
}

// ResettableCached wraps a getter function with a cache duration. The getter
// runs again once the duration has passed or after Reset.
func ResettableCached[T any](g func() (T, error), cache time.Duration) Cacheable[T] {
	return &cached[T]{
		clock: clock.New(),
		cache: cache,
		g:     g,
	}
}

func (c *cached[T]) Get() (T, error) {
	if c.mustUpdate() {
		c.val, c.err = c.g()
		c.updated = c.clock.Now()
	}
	return c.val, c.err
}

func (c *cached[T]) Reset() {
	c.updated = time.Time{}
}

func (c *cached[T]) mustUpdate() bool {
	return c.updated.IsZero() || c.clock.Since(c.updated) > c.cache || c.err != nil
}
