package securestore

import (
	"context"
	"sync/atomic"
)

// Counting wraps a Store and counts calls per operation.
type Counting struct {
	Store

	gets    atomic.Int64
	sets    atomic.Int64
	deletes atomic.Int64
}

// NewCounting wraps inner.
func NewCounting(inner Store) *Counting {
	return &Counting{Store: inner}
}

func (c *Counting) Get(ctx context.Context) (string, bool, error) {
	c.gets.Add(1)
	return c.Store.Get(ctx)
}

func (c *Counting) Set(ctx context.Context, token string) error {
	c.sets.Add(1)
	return c.Store.Set(ctx, token)
}

func (c *Counting) Delete(ctx context.Context) error {
	c.deletes.Add(1)
	return c.Store.Delete(ctx)
}

// Gets returns how many times Get was called.
func (c *Counting) Gets() int64 { return c.gets.Load() }

// Sets returns how many times Set was called.
func (c *Counting) Sets() int64 { return c.sets.Load() }

// Deletes returns how many times Delete was called.
func (c *Counting) Deletes() int64 { return c.deletes.Load() }
