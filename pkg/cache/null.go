package cache

import (
	"context"
	"time"
)

// NullCache never stores anything. Used when the ledger is disabled.
type NullCache struct{}

// NewNullCache creates a null cache.
func NewNullCache() Cache {
	return NullCache{}
}

func (NullCache) Get(context.Context, string) ([]byte, bool, error)             { return nil, false, nil }
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NullCache) Delete(context.Context, string) error                          { return nil }
func (NullCache) Close() error                                                  { return nil }

var _ Cache = NullCache{}
