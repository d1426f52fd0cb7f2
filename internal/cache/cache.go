// Package cache stores serialized projection reports keyed by their inputs.
package cache

import "context"

// Cache is a string key/value store. A miss and a backend failure both
// report ok == false; callers treat the cache as best effort.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key string, value string) error
}

// Nop never stores anything.
type Nop struct{}

func (Nop) Get(context.Context, string) (string, bool) { return "", false }

func (Nop) Set(context.Context, string, string) error { return nil }
