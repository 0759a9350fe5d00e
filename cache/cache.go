package cache

import (
	"context"

	"github.com/google/uuid"
)

// StatsCache holds computed dashboard statistics per owner. Any order write
// for an owner must call Invalidate.
type StatsCache interface {
	// Get decodes the cached value into dest and reports whether it was found.
	Get(ctx context.Context, ownerID uuid.UUID, key string, dest any) (bool, error)
	Set(ctx context.Context, ownerID uuid.UUID, key string, value any) error
	Invalidate(ctx context.Context, ownerID uuid.UUID) error
}

// Noop is used when no Redis is configured.
type Noop struct{}

func (Noop) Get(context.Context, uuid.UUID, string, any) (bool, error) { return false, nil }
func (Noop) Set(context.Context, uuid.UUID, string, any) error         { return nil }
func (Noop) Invalidate(context.Context, uuid.UUID) error               { return nil }
