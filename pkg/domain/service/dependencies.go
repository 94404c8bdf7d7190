package service

import (
	"sync"
	"time"
)

// Snapshot keys match the records written by the original storefront, so an
// existing data directory keeps working across versions.
const (
	LegacyCartKey   = "jw_cart"
	AdvancedCartKey = "jw_store_advanced_cart"
	ProfileKey      = "jw_store_user"
)

type Event interface {
	Type() string
}

type EventDispatcher interface {
	Dispatch(event Event) error
}

// SnapshotStore persists complete JSON document snapshots under string keys.
// Load reports whether the key existed; an absent key is a valid empty state.
type SnapshotStore interface {
	Load(key string, out any) (bool, error)
	Save(key string, v any) error
	Delete(key string) error
}

// IDGenerator hands out line item ids. Returned ids must be distinct from
// every id handed out before; a collision is a correctness bug, not a
// recoverable condition.
type IDGenerator interface {
	NextID() int64
}

// NewTimestampIDGenerator derives ids from the current time in milliseconds,
// bumping by one whenever two calls land on the same millisecond.
func NewTimestampIDGenerator() IDGenerator {
	return &timestampIDGenerator{}
}

type timestampIDGenerator struct {
	mu   sync.Mutex
	last int64
}

func (g *timestampIDGenerator) NextID() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := time.Now().UnixMilli()
	if id <= g.last {
		id = g.last + 1
	}
	g.last = id
	return id
}
