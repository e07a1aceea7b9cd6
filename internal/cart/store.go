package cart

import (
	"context"
	"encoding/json"
	"sync"
)

// SnapshotVersion tags the serialized cart format. Snapshots with a different
// version are discarded on load instead of breaking rehydration.
const SnapshotVersion = 1

// Snapshot is the persisted form of a cart.
type Snapshot struct {
	Version int    `json:"version"`
	Lines   []Line `json:"lines"`
}

// Snapshot captures the cart for persistence.
func (c *Cart) Snapshot() Snapshot {
	return Snapshot{Version: SnapshotVersion, Lines: c.Lines()}
}

// FromSnapshot rebuilds a cart from a persisted snapshot. A version mismatch
// yields an empty cart.
func FromSnapshot(s Snapshot) *Cart {
	if s.Version != SnapshotVersion {
		return New()
	}
	c := New()
	c.lines = append(c.lines, s.Lines...)
	return c
}

// Store is the persistence port for cart snapshots, keyed by session ID.
type Store interface {
	Load(ctx context.Context, sessionID string) (*Cart, error)
	Save(ctx context.Context, sessionID string, c *Cart) error
	Clear(ctx context.Context, sessionID string) error
}

// MemoryStore keeps snapshots in process memory. Used in tests and as a
// fallback when Redis is not configured.
type MemoryStore struct {
	mu        sync.RWMutex
	snapshots map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{snapshots: make(map[string][]byte)}
}

func (m *MemoryStore) Load(ctx context.Context, sessionID string) (*Cart, error) {
	m.mu.RLock()
	raw, ok := m.snapshots[sessionID]
	m.mu.RUnlock()
	if !ok {
		return New(), nil
	}
	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return New(), nil
	}
	return FromSnapshot(snap), nil
}

func (m *MemoryStore) Save(ctx context.Context, sessionID string, c *Cart) error {
	raw, err := json.Marshal(c.Snapshot())
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.snapshots[sessionID] = raw
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Clear(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	delete(m.snapshots, sessionID)
	m.mu.Unlock()
	return nil
}
