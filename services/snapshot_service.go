// services/snapshot_service.go
package services

import (
	"log"
	"sync"
	"time"

	"github.com/puertodata/contenedores/backend/models"
)

// SnapshotCache memoizes the last successful load for a fixed time window.
// Expiry or an explicit Invalidate triggers one wholesale reload; the old
// snapshot is replaced atomically from the caller's perspective, never
// patched incrementally. A failed reload caches nothing, so the next request
// tries again.

type SnapshotCache struct {
	load func() (*models.Snapshot, error)
	ttl  time.Duration

	mu   sync.Mutex
	snap *models.Snapshot
}

// NewSnapshotCache wires a loader (normally database.LoadSnapshot closed over
// the app config) to a TTL.
func NewSnapshotCache(load func() (*models.Snapshot, error), ttl time.Duration) *SnapshotCache {
	return &SnapshotCache{load: load, ttl: ttl}
}

// GetOrRefresh returns the cached snapshot, reloading it first when the TTL
// has lapsed or nothing is cached yet.
func (c *SnapshotCache) GetOrRefresh() (*models.Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.snap != nil && time.Since(c.snap.LoadedAt) < c.ttl {
		return c.snap, nil
	}

	log.Println("Service: Snapshot missing or expired, loading from database...")
	snap, err := c.load()
	if err != nil {
		log.Printf("ERROR Service: Snapshot load failed: %v", err)
		return nil, err
	}
	c.snap = snap
	log.Printf("Service: Snapshot loaded with %d records", len(snap.Records))
	return c.snap, nil
}

// Invalidate discards the cached snapshot so the next request reloads.
func (c *SnapshotCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snap = nil
	log.Println("Service: Snapshot cache invalidated")
}

// Age reports how old the cached snapshot is; ok is false when nothing is
// cached.
func (c *SnapshotCache) Age() (time.Duration, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.snap == nil {
		return 0, false
	}
	return time.Since(c.snap.LoadedAt), true
}
