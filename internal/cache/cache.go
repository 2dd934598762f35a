// Package cache provides the view cache used to memoize rendered dashboard
// payloads. Mutations invalidate by route prefix so every cached page and
// query variant of a listing goes stale together.
package cache

import (
	"context"
	"strings"
	"sync"
	"time"
)

// ViewCache stores serialized view payloads keyed by request path and query.
type ViewCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, payload []byte)
	// Invalidate drops every entry whose key starts with prefix.
	Invalidate(ctx context.Context, prefix string)
}

// Memory is an in-process ViewCache with TTL-based expiry.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
}

type memoryEntry struct {
	payload   []byte
	expiresAt time.Time
}

// NewMemory returns a memory cache whose entries expire after ttl.
func NewMemory(ttl time.Duration) *Memory {
	return &Memory{entries: make(map[string]memoryEntry), ttl: ttl}
}

func (m *Memory) Get(ctx context.Context, key string) ([]byte, bool) {
	m.mu.RLock()
	entry, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if time.Now().After(entry.expiresAt) {
		m.mu.Lock()
		// re-check under the write lock; a concurrent Set may have
		// refreshed the entry in the meantime
		if cur, ok := m.entries[key]; ok && time.Now().After(cur.expiresAt) {
			delete(m.entries, key)
		}
		m.mu.Unlock()
		return nil, false
	}
	return entry.payload, true
}

func (m *Memory) Set(ctx context.Context, key string, payload []byte) {
	m.mu.Lock()
	m.entries[key] = memoryEntry{payload: payload, expiresAt: time.Now().Add(m.ttl)}
	m.mu.Unlock()
}

func (m *Memory) Invalidate(ctx context.Context, prefix string) {
	m.mu.Lock()
	for key := range m.entries {
		if strings.HasPrefix(key, prefix) {
			delete(m.entries, key)
		}
	}
	m.mu.Unlock()
}
