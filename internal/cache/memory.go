// ReelRank - Movie & TV Catalog Recommendation Service
// Copyright 2026 ReelRank Authors
// SPDX-License-Identifier: MIT
// https://github.com/reelrank/reelrank

package cache

import (
	"context"
	"sync"
	"time"

	"github.com/reelrank/reelrank/internal/recommend"
)

// memoryEntry is one cached result with its expiry.
type memoryEntry struct {
	result    recommend.CachedResult
	expiresAt time.Time
}

// Stats tracks cache performance counters.
type Stats struct {
	Hits      int64 `json:"hits"`
	Misses    int64 `json:"misses"`
	Evictions int64 `json:"evictions"`
	Keys      int   `json:"keys"`
}

// MemoryStore is a thread-safe in-memory result cache with lazy TTL expiry.
// Used when no cache directory is configured, and as the test double of the
// Badger store. There is no size bound; time-based expiry is the only one.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry

	statsMu sync.Mutex
	stats   Stats
}

// NewMemoryStore creates an empty in-memory result cache.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
	}
}

// Get returns the live entry for key. An expired entry is deleted on read
// and reported as a miss.
func (s *MemoryStore) Get(ctx context.Context, key string) (recommend.CachedResult, bool, error) {
	s.mu.RLock()
	entry, exists := s.entries[key]
	s.mu.RUnlock()

	if !exists {
		s.recordMiss()
		return recommend.CachedResult{}, false, nil
	}

	if time.Now().After(entry.expiresAt) {
		s.mu.Lock()
		// Re-check under the write lock; a concurrent Put may have
		// refreshed the entry.
		if cur, ok := s.entries[key]; ok && time.Now().After(cur.expiresAt) {
			delete(s.entries, key)
			s.recordEviction()
		}
		s.mu.Unlock()
		s.recordMiss()
		return recommend.CachedResult{}, false, nil
	}

	s.recordHit()
	return entry.result, true, nil
}

// Put upserts the entry for key with expiry now+ttl.
func (s *MemoryStore) Put(ctx context.Context, key string, result recommend.CachedResult, ttl time.Duration) error {
	s.mu.Lock()
	s.entries[key] = memoryEntry{
		result:    result,
		expiresAt: time.Now().Add(ttl),
	}
	s.mu.Unlock()
	return nil
}

// Purge physically removes all expired entries and returns how many were
// removed. Optional housekeeping; Get already treats expired entries as
// missing.
func (s *MemoryStore) Purge() int {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for key, entry := range s.entries {
		if now.After(entry.expiresAt) {
			delete(s.entries, key)
			removed++
		}
	}
	if removed > 0 {
		s.statsMu.Lock()
		s.stats.Evictions += int64(removed)
		s.statsMu.Unlock()
	}
	return removed
}

// StartPurgeLoop runs Purge at the given interval until the context is
// canceled.
func (s *MemoryStore) StartPurgeLoop(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.Purge()
			}
		}
	}()
}

// GetStats returns a snapshot of the cache counters.
func (s *MemoryStore) GetStats() Stats {
	s.mu.RLock()
	keys := len(s.entries)
	s.mu.RUnlock()

	s.statsMu.Lock()
	defer s.statsMu.Unlock()
	stats := s.stats
	stats.Keys = keys
	return stats
}

func (s *MemoryStore) recordHit() {
	s.statsMu.Lock()
	s.stats.Hits++
	s.statsMu.Unlock()
}

func (s *MemoryStore) recordMiss() {
	s.statsMu.Lock()
	s.stats.Misses++
	s.statsMu.Unlock()
}

func (s *MemoryStore) recordEviction() {
	s.statsMu.Lock()
	s.stats.Evictions++
	s.statsMu.Unlock()
}

var _ recommend.ResultCache = (*MemoryStore)(nil)
