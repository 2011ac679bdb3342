// ReelRank - Movie & TV Catalog Recommendation Service
// Copyright 2026 ReelRank Authors
// SPDX-License-Identifier: MIT
// https://github.com/reelrank/reelrank

package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/reelrank/reelrank/internal/recommend"
)

// Key prefix for result cache entries, namespacing them within the Badger
// keyspace.
const resultKeyPrefix = "rec:"

// envelope is the stored document: the cached result plus its expiry
// timestamp. Badger's native entry TTL handles physical removal; the stored
// timestamp is the correctness guard, so an expired-but-still-present entry
// behaves identically to a missing one.
type envelope struct {
	Result    recommend.CachedResult `json:"result"`
	ExpiresAt time.Time              `json:"expires_at"`
}

// BadgerStore is a BadgerDB-backed result cache, durable across restarts.
type BadgerStore struct {
	db *badger.DB
}

// OpenBadger opens (or creates) a Badger-backed result cache at path.
// An empty path opens an in-memory instance.
func OpenBadger(path string) (*BadgerStore, error) {
	var opts badger.Options
	if path == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(path)
		opts.ValueLogFileSize = 64 << 20 // recommendation lists are small
	}
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger result cache: %w", err)
	}

	return &BadgerStore{db: db}, nil
}

// NewBadgerStoreFromDB wraps an existing Badger connection. Useful when
// sharing one instance across stores.
func NewBadgerStoreFromDB(db *badger.DB) *BadgerStore {
	return &BadgerStore{db: db}
}

// Get returns the live entry for key, or ok=false when the entry is missing
// or expired. Expiry is checked lazily against the stored timestamp.
func (s *BadgerStore) Get(ctx context.Context, key string) (recommend.CachedResult, bool, error) {
	var env envelope

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(resultKeyPrefix + key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &env)
		})
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		return recommend.CachedResult{}, false, nil
	}
	if err != nil {
		return recommend.CachedResult{}, false, fmt.Errorf("read cache entry: %w", err)
	}

	if time.Now().After(env.ExpiresAt) {
		return recommend.CachedResult{}, false, nil
	}

	return env.Result, true, nil
}

// Put upserts the entry for key with expiry now+ttl. The Badger entry TTL
// matches the stored expiry, so expired entries are eventually removed
// without a sweep of our own.
func (s *BadgerStore) Put(ctx context.Context, key string, result recommend.CachedResult, ttl time.Duration) error {
	if ttl <= 0 {
		return fmt.Errorf("ttl must be positive, got %v", ttl)
	}

	data, err := json.Marshal(envelope{
		Result:    result,
		ExpiresAt: time.Now().Add(ttl),
	})
	if err != nil {
		return fmt.Errorf("marshal cache entry: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry([]byte(resultKeyPrefix+key), data).WithTTL(ttl)
		return txn.SetEntry(entry)
	})
	if err != nil {
		return fmt.Errorf("write cache entry: %w", err)
	}
	return nil
}

// StartGC runs Badger value-log garbage collection at the given interval
// until the context is canceled. Housekeeping only; correctness never
// depends on it.
func (s *BadgerStore) StartGC(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				//nolint:errcheck // ErrNoRewrite is the common, harmless outcome
				s.db.RunValueLogGC(0.5)
			}
		}
	}()
}

// Close releases the underlying Badger database.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}

var _ recommend.ResultCache = (*BadgerStore)(nil)
