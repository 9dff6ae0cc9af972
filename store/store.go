// Package store gives read-only access to the on-disk LSM store. The
// engine is opened with writes disabled, so the working copy is never
// mutated; recovery bookkeeping stays in memory.
package store

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"sync"

	"github.com/cockroachdb/pebble"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/bahrom04-lab/element-desktop-leveldb/elemeta_errors"
	"github.com/bahrom04-lab/element-desktop-leveldb/utils"
)

const lookupCacheSize = 1024

// Store is the single shared handle over the engine. One logical
// operation at a time: a point lookup never interleaves with a running
// scan (the engine iterator state is not safe for that).
type Store struct {
	db   *pebble.DB
	dir  string
	lock sync.Mutex
	vals *lru.Cache[string, []byte]
	log  utils.Logger
}

// Open opens the store at dir strictly read-only. A path without a
// recognizable engine file set fails with ErrNotFound; anything the
// engine cannot parse fails with ErrCorrupt.
func Open(dir string, log utils.Logger) (*Store, error) {
	if log == nil {
		log = utils.NewDefaultLogger(slog.LevelInfo)
	}
	// the engine reports a missing directory as a plain formatted error,
	// so the path has to be checked before Open to keep the taxonomy right
	if _, err := os.Stat(dir); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", elemeta_errors.ErrNotFound, dir)
		}
		return nil, fmt.Errorf("%w: %s: %v", elemeta_errors.ErrCorrupt, dir, err)
	}
	opts := pebble.Options{
		ReadOnly:         true,
		ErrorIfNotExists: true,
		Logger:           pebble.DefaultLogger,
	}
	db, err := pebble.Open(dir, &opts)
	if err != nil {
		if errors.Is(err, pebble.ErrDBDoesNotExist) || errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", elemeta_errors.ErrNotFound, dir)
		}
		return nil, fmt.Errorf("%w: %s: %v", elemeta_errors.ErrCorrupt, dir, err)
	}
	cache, _ := lru.New[string, []byte](lookupCacheSize)
	log.Debug("store open", "dir", dir)
	return &Store{db: db, dir: dir, vals: cache, log: log}, nil
}

func (s *Store) Path() string { return s.dir }

// Scan walks every live entry in key order, calling fn for each. The
// handle lock is held for the whole pass. Key and value slices are only
// valid for the duration of the call. A second Scan starts over from
// the first entry.
func (s *Store) Scan(fn func(key, value []byte) error) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	if s.db == nil {
		return elemeta_errors.ErrClosed
	}
	it, err := s.db.NewIter(&pebble.IterOptions{})
	if err != nil {
		return fmt.Errorf("%w: %v", elemeta_errors.ErrCorrupt, err)
	}
	defer func() { _ = it.Close() }()
	for it.First(); it.Valid(); it.Next() {
		if err := fn(it.Key(), it.Value()); err != nil {
			return err
		}
	}
	if err := it.Error(); err != nil {
		return fmt.Errorf("%w: %v", elemeta_errors.ErrCorrupt, err)
	}
	return nil
}

// Get fetches one raw value without a scan. Missing keys fail with
// ErrKeyMissing. Hits are cached; the store is read-only so a cached
// value can never go stale.
func (s *Store) Get(key []byte) ([]byte, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	if s.db == nil {
		return nil, elemeta_errors.ErrClosed
	}
	if v, ok := s.vals.Get(string(key)); ok {
		return v, nil
	}
	val, closer, err := s.db.Get(key)
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, elemeta_errors.ErrKeyMissing
		}
		return nil, fmt.Errorf("%w: %v", elemeta_errors.ErrCorrupt, err)
	}
	cp := make([]byte, len(val))
	copy(cp, val)
	_ = closer.Close()
	s.vals.Add(string(key), cp)
	return cp, nil
}

// Metrics exposes the engine's internal metrics for the collector.
func (s *Store) Metrics() *pebble.Metrics {
	s.lock.Lock()
	defer s.lock.Unlock()
	if s.db == nil {
		return nil
	}
	return s.db.Metrics()
}

func (s *Store) Close() error {
	s.lock.Lock()
	defer s.lock.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	s.vals.Purge()
	return err
}
