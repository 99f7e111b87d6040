package jsonstore

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"

	"github.com/heartmarshall/storetrack-backend/internal/config"
	"github.com/heartmarshall/storetrack-backend/internal/domain"
)

// retryInterval is how often a blocked writer re-attempts the advisory
// file lock while waiting out the configured LockWait budget.
const retryInterval = 50 * time.Millisecond

// Store owns the data directory holding one JSON document per collection.
//
// Two layers guard each document. In-process, every collection has exactly
// one owner mutex and all mutations run through it, so there are never two
// in-flight writers for the same file. Across processes, a per-file
// advisory lock (flock) with a bounded wait serializes writers; failing to
// take it within the budget is a storage error for that request, never a
// retry. Writes go to a temp file that is renamed over the target, so
// readers observe either the prior or the new complete document.
type Store struct {
	dir      string
	lockWait time.Duration
	log      *slog.Logger

	mu     sync.Mutex
	owners map[string]*sync.Mutex
}

// New creates a Store rooted at cfg.DataDir, creating the directory if
// needed. The directory and every collection file are world-readable and
// writable, matching the deployment model of a single shared data folder.
func New(cfg config.StorageConfig, logger *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o777); err != nil {
		return nil, fmt.Errorf("jsonstore: create data dir %s: %w", cfg.DataDir, err)
	}
	// MkdirAll applies umask; widen explicitly.
	if err := os.Chmod(cfg.DataDir, 0o777); err != nil {
		return nil, fmt.Errorf("jsonstore: chmod data dir %s: %w", cfg.DataDir, err)
	}

	return &Store{
		dir:      cfg.DataDir,
		lockWait: cfg.LockWait,
		log:      logger.With("component", "jsonstore"),
		owners:   make(map[string]*sync.Mutex),
	}, nil
}

// Dir returns the data directory path.
func (s *Store) Dir() string { return s.dir }

// Ping verifies the data directory is writable. Used by health checks.
func (s *Store) Ping(_ context.Context) error {
	f, err := os.CreateTemp(s.dir, ".ping-*")
	if err != nil {
		return fmt.Errorf("jsonstore: data dir not writable: %w", err)
	}
	name := f.Name()
	f.Close()
	return os.Remove(name)
}

// owner returns the single mutation owner for the named collection.
func (s *Store) owner(name string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.owners[name]
	if !ok {
		m = &sync.Mutex{}
		s.owners[name] = m
	}
	return m
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name+".json")
}

// read decodes the named collection into v. Missing files, unreadable
// files, and parse failures all degrade to the zero value: loading never
// fails the caller, it only logs.
func (s *Store) read(name string, v any) {
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Warn("read collection failed, serving empty",
				slog.String("collection", name),
				slog.String("error", err.Error()),
			)
		}
		return
	}
	if err := json.Unmarshal(data, v); err != nil {
		s.log.Warn("decode collection failed, serving empty",
			slog.String("collection", name),
			slog.String("error", err.Error()),
		)
	}
}

// write atomically replaces the named collection with v. The caller must
// hold the collection's owner mutex and file lock.
func (s *Store) write(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", domain.ErrStorage, name, err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(s.dir, "."+name+"-*.tmp")
	if err != nil {
		return fmt.Errorf("%w: create temp for %s: %v", domain.ErrStorage, name, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: write %s: %v", domain.ErrStorage, name, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: sync %s: %v", domain.ErrStorage, name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: close temp for %s: %v", domain.ErrStorage, name, err)
	}
	if err := os.Chmod(tmpName, 0o666); err != nil {
		return fmt.Errorf("%w: chmod %s: %v", domain.ErrStorage, name, err)
	}
	if err := os.Rename(tmpName, s.path(name)); err != nil {
		return fmt.Errorf("%w: replace %s: %v", domain.ErrStorage, name, err)
	}
	return nil
}

// lock takes the advisory file lock for the named collection, waiting at
// most the configured LockWait (or less if ctx expires first). The
// returned release func must be called exactly once.
func (s *Store) lock(ctx context.Context, name string) (release func(), err error) {
	lockCtx, cancel := context.WithTimeout(ctx, s.lockWait)
	defer cancel()

	fl := flock.New(s.path(name) + ".lock")
	locked, err := fl.TryLockContext(lockCtx, retryInterval)
	if err != nil || !locked {
		return nil, fmt.Errorf("%w: lock %s: timed out after %v", domain.ErrStorage, name, s.lockWait)
	}
	return func() {
		if err := fl.Unlock(); err != nil {
			s.log.Warn("release file lock failed",
				slog.String("collection", name),
				slog.String("error", err.Error()),
			)
		}
	}, nil
}
