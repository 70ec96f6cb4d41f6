package catalog

import (
	"context"
	"fmt"
	"sync"

	"github.com/kalpruh/enrol/internal/log"
	"github.com/kalpruh/enrol/internal/pubsub"
	"github.com/kalpruh/enrol/internal/watcher"
)

// Store holds the active catalog. With an override path it reloads from that
// file on demand or whenever the file changes; a failed reload keeps the
// previous catalog.
type Store struct {
	mu      sync.RWMutex
	current *Catalog
	path    string
	broker  *pubsub.Broker[*Catalog]
}

// NewStore loads the catalog at path, or the embedded default when path is
// empty.
func NewStore(path string) (*Store, error) {
	s := &Store{path: path, broker: pubsub.NewBroker[*Catalog]()}
	if path == "" {
		s.current = Default()
		return s, nil
	}
	c, err := Load(path)
	if err != nil {
		return nil, err
	}
	s.current = c
	log.Info(log.CatCatalog, "Loaded catalog override", "path", path, "algorithms", c.Len())
	return s, nil
}

// Current returns the active catalog.
func (s *Store) Current() *Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Contains reports whether id is in the active catalog. It satisfies
// registration.AlgorithmLookup.
func (s *Store) Contains(id string) bool {
	return s.Current().Contains(id)
}

// Path returns the override path, empty for the embedded catalog.
func (s *Store) Path() string { return s.path }

// Broker returns the broker that announces reloads.
func (s *Store) Broker() *pubsub.Broker[*Catalog] { return s.broker }

// Subscribe is shorthand for Broker().Subscribe.
func (s *Store) Subscribe(ctx context.Context) <-chan pubsub.Event[*Catalog] {
	return s.broker.Subscribe(ctx)
}

// Reload re-reads the override file. It is a no-op for the embedded catalog.
func (s *Store) Reload() error {
	if s.path == "" {
		return nil
	}
	c, err := Load(s.path)
	if err != nil {
		log.ErrorErr(log.CatCatalog, "Catalog reload failed", err, "path", s.path)
		s.broker.PublishError(err)
		return err
	}

	s.mu.Lock()
	s.current = c
	s.mu.Unlock()

	log.Info(log.CatCatalog, "Reloaded catalog", "path", s.path, "algorithms", c.Len())
	s.broker.Publish(pubsub.ReloadedEvent, c)
	return nil
}

// Watch reloads the catalog whenever the override file changes, until ctx is
// done. It returns immediately after the watcher starts.
func (s *Store) Watch(ctx context.Context) error {
	if s.path == "" {
		return fmt.Errorf("no catalog override to watch")
	}
	cfg := watcher.DefaultConfig(s.path)
	cfg.OnError = func(err error) {
		log.ErrorErr(log.CatCatalog, "Catalog watcher error", err, "path", s.path)
	}
	w, err := watcher.New(cfg)
	if err != nil {
		return err
	}
	changes, err := w.Start()
	if err != nil {
		_ = w.Stop()
		return err
	}

	go func() {
		defer func() { _ = w.Stop() }()
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-changes:
				if !ok {
					return
				}
				_ = s.Reload()
			}
		}
	}()
	return nil
}

// Close shuts down the broker, closing all subscriber channels.
func (s *Store) Close() {
	s.broker.Close()
}
