// Package cache provides a generic TTL-bounded LRU cache and a manager that
// periodically evicts expired entries from every registered cache.
package cache

import (
	"sync"
	"time"
)

// Cache is the read/write surface of a cache.
type Cache[T any] interface {
	Get(key string) (T, bool)
	Set(key string, data T)
	Delete(key string)
	Size() int
}

// Cleaner is anything the Manager can sweep. CleanExpired reports how many
// entries were dropped.
type Cleaner interface {
	CleanExpired() int
}

// Manager owns the background sweep loop shared by all registered caches.
type Manager struct {
	mu       sync.Mutex
	cleaners []Cleaner
	started  bool
	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

func NewManager() *Manager {
	return &Manager{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
}

// Register adds a cache to the sweep set. Safe to call after StartCleanup.
func (m *Manager) Register(c Cleaner) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cleaners = append(m.cleaners, c)
}

// StartCleanup launches the sweep loop. Call Stop to end it.
func (m *Manager) StartCleanup(interval time.Duration) {
	m.mu.Lock()
	if m.started {
		m.mu.Unlock()
		return
	}
	m.started = true
	m.mu.Unlock()
	go m.cleanup(interval)
}

func (m *Manager) cleanup(interval time.Duration) {
	defer close(m.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.mu.Lock()
			cleaners := make([]Cleaner, len(m.cleaners))
			copy(cleaners, m.cleaners)
			m.mu.Unlock()

			for _, c := range cleaners {
				c.CleanExpired()
			}
		case <-m.stop:
			return
		}
	}
}

// Stop ends the sweep loop and waits for it to finish.
func (m *Manager) Stop() {
	m.stopOnce.Do(func() {
		close(m.stop)
		m.mu.Lock()
		started := m.started
		m.mu.Unlock()
		if started {
			<-m.done
		}
	})
}
