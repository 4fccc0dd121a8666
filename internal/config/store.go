// Package config manages the plugin's persisted settings: a flat TOML
// file with defaults merged over missing fields, change notification for
// components that read settings live (the repeat scheduler), and an
// optional file watcher for live reload.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"
)

// Observer is called with the new settings after every change.
type Observer func(s Settings)

// Subscription represents an active observer registration.
type Subscription struct {
	id    uint64
	store *Store
}

// Unsubscribe removes the observer.
func (s *Subscription) Unsubscribe() {
	if s.store != nil {
		s.store.unsubscribe(s.id)
	}
}

// Store holds the current settings and persists them to a TOML file.
type Store struct {
	mu        sync.RWMutex
	path      string
	settings  Settings
	observers map[uint64]Observer
	nextID    uint64
}

// NewStore creates a store backed by the file at path, starting from
// defaults. Call Load to pick up persisted values.
func NewStore(path string) *Store {
	return &Store{
		path:      path,
		settings:  Default(),
		observers: make(map[uint64]Observer),
	}
}

// Path returns the backing file path.
func (st *Store) Path() string {
	return st.path
}

// Settings returns a copy of the current settings.
func (st *Store) Settings() Settings {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.settings
}

// Load reads the backing file. A missing file is not an error: defaults
// stay in effect. Loaded values are clamped and observers are notified.
func (st *Store) Load() error {
	data, err := os.ReadFile(st.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("config: reading %s: %w", st.path, err)
	}

	// Unmarshal over defaults so missing fields keep their default.
	s := Default()
	if err := toml.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("config: parsing %s: %w", st.path, err)
	}

	st.apply(s.Clamped())
	return nil
}

// Save writes the current settings to the backing file.
func (st *Store) Save() error {
	st.mu.RLock()
	s := st.settings
	st.mu.RUnlock()

	data, err := toml.Marshal(s)
	if err != nil {
		return fmt.Errorf("config: encoding settings: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(st.path), 0o755); err != nil {
		return fmt.Errorf("config: creating config dir: %w", err)
	}
	if err := os.WriteFile(st.path, data, 0o644); err != nil {
		return fmt.Errorf("config: writing %s: %w", st.path, err)
	}
	return nil
}

// Update applies fn to a copy of the settings, clamps the result, and
// notifies observers.
func (st *Store) Update(fn func(s *Settings)) {
	st.mu.Lock()
	s := st.settings
	fn(&s)
	s = s.Clamped()
	changed := s != st.settings
	st.settings = s
	observers := st.snapshotObservers()
	st.mu.Unlock()

	if changed {
		for _, ob := range observers {
			ob(s)
		}
	}
}

// Subscribe registers an observer for settings changes.
func (st *Store) Subscribe(ob Observer) *Subscription {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.nextID++
	st.observers[st.nextID] = ob
	return &Subscription{id: st.nextID, store: st}
}

func (st *Store) apply(s Settings) {
	st.mu.Lock()
	changed := s != st.settings
	st.settings = s
	observers := st.snapshotObservers()
	st.mu.Unlock()

	if changed {
		for _, ob := range observers {
			ob(s)
		}
	}
}

// snapshotObservers must be called with st.mu held.
func (st *Store) snapshotObservers() []Observer {
	obs := make([]Observer, 0, len(st.observers))
	for _, ob := range st.observers {
		obs = append(obs, ob)
	}
	return obs
}

func (st *Store) unsubscribe(id uint64) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.observers, id)
}
