// Package history keeps a bounded most-recently-used list of colors seen in
// scanned buffers.
package history

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/jsvensson/huescan/internal/color"
)

// DefaultMaxItems is the list cap used when none is configured.
const DefaultMaxItems = 100

// Entry is one remembered color.
type Entry struct {
	// Color is a lowercase 6-digit hex value with a leading '#'.
	Color    string    `yaml:"color"`
	Count    int       `yaml:"count"`
	LastUsed time.Time `yaml:"last_used"`
}

// Store persists the history list.
type Store interface {
	Load() ([]Entry, error)
	Save([]Entry) error
}

// Manager holds the history in MRU order.
type Manager struct {
	mu       sync.Mutex
	store    Store
	maxItems int
	items    []Entry
	now      func() time.Time
}

// NewManager returns an empty Manager. A nil store keeps history in memory
// only. A maxItems below 1 means DefaultMaxItems.
func NewManager(store Store, maxItems int) *Manager {
	if maxItems < 1 {
		maxItems = DefaultMaxItems
	}
	return &Manager{store: store, maxItems: maxItems, now: time.Now}
}

// Load replaces the in-memory list with the stored one. Stored colors are
// canonicalized; entries with an invalid color are dropped and duplicates are
// merged into the first one.
func (m *Manager) Load() error {
	if m.store == nil {
		return nil
	}
	stored, err := m.store.Load()
	if err != nil {
		return fmt.Errorf("loading history: %w", err)
	}

	var items []Entry
	for _, e := range stored {
		hex, ok := canonical(e.Color)
		if !ok {
			continue
		}
		e.Color = hex
		e.Count = max(e.Count, 1)
		if i := slices.IndexFunc(items, func(x Entry) bool { return x.Color == hex }); i >= 0 {
			items[i].Count += e.Count
			continue
		}
		items = append(items, e)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if len(items) > m.maxItems {
		items = items[:m.maxItems]
	}
	m.items = items
	return nil
}

// Add records each occurrence in hexes. Values that differ only by case or by
// short form count towards the same entry. Values that are not '#' followed by
// 3 or 6 hex digits are skipped.
func (m *Manager) Add(hexes ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	changed := false
	for _, raw := range hexes {
		hex, ok := canonical(raw)
		if !ok {
			continue
		}

		if i := slices.IndexFunc(m.items, func(e Entry) bool { return e.Color == hex }); i >= 0 {
			e := m.items[i]
			e.Count++
			e.LastUsed = now
			m.items = slices.Delete(m.items, i, i+1)
			m.items = slices.Insert(m.items, 0, e)
		} else {
			m.items = slices.Insert(m.items, 0, Entry{Color: hex, Count: 1, LastUsed: now})
			if len(m.items) > m.maxItems {
				m.items = m.items[:m.maxItems]
			}
		}
		changed = true
	}

	if !changed {
		return nil
	}
	return m.save()
}

// All returns a copy of the list, most recent first.
func (m *Manager) All() []Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.items)
}

// Recent returns up to n of the most recent entries.
func (m *Manager) Recent(n int) []Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	if n > len(m.items) {
		n = len(m.items)
	}
	if n <= 0 {
		return nil
	}
	return slices.Clone(m.items[:n])
}

// Clear empties the list and saves it.
func (m *Manager) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = nil
	return m.save()
}

// save writes the list. The caller holds m.mu.
func (m *Manager) save() error {
	if m.store == nil {
		return nil
	}
	if err := m.store.Save(m.items); err != nil {
		return fmt.Errorf("saving history: %w", err)
	}
	return nil
}

func canonical(raw string) (string, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if !strings.HasPrefix(s, "#") {
		return "", false
	}
	c, err := color.ParseHex(s)
	if err != nil {
		return "", false
	}
	return c.Hex(), true
}
