package store

import (
	"errors"
	"sync"

	"medi-forecast/internal/types"
	"medi-forecast/internal/weather"
)

var (
	// ErrNotFound is returned when no result is stored for a provider and location.
	ErrNotFound = errors.New("no forecast stored for location")
)

// Memory keeps the most recent fetch results per provider and location.
// Results are immutable once stored, so readers share the same pointer.
type Memory struct {
	mu sync.RWMutex

	// key: provider + location key, value: results oldest first
	data map[string][]*weather.Result

	maxHistory int
}

// NewMemory creates a store holding up to maxHistory results per key.
// If maxHistory is <= 0, only the latest result is kept.
func NewMemory(maxHistory int) *Memory {
	if maxHistory <= 0 {
		maxHistory = 1
	}
	return &Memory{
		data:       make(map[string][]*weather.Result),
		maxHistory: maxHistory,
	}
}

func key(provider weather.ProviderKind, loc types.Location) string {
	return string(provider) + "|" + loc.Key()
}

// Save appends a result. The last write for a key wins.
func (m *Memory) Save(loc types.Location, result *weather.Result) {
	k := key(result.Provider, loc)

	m.mu.Lock()
	defer m.mu.Unlock()

	history := append(m.data[k], result)
	if over := len(history) - m.maxHistory; over > 0 {
		history = history[over:]
	}
	m.data[k] = history
}

// Latest returns the most recently saved result.
func (m *Memory) Latest(provider weather.ProviderKind, loc types.Location) (*weather.Result, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	history := m.data[key(provider, loc)]
	if len(history) == 0 {
		return nil, ErrNotFound
	}
	return history[len(history)-1], nil
}

// History returns stored results, newest first.
func (m *Memory) History(provider weather.ProviderKind, loc types.Location) ([]*weather.Result, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	history := m.data[key(provider, loc)]
	if len(history) == 0 {
		return nil, ErrNotFound
	}

	out := make([]*weather.Result, 0, len(history))
	for i := len(history) - 1; i >= 0; i-- {
		out = append(out, history[i])
	}
	return out, nil
}
