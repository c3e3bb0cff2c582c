// Package store provides the process-local persistence: condition snapshot
// history per spot and the append-only contact submission log. Nothing
// survives a restart; the backing providers are the source of truth.
package store

import (
	"errors"
	"sync"
	"time"

	"github.com/surfaumaroc/surfcast/internal/surf"
)

// ErrNotFound is returned when no data is stored for a given spot.
var ErrNotFound = errors.New("no conditions for spot")

// MemoryStore is a concurrency-safe in-memory condition store with retention
// bounded by count and age.
type MemoryStore struct {
	mu sync.RWMutex

	// key: spot ID, value: snapshots ordered by insertion time
	data map[string][]surf.Condition

	maxHistory int           // max snapshots per spot (<=0 = unlimited)
	maxAge     time.Duration // max snapshot age (<=0 = unlimited)
}

func NewMemoryStore(maxHistory int, maxAge time.Duration) *MemoryStore {
	return &MemoryStore{
		data:       make(map[string][]surf.Condition),
		maxHistory: maxHistory,
		maxAge:     maxAge,
	}
}

// SaveCondition appends a snapshot for a spot and enforces retention.
func (s *MemoryStore) SaveCondition(spotID string, cond surf.Condition) {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := append(s.data[spotID], cond)

	if s.maxHistory > 0 && len(history) > s.maxHistory {
		history = history[len(history)-s.maxHistory:]
	}

	if s.maxAge > 0 {
		cutoff := time.Now().Add(-s.maxAge)
		i := 0
		for ; i < len(history); i++ {
			if !history[i].Timestamp.Before(cutoff) {
				break
			}
		}
		if i > 0 && i < len(history) {
			history = history[i:]
		}
	}

	s.data[spotID] = history
}

// Latest returns the most recent snapshot for a spot.
func (s *MemoryStore) Latest(spotID string) (surf.Condition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history := s.data[spotID]
	if len(history) == 0 {
		return surf.Condition{}, ErrNotFound
	}
	return history[len(history)-1], nil
}

// Range returns all snapshots for a spot between from and to, inclusive.
func (s *MemoryStore) Range(spotID string, from, to time.Time) ([]surf.Condition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history := s.data[spotID]
	if len(history) == 0 {
		return nil, ErrNotFound
	}

	var result []surf.Condition
	for _, cond := range history {
		if !cond.Timestamp.Before(from) && !cond.Timestamp.After(to) {
			result = append(result, cond)
		}
	}
	if len(result) == 0 {
		return nil, ErrNotFound
	}
	return result, nil
}
