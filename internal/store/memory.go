package store

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/vlysenko/weather-cli/internal/weather"
)

var (
	// ErrNotFound is returned when no snapshot is available for a city.
	ErrNotFound = errors.New("no weather data for city")
)

// documentHistory holds a time-ordered list of raw documents for a city.
type documentHistory struct {
	entries []weather.StoredDocument
}

// MemoryStore is a concurrency-safe in-memory store of raw provider
// documents, keyed by lowercased city name.
type MemoryStore struct {
	mu sync.RWMutex

	data map[string]*documentHistory

	// retention configuration
	maxHistory int           // max number of documents per city
	maxAge     time.Duration // optional max age for documents
}

// NewMemoryStore creates a new MemoryStore with optional limits.
// If maxHistory is <= 0, it is treated as unlimited.
func NewMemoryStore(maxHistory int, maxAge time.Duration) *MemoryStore {
	return &MemoryStore{
		data:       make(map[string]*documentHistory),
		maxHistory: maxHistory,
		maxAge:     maxAge,
	}
}

func key(city string) string {
	return strings.ToLower(strings.TrimSpace(city))
}

// SaveDocument appends a new document for a city and enforces retention.
func (s *MemoryStore) SaveDocument(city string, doc weather.Document, fetchedAt time.Time) {
	k := key(city)

	s.mu.Lock()
	defer s.mu.Unlock()

	history, ok := s.data[k]
	if !ok {
		history = &documentHistory{}
		s.data[k] = history
	}

	history.entries = append(history.entries, weather.StoredDocument{
		Doc:       doc,
		FetchedAt: fetchedAt,
	})

	// Enforce retention by count.
	if s.maxHistory > 0 && len(history.entries) > s.maxHistory {
		over := len(history.entries) - s.maxHistory
		history.entries = history.entries[over:]
	}

	// Enforce retention by age.
	if s.maxAge > 0 {
		cutoff := time.Now().Add(-s.maxAge)
		i := 0
		for ; i < len(history.entries); i++ {
			if !history.entries[i].FetchedAt.Before(cutoff) {
				break
			}
		}
		if i > 0 && i < len(history.entries) {
			history.entries = history.entries[i:]
		}
	}
}

// Latest returns the most recent document for a city.
func (s *MemoryStore) Latest(city string) (weather.StoredDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history, ok := s.data[key(city)]
	if !ok || len(history.entries) == 0 {
		return weather.StoredDocument{}, ErrNotFound
	}
	return history.entries[len(history.entries)-1], nil
}

// Range returns all documents for a city between from and to (inclusive).
func (s *MemoryStore) Range(city string, from, to time.Time) ([]weather.StoredDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history, ok := s.data[key(city)]
	if !ok || len(history.entries) == 0 {
		return nil, ErrNotFound
	}

	var result []weather.StoredDocument
	for _, entry := range history.entries {
		if !entry.FetchedAt.Before(from) && !entry.FetchedAt.After(to) {
			result = append(result, entry)
		}
	}

	if len(result) == 0 {
		return nil, ErrNotFound
	}

	return result, nil
}
