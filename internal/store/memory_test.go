package store

import (
	"errors"
	"testing"
	"time"

	"github.com/vlysenko/weather-cli/internal/weather"
)

func doc(s string) weather.Document {
	return weather.Document(s)
}

func TestLatestReturnsMostRecent(t *testing.T) {
	s := NewMemoryStore(10, 0)

	now := time.Now().UTC()
	s.SaveDocument("Berlin", doc(`{"n":1}`), now.Add(-time.Hour))
	s.SaveDocument("Berlin", doc(`{"n":2}`), now)

	got, err := s.Latest("Berlin")
	if err != nil {
		t.Fatalf("Latest() error = %v", err)
	}
	if string(got.Doc) != `{"n":2}` {
		t.Fatalf("Latest() = %s, want latest entry", got.Doc)
	}
}

func TestLatestUnknownCity(t *testing.T) {
	s := NewMemoryStore(10, 0)

	_, err := s.Latest("Berlin")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Latest() error = %v, want ErrNotFound", err)
	}
}

func TestCityKeyIsCaseInsensitive(t *testing.T) {
	s := NewMemoryStore(10, 0)
	s.SaveDocument("Berlin", doc(`{"n":1}`), time.Now())

	if _, err := s.Latest("  berlin "); err != nil {
		t.Fatalf("Latest() error = %v, want hit via normalized key", err)
	}
}

func TestRetentionByCount(t *testing.T) {
	s := NewMemoryStore(2, 0)

	now := time.Now().UTC()
	s.SaveDocument("Berlin", doc(`{"n":1}`), now.Add(-2*time.Minute))
	s.SaveDocument("Berlin", doc(`{"n":2}`), now.Add(-time.Minute))
	s.SaveDocument("Berlin", doc(`{"n":3}`), now)

	entries, err := s.Range("Berlin", now.Add(-time.Hour), now)
	if err != nil {
		t.Fatalf("Range() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2 after retention", len(entries))
	}
	if string(entries[0].Doc) != `{"n":2}` {
		t.Fatalf("oldest retained = %s, want {\"n\":2}", entries[0].Doc)
	}
}

func TestRetentionByAge(t *testing.T) {
	s := NewMemoryStore(0, time.Hour)

	now := time.Now().UTC()
	s.SaveDocument("Berlin", doc(`{"n":1}`), now.Add(-2*time.Hour))
	s.SaveDocument("Berlin", doc(`{"n":2}`), now)

	entries, err := s.Range("Berlin", now.Add(-24*time.Hour), now)
	if err != nil {
		t.Fatalf("Range() error = %v", err)
	}
	if len(entries) != 1 || string(entries[0].Doc) != `{"n":2}` {
		t.Fatalf("entries = %v, want only the fresh document", entries)
	}
}

func TestRangeBounds(t *testing.T) {
	s := NewMemoryStore(0, 0)

	base := time.Date(2025, 6, 14, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 4; i++ {
		s.SaveDocument("Berlin", doc(`{}`), base.Add(time.Duration(i)*time.Hour))
	}

	entries, err := s.Range("Berlin", base.Add(time.Hour), base.Add(2*time.Hour))
	if err != nil {
		t.Fatalf("Range() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2 (inclusive bounds)", len(entries))
	}

	if _, err := s.Range("Berlin", base.Add(10*time.Hour), base.Add(11*time.Hour)); !errors.Is(err, ErrNotFound) {
		t.Fatalf("empty range error = %v, want ErrNotFound", err)
	}
}
