package weather

import (
	"context"
	"time"
)

// MockProviderName identifies the file-backed provider. The resolver uses it
// to decide whether a location-name mismatch deserves a notice.
const MockProviderName = "mock"

// Provider abstracts a source of raw current-conditions documents
// (the live WeatherAPI.com client or a local mock file).
type Provider interface {
	Name() string
	Fetch(ctx context.Context, city string) (Document, error)
}

// StoredDocument is a raw document together with the time it was fetched.
type StoredDocument struct {
	Doc       Document
	FetchedAt time.Time
}

// Store is the contract the in-memory snapshot store must satisfy for the
// long-running serve mode.
type Store interface {
	SaveDocument(city string, doc Document, fetchedAt time.Time)
	Latest(city string) (StoredDocument, error)
	Range(city string, from, to time.Time) ([]StoredDocument, error)
}
