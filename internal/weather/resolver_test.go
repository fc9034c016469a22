package weather

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
)

// stubProvider returns a fixed document or error.
type stubProvider struct {
	name string
	doc  Document
	err  error
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) Fetch(_ context.Context, _ string) (Document, error) {
	return s.doc, s.err
}

func TestResolveProjectsDocument(t *testing.T) {
	p := &stubProvider{name: "weatherapi", doc: Document(sampleDoc)}
	r := NewResolver(p, slog.New(slog.NewTextHandler(io.Discard, nil)))

	report, err := r.Resolve(context.Background(), "Berlin", UnitsMetric)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if report.City != "Berlin" || report.Temperature != 20.5 || report.Humidity != 65 || report.Condition != "Sunny" {
		t.Fatalf("unexpected report: %+v", report)
	}
}

func TestResolvePropagatesProviderError(t *testing.T) {
	p := &stubProvider{name: "weatherapi", err: ErrTimeout}
	r := NewResolver(p, slog.New(slog.NewTextHandler(io.Discard, nil)))

	_, err := r.Resolve(context.Background(), "Berlin", UnitsMetric)
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("Resolve() error = %v, want ErrTimeout", err)
	}
}

func TestResolveMockMismatchUsesMockCity(t *testing.T) {
	var logBuf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&logBuf, nil))

	p := &stubProvider{name: MockProviderName, doc: Document(sampleDoc)}
	r := NewResolver(p, log)

	report, err := r.Resolve(context.Background(), "Tokyo", UnitsMetric)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	// The mock's own location name wins, with a non-fatal notice.
	if report.City != "Berlin" {
		t.Fatalf("City = %q, want the mock's Berlin", report.City)
	}
	if !strings.Contains(logBuf.String(), "Tokyo") || !strings.Contains(logBuf.String(), "Berlin") {
		t.Fatalf("expected a mismatch notice naming both cities, got %q", logBuf.String())
	}
}

func TestResolveMockMatchIsQuiet(t *testing.T) {
	var logBuf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&logBuf, nil))

	p := &stubProvider{name: MockProviderName, doc: Document(sampleDoc)}
	r := NewResolver(p, log)

	// Case-insensitive match must not trigger the notice.
	if _, err := r.Resolve(context.Background(), "berlin", UnitsMetric); err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if logBuf.Len() != 0 {
		t.Fatalf("unexpected log output: %q", logBuf.String())
	}
}

func TestResolveLiveProviderNoMismatchNotice(t *testing.T) {
	var logBuf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&logBuf, nil))

	// The live API canonicalizes city names; that must not look like a
	// mock substitution.
	p := &stubProvider{name: "weatherapi", doc: Document(sampleDoc)}
	r := NewResolver(p, log)

	if _, err := r.Resolve(context.Background(), "Tokyo", UnitsMetric); err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if logBuf.Len() != 0 {
		t.Fatalf("unexpected log output: %q", logBuf.String())
	}
}
