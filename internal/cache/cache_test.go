package cache

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/vlysenko/weather-cli/internal/weather"
	"github.com/vlysenko/weather-cli/internal/weather/providers"
)

func TestWriteThenLoadRoundTrips(t *testing.T) {
	doc := weather.Document(`{"location":{"name":"Berlin"},"current":{"temp_c":20.5,"temp_f":68.9,"humidity":65,"condition":{"text":"Sunny","code":1000}}}`)
	path := filepath.Join(t.TempDir(), "cache.json")

	if err := Write(doc, path); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	// The cache file is a valid mock input; loading it back must yield a
	// JSON-equivalent document.
	loaded, err := providers.NewMockProvider(path).Fetch(context.Background(), "Berlin")
	if err != nil {
		t.Fatalf("load cache file back: %v", err)
	}

	var want, got any
	if err := json.Unmarshal(doc, &want); err != nil {
		t.Fatalf("unmarshal original: %v", err)
	}
	if err := json.Unmarshal(loaded, &got); err != nil {
		t.Fatalf("unmarshal cached: %v", err)
	}
	if !reflect.DeepEqual(want, got) {
		t.Fatalf("round trip mismatch:\nwant %v\ngot  %v", want, got)
	}
}

func TestWriteOverwritesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")

	first := weather.Document(`{"location":{"name":"Berlin"}}`)
	second := weather.Document(`{"location":{"name":"Tokyo"}}`)

	if err := Write(first, path); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := Write(second, path); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	loaded, err := providers.NewMockProvider(path).Fetch(context.Background(), "Tokyo")
	if err != nil {
		t.Fatalf("load cache file back: %v", err)
	}

	var got map[string]map[string]string
	if err := json.Unmarshal(loaded, &got); err != nil {
		t.Fatalf("unmarshal cached: %v", err)
	}
	if got["location"]["name"] != "Tokyo" {
		t.Fatalf("cache was not overwritten: %v", got)
	}
}

func TestWriteUnwritablePath(t *testing.T) {
	doc := weather.Document(`{"location":{"name":"Berlin"}}`)
	path := filepath.Join(t.TempDir(), "missing-dir", "cache.json")

	err := Write(doc, path)
	if !errors.Is(err, ErrWrite) {
		t.Fatalf("Write() error = %v, want ErrWrite", err)
	}
}
