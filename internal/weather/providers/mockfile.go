package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/vlysenko/weather-cli/internal/weather"
)

// MockProvider serves a raw document from a local JSON file instead of the
// network. The requested city is ignored; the file decides the location.
type MockProvider struct {
	path string
}

func NewMockProvider(path string) *MockProvider {
	return &MockProvider{path: path}
}

func (p *MockProvider) Name() string {
	return weather.MockProviderName
}

func (p *MockProvider) Fetch(_ context.Context, _ string) (weather.Document, error) {
	b, err := os.ReadFile(p.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %q", weather.ErrNotFound, p.path)
		}
		return nil, fmt.Errorf("read mock file %q: %w", p.path, err)
	}

	if !json.Valid(b) {
		return nil, fmt.Errorf("%w: mock file %q", weather.ErrParse, p.path)
	}

	return weather.Document(b), nil
}
