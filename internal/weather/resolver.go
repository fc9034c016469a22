package weather

import (
	"context"
	"log/slog"
	"strings"
)

// Resolver turns a requested city into a normalized Report using the
// configured provider.
type Resolver struct {
	provider Provider
	log      *slog.Logger
}

// NewResolver creates a Resolver over the given provider.
func NewResolver(provider Provider, log *slog.Logger) *Resolver {
	if log == nil {
		log = slog.Default()
	}
	return &Resolver{
		provider: provider,
		log:      log,
	}
}

// Resolve fetches the raw document for city and projects it into a Report.
// In mock mode the document's own location name wins: if it differs from the
// requested city a non-fatal notice is logged and the mock's name is used.
func (r *Resolver) Resolve(ctx context.Context, city string, units Units) (Report, error) {
	doc, err := r.provider.Fetch(ctx, city)
	if err != nil {
		return Report{}, err
	}

	report, err := Normalize(doc, units)
	if err != nil {
		return Report{}, err
	}

	if r.provider.Name() == MockProviderName && !strings.EqualFold(report.City, city) {
		r.log.Warn("using mock data for a different location",
			"mock", report.City,
			"requested", city,
		)
	}

	return report, nil
}
