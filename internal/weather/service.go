package weather

import (
	"context"
	"log/slog"
	"time"
)

// Service orchestrates the resolver and the snapshot store for serve mode.
// Documents are stored raw and normalized on read, so a single stored
// snapshot can answer requests in either unit system.
type Service struct {
	resolver *Resolver
	store    Store
	log      *slog.Logger
}

// NewService creates a new Service.
func NewService(resolver *Resolver, store Store, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		resolver: resolver,
		store:    store,
		log:      log,
	}
}

// FetchAndStore fetches the current document for a city and records it.
func (s *Service) FetchAndStore(ctx context.Context, city string) error {
	report, err := s.resolver.Resolve(ctx, city, UnitsMetric)
	if err != nil {
		return err
	}
	s.store.SaveDocument(report.City, report.Raw, time.Now().UTC())
	return nil
}

// Current returns the latest known report for a city in the requested units,
// fetching live when the store has nothing for it.
func (s *Service) Current(ctx context.Context, city string, units Units) (Report, error) {
	stored, err := s.store.Latest(city)
	if err == nil {
		return Normalize(stored.Doc, units)
	}

	s.log.Debug("store miss, fetching live", "city", city)

	report, err := s.resolver.Resolve(ctx, city, units)
	if err != nil {
		return Report{}, err
	}
	s.store.SaveDocument(report.City, report.Raw, time.Now().UTC())
	return report, nil
}

// Range returns stored reports for a city between from and to (inclusive).
func (s *Service) Range(city string, units Units, from, to time.Time) ([]Report, error) {
	stored, err := s.store.Range(city, from, to)
	if err != nil {
		return nil, err
	}

	reports := make([]Report, 0, len(stored))
	for _, entry := range stored {
		report, err := Normalize(entry.Doc, units)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	return reports, nil
}
