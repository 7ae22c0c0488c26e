package party

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/4the-win/go-party-weekend/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

// Service is the business logic contract for the party catalog.
type Service interface {
	FetchPartyCatalog(ctx context.Context, event string) ([]types.Party, error)
	FetchPartiesByDateRange(ctx context.Context, event, startDate, endDate string) ([]types.Party, error)
	ListEventNames(ctx context.Context) ([]string, error)
}

// catalogTTL mirrors the five-minute staleness the web client tolerated.
const (
	catalogTTL   = 5 * time.Minute
	catalogSweep = 10 * time.Minute
)

type ServiceImpl struct {
	logger          *slog.Logger
	partyRepository Repository
	catalogCache    *cache.Cache
}

func NewServiceImpl(partyRepository Repository, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:          logger,
		partyRepository: partyRepository,
		catalogCache:    cache.New(catalogTTL, catalogSweep),
	}
}

// FetchPartyCatalog returns the full catalog for an event, served from the
// in-process cache when fresh.
func (s *ServiceImpl) FetchPartyCatalog(ctx context.Context, event string) ([]types.Party, error) {
	ctx, span := otel.Tracer("PartyService").Start(ctx, "FetchPartyCatalog")
	defer span.End()
	span.SetAttributes(attribute.String("event", event))

	if cached, ok := s.catalogCache.Get(event); ok {
		span.SetStatus(codes.Ok, "cache hit")
		return cached.([]types.Party), nil
	}

	parties, err := s.partyRepository.GetPartiesByEvent(ctx, event)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to fetch party catalog",
			slog.String("event", event), slog.Any("error", err))
		span.RecordError(err)
		return nil, fmt.Errorf("failed to fetch parties for %q: %w", event, err)
	}

	s.catalogCache.Set(event, parties, cache.DefaultExpiration)
	span.SetStatus(codes.Ok, "catalog fetched")
	return parties, nil
}

// FetchPartiesByDateRange bypasses the cache: ranges vary per request and
// the underlying query is already indexed.
func (s *ServiceImpl) FetchPartiesByDateRange(ctx context.Context, event, startDate, endDate string) ([]types.Party, error) {
	parties, err := s.partyRepository.GetPartiesByDateRange(ctx, event, startDate, endDate)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to fetch parties by date range",
			slog.String("event", event), slog.Any("error", err))
		return nil, fmt.Errorf("failed to fetch parties for %q: %w", event, err)
	}
	return parties, nil
}

func (s *ServiceImpl) ListEventNames(ctx context.Context) ([]string, error) {
	names, err := s.partyRepository.ListEventNames(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list event names", slog.Any("error", err))
		return nil, fmt.Errorf("failed to fetch events: %w", err)
	}
	return names, nil
}
