package wizard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/singleflight"

	"github.com/4the-win/go-party-weekend/app/observability/metrics"
	"github.com/4the-win/go-party-weekend/internal/gateway"
	"github.com/4the-win/go-party-weekend/internal/types"
)

var (
	// ErrSessionNotFound is returned when the session ID is unknown or the
	// session has expired.
	ErrSessionNotFound = errors.New("wizard session not found")

	errMissingSelection = errors.New("event, arrival date and departure date must be set first")
	errAlreadyRequested = errors.New("an itinerary request is already in flight for this session")
)

// User-facing wording for the gateway failure taxonomy, matching the copy
// the UI renders next to the Try Again action.
const (
	msgTimeout = "Request timed out. Please try again."
	msgEmpty   = "No parties found for your selection. Try different dates or tags."
)

// CatalogFetcher is the slice of the party service the wizard needs: the
// full catalog for an event, sorted by date then start time.
type CatalogFetcher interface {
	FetchPartyCatalog(ctx context.Context, event string) ([]types.Party, error)
}

// EventFinder resolves a catalog event by its ID.
type EventFinder interface {
	FindEventByID(id string) (*types.Event, error)
}

var _ Service = (*ServiceImpl)(nil)

// Service is the business logic contract for wizard sessions.
type Service interface {
	CreateSession(ctx context.Context) types.WizardSnapshot
	GetSession(ctx context.Context, id uuid.UUID) (types.WizardSnapshot, error)

	Advance(ctx context.Context, id uuid.UUID) (types.WizardSnapshot, error)
	Retreat(ctx context.Context, id uuid.UUID) (types.WizardSnapshot, error)
	JumpTo(ctx context.Context, id uuid.UUID, step int) (types.WizardSnapshot, error)
	Reset(ctx context.Context, id uuid.UUID) (types.WizardSnapshot, error)

	SetEvent(ctx context.Context, id uuid.UUID, eventID string) (types.WizardSnapshot, error)
	ToggleTag(ctx context.Context, id uuid.UUID, tag string) (types.WizardSnapshot, error)
	SetTags(ctx context.Context, id uuid.UUID, tags []string) (types.WizardSnapshot, error)
	SetDates(ctx context.Context, id uuid.UUID, arrival, departure string) (types.WizardSnapshot, error)

	RequestItinerary(ctx context.Context, id uuid.UUID) (types.WizardSnapshot, error)
	RetryItinerary(ctx context.Context, id uuid.UUID) (types.WizardSnapshot, error)
	AddParty(ctx context.Context, id uuid.UUID, p types.Party) (types.WizardSnapshot, error)
	RemoveParty(ctx context.Context, id uuid.UUID, dayIndex, partyIndex int) (types.WizardSnapshot, error)
	LoadCatalog(ctx context.Context, id uuid.UUID) (types.WizardSnapshot, error)
}

// ServiceImpl keeps live sessions in an expiring in-process store and talks
// to the generation gateway and the party catalog on their behalf.
type ServiceImpl struct {
	logger    *slog.Logger
	generator gateway.Generator
	catalog   CatalogFetcher
	events    EventFinder
	sessions  *cache.Cache
	loads     singleflight.Group
}

const (
	sessionTTL     = 24 * time.Hour
	sessionSweep   = 1 * time.Hour
	catalogLoadKey = "catalog:"
)

func NewServiceImpl(generator gateway.Generator, catalog CatalogFetcher, events EventFinder, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:    logger,
		generator: generator,
		catalog:   catalog,
		events:    events,
		sessions:  cache.New(sessionTTL, sessionSweep),
	}
}

func (s *ServiceImpl) CreateSession(ctx context.Context) types.WizardSnapshot {
	sess := NewSession()
	s.sessions.Set(sess.ID().String(), sess, cache.DefaultExpiration)
	s.logger.InfoContext(ctx, "Wizard session created", slog.String("sessionID", sess.ID().String()))
	return sess.Snapshot()
}

func (s *ServiceImpl) session(id uuid.UUID) (*Session, error) {
	v, ok := s.sessions.Get(id.String())
	if !ok {
		return nil, ErrSessionNotFound
	}
	return v.(*Session), nil
}

func (s *ServiceImpl) GetSession(ctx context.Context, id uuid.UUID) (types.WizardSnapshot, error) {
	sess, err := s.session(id)
	if err != nil {
		return types.WizardSnapshot{}, err
	}
	return sess.Snapshot(), nil
}

func (s *ServiceImpl) Advance(ctx context.Context, id uuid.UUID) (types.WizardSnapshot, error) {
	sess, err := s.session(id)
	if err != nil {
		return types.WizardSnapshot{}, err
	}
	return sess.Advance(), nil
}

func (s *ServiceImpl) Retreat(ctx context.Context, id uuid.UUID) (types.WizardSnapshot, error) {
	sess, err := s.session(id)
	if err != nil {
		return types.WizardSnapshot{}, err
	}
	return sess.Retreat(), nil
}

func (s *ServiceImpl) JumpTo(ctx context.Context, id uuid.UUID, step int) (types.WizardSnapshot, error) {
	sess, err := s.session(id)
	if err != nil {
		return types.WizardSnapshot{}, err
	}
	return sess.JumpTo(step), nil
}

func (s *ServiceImpl) Reset(ctx context.Context, id uuid.UUID) (types.WizardSnapshot, error) {
	sess, err := s.session(id)
	if err != nil {
		return types.WizardSnapshot{}, err
	}
	s.logger.InfoContext(ctx, "Wizard session reset", slog.String("sessionID", id.String()))
	return sess.Reset(), nil
}

func (s *ServiceImpl) SetEvent(ctx context.Context, id uuid.UUID, eventID string) (types.WizardSnapshot, error) {
	sess, err := s.session(id)
	if err != nil {
		return types.WizardSnapshot{}, err
	}
	if eventID == "" {
		return sess.SetEvent(nil), nil
	}
	ev, err := s.events.FindEventByID(eventID)
	if err != nil {
		return types.WizardSnapshot{}, fmt.Errorf("failed to select event: %w", err)
	}
	return sess.SetEvent(ev), nil
}

func (s *ServiceImpl) ToggleTag(ctx context.Context, id uuid.UUID, tag string) (types.WizardSnapshot, error) {
	sess, err := s.session(id)
	if err != nil {
		return types.WizardSnapshot{}, err
	}
	return sess.ToggleTag(tag), nil
}

func (s *ServiceImpl) SetTags(ctx context.Context, id uuid.UUID, tags []string) (types.WizardSnapshot, error) {
	sess, err := s.session(id)
	if err != nil {
		return types.WizardSnapshot{}, err
	}
	return sess.SetTags(tags), nil
}

func (s *ServiceImpl) SetDates(ctx context.Context, id uuid.UUID, arrival, departure string) (types.WizardSnapshot, error) {
	sess, err := s.session(id)
	if err != nil {
		return types.WizardSnapshot{}, err
	}
	return sess.SetDates(arrival, departure), nil
}

// RequestItinerary enters the generating step, consumes the one-shot latch
// and performs the gateway call. On failure the session stays on the
// generating step with a user-facing error so Retry can re-issue the
// identical request.
func (s *ServiceImpl) RequestItinerary(ctx context.Context, id uuid.UUID) (types.WizardSnapshot, error) {
	sess, err := s.session(id)
	if err != nil {
		return types.WizardSnapshot{}, err
	}
	req, err := sess.beginGeneration()
	if err != nil {
		if errors.Is(err, errAlreadyRequested) {
			// duplicate trigger from the same entry into the generating
			// step; the outstanding call's completion will land
			return sess.Snapshot(), nil
		}
		return types.WizardSnapshot{}, err
	}
	return s.generate(ctx, sess, req), nil
}

// RetryItinerary re-issues the identical last request without state loss.
func (s *ServiceImpl) RetryItinerary(ctx context.Context, id uuid.UUID) (types.WizardSnapshot, error) {
	sess, err := s.session(id)
	if err != nil {
		return types.WizardSnapshot{}, err
	}
	req, err := sess.beginRetry()
	if err != nil {
		if errors.Is(err, errAlreadyRequested) {
			return sess.Snapshot(), nil
		}
		return types.WizardSnapshot{}, err
	}
	return s.generate(ctx, sess, req), nil
}

func (s *ServiceImpl) generate(ctx context.Context, sess *Session, req types.ItineraryRequest) types.WizardSnapshot {
	ctx, span := otel.Tracer("WizardService").Start(ctx, "generate")
	defer span.End()
	span.SetAttributes(
		attribute.String("session.id", sess.ID().String()),
		attribute.String("event", req.Event),
	)

	l := s.logger.With(slog.String("sessionID", sess.ID().String()), slog.String("event", req.Event))
	l.InfoContext(ctx, "Requesting generated itinerary", slog.Int("tags", len(req.SelectedTags)))

	start := time.Now()
	resp, err := s.generator.GenerateItinerary(ctx, req)
	if m := metrics.Get(); m != nil {
		m.GenerationRequestsTotal.Add(ctx, 1)
		m.GenerationDurationSeconds.Record(ctx, time.Since(start).Seconds())
	}
	if err != nil {
		l.WarnContext(ctx, "Itinerary generation failed", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "generation failed")
		return sess.failGeneration(generationErrorMessage(err))
	}

	span.SetStatus(codes.Ok, "generated")
	l.InfoContext(ctx, "Itinerary generated",
		slog.Int("days", len(resp.Itinerary)),
		slog.Int("total_cost", resp.TotalCost),
	)
	return sess.completeGeneration(resp)
}

// generationErrorMessage maps the gateway failure taxonomy to the inline
// message shown next to the Try Again action.
func generationErrorMessage(err error) string {
	switch {
	case errors.Is(err, gateway.ErrTimeout):
		return msgTimeout
	case errors.Is(err, gateway.ErrEmptyResponse):
		return msgEmpty
	default:
		return err.Error()
	}
}

// AddParty routes the mutation through the planner's itinerary rules.
func (s *ServiceImpl) AddParty(ctx context.Context, id uuid.UUID, p types.Party) (types.WizardSnapshot, error) {
	sess, err := s.session(id)
	if err != nil {
		return types.WizardSnapshot{}, err
	}
	p.Confirmed = types.ParseConfirmation(string(p.Confirmed))
	return sess.AddParty(p), nil
}

func (s *ServiceImpl) RemoveParty(ctx context.Context, id uuid.UUID, dayIndex, partyIndex int) (types.WizardSnapshot, error) {
	sess, err := s.session(id)
	if err != nil {
		return types.WizardSnapshot{}, err
	}
	return sess.RemoveParty(dayIndex, partyIndex), nil
}

// LoadCatalog fetches the full party catalog for the selected event.
// Concurrent loads for the same event are collapsed into one fetch; on
// failure the previous catalog is kept and only the error message changes.
func (s *ServiceImpl) LoadCatalog(ctx context.Context, id uuid.UUID) (types.WizardSnapshot, error) {
	sess, err := s.session(id)
	if err != nil {
		return types.WizardSnapshot{}, err
	}
	event, ok := sess.selectedEventName()
	if !ok {
		return types.WizardSnapshot{}, errMissingSelection
	}

	v, err, _ := s.loads.Do(catalogLoadKey+event, func() (interface{}, error) {
		return s.catalog.FetchPartyCatalog(ctx, event)
	})
	if err != nil {
		s.logger.WarnContext(ctx, "Catalog load failed",
			slog.String("sessionID", id.String()),
			slog.String("event", event),
			slog.Any("error", err),
		)
		return sess.failCatalog(err.Error()), nil
	}
	return sess.applyCatalog(v.([]types.Party)), nil
}
