package event

import (
	"fmt"
	"log/slog"

	"github.com/4the-win/go-party-weekend/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

// Service exposes the static weekend-event catalog. Events come from
// configuration and never change at runtime.
type Service interface {
	ListEvents() []types.Event
	FindEventByID(id string) (*types.Event, error)
}

type ServiceImpl struct {
	logger *slog.Logger
	events []types.Event
	byID   map[string]types.Event
}

func NewServiceImpl(events []types.Event, logger *slog.Logger) *ServiceImpl {
	byID := make(map[string]types.Event, len(events))
	for _, ev := range events {
		byID[ev.ID] = ev
	}
	return &ServiceImpl{
		logger: logger,
		events: events,
		byID:   byID,
	}
}

func (s *ServiceImpl) ListEvents() []types.Event {
	out := make([]types.Event, len(s.events))
	copy(out, s.events)
	return out
}

func (s *ServiceImpl) FindEventByID(id string) (*types.Event, error) {
	ev, ok := s.byID[id]
	if !ok {
		return nil, fmt.Errorf("unknown event %q", id)
	}
	return &ev, nil
}
