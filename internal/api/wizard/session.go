package wizard

import (
	"sync"

	"github.com/google/uuid"

	"github.com/4the-win/go-party-weekend/internal/planner"
	"github.com/4the-win/go-party-weekend/internal/types"
)

const (
	minStep = types.StepEventSelection
	maxStep = types.StepAllParties
)

// Session is one user's walk through the wizard. It is the single writer of
// all wizard state: handlers read snapshots and mutate exclusively through
// the named operations below, every one of which holds the session lock.
type Session struct {
	mu sync.Mutex

	id             uuid.UUID
	currentStep    int
	selectedEvent  *types.Event
	selectedTags   []string
	arrivalDate    string
	departureDate  string
	vibeSummary    string
	itinerary      types.Itinerary
	allParties     []types.Party
	isLoading      bool
	errMsg         string
	cameFromBrowse bool

	// generationArmed is the one-shot latch: armed each time the session
	// enters the generating step, consumed by the first generation call.
	generationArmed bool
	generating      bool
	lastRequest     *types.ItineraryRequest
}

func NewSession() *Session {
	return &Session{
		id:          uuid.New(),
		currentStep: types.StepEventSelection,
	}
}

func (s *Session) ID() uuid.UUID { return s.id }

// Snapshot returns a copy of the session state safe to serve while the
// session keeps mutating.
func (s *Session) Snapshot() types.WizardSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() types.WizardSnapshot {
	snap := types.WizardSnapshot{
		SessionID:      s.id.String(),
		CurrentStep:    s.currentStep,
		SelectedTags:   append([]string(nil), s.selectedTags...),
		ArrivalDate:    s.arrivalDate,
		DepartureDate:  s.departureDate,
		VibeSummary:    s.vibeSummary,
		Itinerary:      s.itinerary.Days,
		AllParties:     append([]types.Party(nil), s.allParties...),
		TotalCost:      s.itinerary.TotalCost,
		IsLoading:      s.isLoading,
		Error:          s.errMsg,
		CameFromBrowse: s.cameFromBrowse,
	}
	if s.selectedEvent != nil {
		ev := *s.selectedEvent
		snap.SelectedEvent = &ev
	}
	if snap.SelectedTags == nil {
		snap.SelectedTags = []string{}
	}
	if snap.Itinerary == nil {
		snap.Itinerary = []types.ItineraryDay{}
	}
	if snap.AllParties == nil {
		snap.AllParties = []types.Party{}
	}
	return snap
}

// Advance moves one step forward, clamped at the last step. Required-field
// guards live at the UI boundary; the machine only clamps the range.
func (s *Session) Advance() types.WizardSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setStepLocked(s.currentStep + 1)
	return s.snapshotLocked()
}

// Retreat moves one step back, clamped at the first step.
func (s *Session) Retreat() types.WizardSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setStepLocked(s.currentStep - 1)
	return s.snapshotLocked()
}

// JumpTo sets the step unconditionally (clamped to the valid range). The
// jump from event selection straight to the catalog records the entry path
// so Back from the catalog returns to the start instead of the itinerary.
func (s *Session) JumpTo(step int) types.WizardSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.currentStep == types.StepEventSelection && step == types.StepAllParties {
		s.cameFromBrowse = true
	}
	s.setStepLocked(step)
	return s.snapshotLocked()
}

func (s *Session) setStepLocked(step int) {
	if step < minStep {
		step = minStep
	}
	if step > maxStep {
		step = maxStep
	}
	entering := step == types.StepGenerating && s.currentStep != types.StepGenerating
	s.currentStep = step
	if entering {
		s.generationArmed = true
	}
}

// Reset restores the initial state and returns to the first step. It doubles
// as the recovery action after a fatal error.
func (s *Session) Reset() types.WizardSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentStep = types.StepEventSelection
	s.selectedEvent = nil
	s.selectedTags = nil
	s.arrivalDate = ""
	s.departureDate = ""
	s.vibeSummary = ""
	s.itinerary = types.Itinerary{}
	s.allParties = nil
	s.isLoading = false
	s.errMsg = ""
	s.cameFromBrowse = false
	s.generationArmed = false
	s.generating = false
	s.lastRequest = nil
	return s.snapshotLocked()
}

// SetEvent selects (or clears) the weekend event. Tags and dates picked
// earlier deliberately survive an event change.
func (s *Session) SetEvent(ev *types.Event) types.WizardSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedEvent = ev
	return s.snapshotLocked()
}

// ToggleTag flips membership of one tag. The selection is a set, but
// insertion order is preserved for display.
func (s *Session) ToggleTag(tag string) types.WizardSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.selectedTags {
		if t == tag {
			s.selectedTags = append(s.selectedTags[:i:i], s.selectedTags[i+1:]...)
			return s.snapshotLocked()
		}
	}
	s.selectedTags = append(s.selectedTags, tag)
	return s.snapshotLocked()
}

// SetTags replaces the selection wholesale, dropping duplicates while
// keeping first-occurrence order.
func (s *Session) SetTags(tags []string) types.WizardSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	s.selectedTags = out
	return s.snapshotLocked()
}

// SetDates records the arrival/departure range.
func (s *Session) SetDates(arrival, departure string) types.WizardSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.arrivalDate = arrival
	s.departureDate = departure
	return s.snapshotLocked()
}

// AddParty inserts a party into the itinerary through the planner rules.
func (s *Session) AddParty(p types.Party) types.WizardSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.itinerary = planner.AddParty(s.itinerary, p)
	return s.snapshotLocked()
}

// RemoveParty removes the party at day/position through the planner rules.
func (s *Session) RemoveParty(dayIndex, partyIndex int) types.WizardSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.itinerary = planner.RemoveParty(s.itinerary, dayIndex, partyIndex)
	return s.snapshotLocked()
}

// beginGeneration validates the preconditions, consumes the one-shot latch
// and marks the session loading. It returns the request to issue, or
// errAlreadyRequested when the latch for this entry into the generating step
// has already been spent.
func (s *Session) beginGeneration() (types.ItineraryRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.selectedEvent == nil || s.arrivalDate == "" || s.departureDate == "" {
		return types.ItineraryRequest{}, errMissingSelection
	}
	if s.generating {
		return types.ItineraryRequest{}, errAlreadyRequested
	}
	if !s.generationArmed {
		if s.currentStep == types.StepGenerating {
			return types.ItineraryRequest{}, errAlreadyRequested
		}
		// arriving here without passing through the generating step: arm now
	}
	s.generationArmed = false
	s.currentStep = types.StepGenerating
	s.generating = true
	s.isLoading = true
	s.errMsg = ""

	req := types.ItineraryRequest{
		Event:         s.selectedEvent.Name,
		SelectedTags:  append([]string(nil), s.selectedTags...),
		ArrivalDate:   s.arrivalDate,
		DepartureDate: s.departureDate,
	}
	s.lastRequest = &req
	return req, nil
}

// beginRetry re-issues the identical last request without consulting the
// latch; the user asked explicitly.
func (s *Session) beginRetry() (types.ItineraryRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastRequest == nil {
		return types.ItineraryRequest{}, errMissingSelection
	}
	if s.generating {
		return types.ItineraryRequest{}, errAlreadyRequested
	}
	s.generating = true
	s.isLoading = true
	s.errMsg = ""
	return *s.lastRequest, nil
}

// completeGeneration applies a successful generation result. Completions are
// applied in arrival order (last write wins), which is safe because only one
// generation call is ever in flight per session.
func (s *Session) completeGeneration(resp *types.ItineraryResponse) types.WizardSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generating = false
	s.isLoading = false
	s.errMsg = ""
	s.vibeSummary = resp.VibeSummary
	s.itinerary = types.Itinerary{Days: resp.Itinerary, TotalCost: resp.TotalCost}
	s.allParties = resp.AllParties
	s.currentStep = types.StepItinerary
	return s.snapshotLocked()
}

// failGeneration records a generation failure, leaving the session on the
// generating step so the user can retry without losing state.
func (s *Session) failGeneration(message string) types.WizardSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generating = false
	s.isLoading = false
	s.errMsg = message
	return s.snapshotLocked()
}

// selectedEventName returns the selected event's name, if any.
func (s *Session) selectedEventName() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selectedEvent == nil {
		return "", false
	}
	return s.selectedEvent.Name, true
}

// applyCatalog replaces the stored catalog and clears any error.
func (s *Session) applyCatalog(parties []types.Party) types.WizardSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.allParties = parties
	s.errMsg = ""
	s.isLoading = false
	return s.snapshotLocked()
}

// failCatalog records a catalog load failure; the previous catalog, if any,
// is left untouched.
func (s *Session) failCatalog(message string) types.WizardSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errMsg = message
	s.isLoading = false
	return s.snapshotLocked()
}
