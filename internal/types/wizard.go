package types

// Wizard step numbers. Steps 1-3 collect input, step 4 is the transient
// generation state, steps 5-6 browse results.
const (
	StepEventSelection = 1
	StepTagSelection   = 2
	StepDateSelection  = 3
	StepGenerating     = 4
	StepItinerary      = 5
	StepAllParties     = 6
)

// WizardSnapshot is the read model of a wizard session served to the UI.
type WizardSnapshot struct {
	SessionID      string         `json:"session_id"`
	CurrentStep    int            `json:"current_step"`
	SelectedEvent  *Event         `json:"selected_event,omitempty"`
	SelectedTags   []string       `json:"selected_tags"`
	ArrivalDate    string         `json:"arrival_date,omitempty"`
	DepartureDate  string         `json:"departure_date,omitempty"`
	VibeSummary    string         `json:"vibe_summary,omitempty"`
	Itinerary      []ItineraryDay `json:"itinerary"`
	AllParties     []Party        `json:"all_parties"`
	TotalCost      int            `json:"total_cost"`
	IsLoading      bool           `json:"is_loading"`
	Error          string         `json:"error,omitempty"`
	CameFromBrowse bool           `json:"came_from_browse"`
}

// JumpRequest selects an arbitrary wizard step.
type JumpRequest struct {
	Step int `json:"step"`
}

// SetEventRequest selects the weekend event by catalog ID.
type SetEventRequest struct {
	EventID string `json:"event_id"`
}

// ToggleTagRequest toggles membership of one tag in the selection set.
type ToggleTagRequest struct {
	Tag string `json:"tag"`
}

// SetTagsRequest replaces the tag selection wholesale.
type SetTagsRequest struct {
	Tags []string `json:"tags"`
}

// SetDatesRequest sets the arrival/departure range (YYYY-MM-DD).
type SetDatesRequest struct {
	ArrivalDate   string `json:"arrival_date"`
	DepartureDate string `json:"departure_date"`
}

// AddPartyRequest adds a party to the session's itinerary.
type AddPartyRequest struct {
	Party Party `json:"party"`
}
