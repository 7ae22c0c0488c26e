package types

// ItineraryDay is a single day bucket inside an itinerary.
//
// Invariants maintained by the planner package:
//   - days are sorted ascending by Date (the day key),
//   - DayNumber is the 1-based rank of the day in that order,
//   - Parties are sorted ascending by parsed start time (stable),
//   - a party name appears in at most one day across the itinerary.
type ItineraryDay struct {
	Date      string  `json:"date"`
	DayLabel  string  `json:"day_label"`
	DayNumber int     `json:"day_number"`
	Parties   []Party `json:"parties"`
}

// Itinerary is the user's chosen set of parties grouped into days.
// TotalCost is always the sum of the parsed ticket prices of every party
// currently present across all days.
type Itinerary struct {
	Days      []ItineraryDay `json:"itinerary"`
	TotalCost int            `json:"total_cost"`
}

// ItineraryRequest is the payload sent to the generation workflow.
type ItineraryRequest struct {
	Event         string   `json:"event"`
	SelectedTags  []string `json:"selected_tags"`
	ArrivalDate   string   `json:"arrival_date"`   // YYYY-MM-DD
	DepartureDate string   `json:"departure_date"` // YYYY-MM-DD
}

// ItineraryResponse is the normalized result of a generation call. The
// gateway guarantees TotalCost is populated (summed from the itinerary when
// the workflow omits it) and AllParties is non-nil.
type ItineraryResponse struct {
	Event        string         `json:"event"`
	SelectedTags []string       `json:"selected_tags"`
	VibeSummary  string         `json:"vibe_summary"`
	Itinerary    []ItineraryDay `json:"itinerary"`
	TotalCost    int            `json:"total_cost"`
	AllParties   []Party        `json:"all_parties"`
}
