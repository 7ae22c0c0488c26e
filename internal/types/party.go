package types

import "strings"

// Confirmation is the normalized confirmation status of a party.
// Source data carries several spellings ("Confirmed", "Yes", "Likely", ...)
// which are resolved exactly once at ingestion via ParseConfirmation.
type Confirmation string

const (
	ConfirmationConfirmed Confirmation = "confirmed"
	ConfirmationPredicted Confirmation = "predicted"
)

// ParseConfirmation maps the loose source spellings to the two logical states.
// Anything that is not an affirmative spelling is treated as predicted.
func ParseConfirmation(raw string) Confirmation {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "confirmed", "yes", "y", "true":
		return ConfirmationConfirmed
	default:
		return ConfirmationPredicted
	}
}

// Party is a single scheduled sub-event within an Event's catalog.
// PartyName is the deduplication key for itinerary membership: two parties
// with the same name are the same party regardless of other fields.
type Party struct {
	PartyName   string       `json:"party_name"`
	Description string       `json:"description,omitempty"`
	Tags        []string     `json:"tags"`
	StartTime   string       `json:"start_time"`
	EndTime     string       `json:"end_time,omitempty"`
	Venue       string       `json:"venue"`
	TicketPrice string       `json:"ticket_price"`
	Confirmed   Confirmation `json:"confirmed"`
	Date        string       `json:"date,omitempty"` // YYYY-MM-DD
	Day         string       `json:"day,omitempty"`  // e.g. "Sep 24 (Thu)"
	Link        string       `json:"link,omitempty"`
}

// DayKey returns the key a party is bucketed under: the calendar date when
// present, otherwise the human day label. Every call site that needs the
// date-or-day fallback goes through here.
func (p Party) DayKey() string {
	if p.Date != "" {
		return p.Date
	}
	return p.Day
}

// DayLabel returns the human-facing label for the party's day.
func (p Party) DayLabel() string {
	if p.Day != "" {
		return p.Day
	}
	return p.Date
}
