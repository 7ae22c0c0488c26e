package types

// Event is an immutable catalog entry for a party weekend. Events are loaded
// from static configuration and never mutated at runtime.
type Event struct {
	ID               string `json:"id" mapstructure:"id"`
	Name             string `json:"name" mapstructure:"name"`
	City             string `json:"city" mapstructure:"city"`
	StartDate        string `json:"start_date" mapstructure:"startDate"` // YYYY-MM-DD
	EndDate          string `json:"end_date" mapstructure:"endDate"`     // YYYY-MM-DD
	DisplayText      string `json:"display_text" mapstructure:"displayText"`
	DisplayTextShort string `json:"display_text_short" mapstructure:"displayTextShort"`
}
