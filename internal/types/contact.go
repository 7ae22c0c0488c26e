package types

// ContactRequest is a contact form submission. Website is a honeypot field:
// hidden from real users, bots auto-fill it.
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
	Website string `json:"website,omitempty"`
}

// ContactResponse acknowledges a delivered submission.
type ContactResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
