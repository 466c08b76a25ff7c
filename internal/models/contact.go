package models

// ContactRequest represents a contact form submission from the website
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
	// Honeypot is invisible to humans; any non-empty value marks a bot
	Honeypot string `json:"hp"`
	// ElapsedMS is the time the visitor spent in the form, in milliseconds
	ElapsedMS int64 `json:"t"`
}

// ContactResponse represents the response after submitting the contact form
type ContactResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// RequestMeta carries ambient request metadata captured from headers
type RequestMeta struct {
	IPAddress string
	UserAgent string
}

// UnknownMeta is the sentinel used when a header is absent
const UnknownMeta = "unknown"
