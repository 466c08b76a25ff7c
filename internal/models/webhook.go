package models

// WebhookEntry is the changed record inside a Strapi webhook payload.
// Only the id is meaningful to the dispatcher; other entry fields are ignored.
type WebhookEntry struct {
	ID int `json:"id"`
}

// WebhookEvent represents a Strapi content-change event
type WebhookEvent struct {
	Event     string       `json:"event"`
	CreatedAt string       `json:"createdAt"`
	Model     string       `json:"model"`
	Entry     WebhookEntry `json:"entry"`
}

// WebhookResponse is the dispatcher's reply to a Strapi webhook
type WebhookResponse struct {
	Status  string `json:"status"`
	Rebuild *bool  `json:"rebuild,omitempty"`
	Success *bool  `json:"success,omitempty"`
	Message string `json:"message,omitempty"`
	Warning string `json:"warning,omitempty"`
}

// WebhookHealthResponse is the webhook health probe reply
type WebhookHealthResponse struct {
	Service   string `json:"service"`
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// BoolPtr returns a pointer to b, for optional response fields
func BoolPtr(b bool) *bool {
	return &b
}
