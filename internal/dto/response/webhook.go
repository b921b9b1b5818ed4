package response

// WebhookAck is returned to the payment provider. Duplicates are acked
// too so the provider stops retrying.
type WebhookAck struct {
	Received  bool `json:"received"`
	Duplicate bool `json:"duplicate,omitempty"`
}
