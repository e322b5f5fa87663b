package events

import "time"

// LeadCapturePayload is consumed from the marketing site's lead topic.
type LeadCapturePayload struct {
	EventID string `json:"event_id"`
	Org     string `json:"org"`
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Company string `json:"company,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Source  string `json:"source,omitempty"` // landing form, referral, import
	Message string `json:"message,omitempty"`
}

// LeadCaptureSchema is the JSON schema lead payloads are validated
// against before a client row is created.
const LeadCaptureSchema = `{
  "type": "object",
  "required": ["org", "name"],
  "properties": {
    "event_id": {"type": "string"},
    "org": {"type": "string", "minLength": 1},
    "name": {"type": "string", "minLength": 1},
    "email": {"type": "string"},
    "company": {"type": "string"},
    "phone": {"type": "string"},
    "source": {"type": "string"},
    "message": {"type": "string"}
  }
}`

// MaterializeRunPayload summarizes one recurrence materialization run.
type MaterializeRunPayload struct {
	EventID string    `json:"event_id"`
	Org     string    `json:"org,omitempty"` // empty when the run covered all orgs
	Created int       `json:"created"`
	RanAt   time.Time `json:"ran_at"`
}

// EntityEventPayload is published on task and invoice lifecycle changes.
type EntityEventPayload struct {
	EventID  string `json:"event_id"`
	Org      string `json:"org"`
	Kind     string `json:"kind"` // task.created, invoice.status_changed, ...
	EntityID uint   `json:"entity_id"`
	Detail   string `json:"detail,omitempty"`
}
