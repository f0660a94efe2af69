// Package audit records who did what to which application.
//
// Events are append-only. The publisher fans them out to one sink: memory for
// development, the audit_events table, or a Kafka topic.
package audit

import "time"

// Event is emitted by the representation services after a state change
// commits. Subject is the application id.
type Event struct {
	Timestamp  time.Time `json:"timestamp"`
	Action     string    `json:"action"`
	ActorID    string    `json:"actor_id,omitempty"`
	Subject    string    `json:"subject"`
	PrisonerID string    `json:"prisoner_id,omitempty"`
	LawyerID   string    `json:"lawyer_id,omitempty"`
	Decision   string    `json:"decision,omitempty"`
	Reason     string    `json:"reason,omitempty"`
	RequestID  string    `json:"request_id,omitempty"`
}

const (
	ActionApplicationSubmitted = "application_submitted"
	ActionApplicationAccepted  = "application_accepted"
	ActionApplicationRejected  = "application_rejected"
	ActionCaseLinkFailed       = "case_link_failed"
)
