package handler

import (
	"strings"
	"time"

	"github.com/xeipuuv/gojsonschema"

	id "counsel/pkg/domain"
	dErrors "counsel/pkg/domain-errors"
	"counsel/pkg/platform/httputil"
)

var precedentSchema = httputil.MustSchema(`{
	"type": "object",
	"properties": {
		"title": {"type": "string", "minLength": 1, "maxLength": 300},
		"citation": {"type": "string", "maxLength": 200},
		"summary": {"type": "string", "maxLength": 4000}
	},
	"required": ["title"],
	"additionalProperties": false
}`)

// AddPrecedentRequest is the body of POST /lawyers/{lawyerID}/precedents.
type AddPrecedentRequest struct {
	Title    string `json:"title"`
	Citation string `json:"citation,omitempty"`
	Summary  string `json:"summary,omitempty"`
}

func (r *AddPrecedentRequest) Schema() *gojsonschema.Schema { return precedentSchema }

var meetingSchema = httputil.MustSchema(`{
	"type": "object",
	"properties": {
		"prisoner_id": {"type": "string", "maxLength": 64},
		"scheduled_at": {"type": "string", "maxLength": 64},
		"location": {"type": "string", "maxLength": 200},
		"notes": {"type": "string", "maxLength": 4000}
	},
	"required": ["prisoner_id", "scheduled_at"],
	"additionalProperties": false
}`)

// AddMeetingRequest is the body of POST /lawyers/{lawyerID}/meetings.
// scheduled_at is RFC 3339.
type AddMeetingRequest struct {
	PrisonerID  string `json:"prisoner_id"`
	ScheduledAt string `json:"scheduled_at"`
	Location    string `json:"location,omitempty"`
	Notes       string `json:"notes,omitempty"`

	parsedPrisonerID  id.PrisonerID
	parsedScheduledAt time.Time
}

func (r *AddMeetingRequest) Schema() *gojsonschema.Schema { return meetingSchema }

func (r *AddMeetingRequest) Validate() error {
	prisonerID, err := id.ParsePrisonerID(strings.TrimSpace(r.PrisonerID))
	if err != nil {
		return err
	}
	r.parsedPrisonerID = prisonerID

	at, err := time.Parse(time.RFC3339, strings.TrimSpace(r.ScheduledAt))
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInvalidInput, "scheduled_at must be an RFC 3339 timestamp")
	}
	r.parsedScheduledAt = at
	return nil
}
