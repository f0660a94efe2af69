package handler

import (
	"strings"

	"github.com/xeipuuv/gojsonschema"

	id "counsel/pkg/domain"
	"counsel/pkg/platform/httputil"
)

var submitSchema = httputil.MustSchema(`{
	"type": "object",
	"properties": {
		"prisoner_id": {"type": "string", "maxLength": 64},
		"case_id": {"type": "string", "maxLength": 64}
	},
	"required": ["prisoner_id"],
	"additionalProperties": false
}`)

// SubmitRequest is the body of POST /lawyers/{lawyerID}/applications.
type SubmitRequest struct {
	PrisonerID string `json:"prisoner_id"`
	CaseID     string `json:"case_id,omitempty"`

	parsedPrisonerID id.PrisonerID
	parsedCaseID     *id.CaseID
}

func (r *SubmitRequest) Schema() *gojsonschema.Schema { return submitSchema }

func (r *SubmitRequest) Validate() error {
	prisonerID, err := id.ParsePrisonerID(strings.TrimSpace(r.PrisonerID))
	if err != nil {
		return err
	}
	r.parsedPrisonerID = prisonerID

	if raw := strings.TrimSpace(r.CaseID); raw != "" {
		caseID, err := id.ParseCaseID(raw)
		if err != nil {
			return err
		}
		r.parsedCaseID = &caseID
	}
	return nil
}

// The decision value is left to the processor so that a foreign lawyer is
// told forbidden before being told the decision is malformed.
var decisionSchema = httputil.MustSchema(`{
	"type": "object",
	"properties": {
		"application_id": {"type": "string", "maxLength": 64},
		"decision": {"type": "string", "maxLength": 32}
	},
	"required": ["application_id", "decision"],
	"additionalProperties": false
}`)

// DecisionRequest is the body of POST /lawyers/{lawyerID}/decisions.
type DecisionRequest struct {
	ApplicationID string `json:"application_id"`
	Decision      string `json:"decision"`

	parsedApplicationID id.ApplicationID
}

func (r *DecisionRequest) Schema() *gojsonschema.Schema { return decisionSchema }

func (r *DecisionRequest) Validate() error {
	applicationID, err := id.ParseApplicationID(strings.TrimSpace(r.ApplicationID))
	if err != nil {
		return err
	}
	r.parsedApplicationID = applicationID
	return nil
}
