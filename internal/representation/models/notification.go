package models

import (
	"time"

	id "counsel/pkg/domain"
)

// UnknownPrisonerName stands in when a prisoner's display info cannot be loaded.
const UnknownPrisonerName = "Unknown prisoner"

// Notification is one pending application as a lawyer sees it.
type Notification struct {
	ApplicationID id.ApplicationID
	PrisonerID    id.PrisonerID
	PrisonerName  string
	PrisonerEmail string
	CaseID        *id.CaseID
	AppliedAt     time.Time
	// Degraded is set when the prisoner lookup failed and the placeholder is shown.
	Degraded bool
}

// DecisionResult reports a finalized application and whether the case link
// side effect applied.
type DecisionResult struct {
	Application *Application
	CaseUpdated bool
	LinkedCases []id.CaseID
	Warning     string
}
