// Package domain holds the typed identifiers shared across modules.
//
// Each identifier is a distinct type over uuid.UUID so a prisoner id can never be
// passed where a lawyer id is expected. Parse functions are the trust boundary for
// ids arriving over HTTP or the CLI.
package domain

import (
	"strings"

	"github.com/google/uuid"

	dErrors "counsel/pkg/domain-errors"
)

type (
	PrisonerID    uuid.UUID
	LawyerID      uuid.UUID
	CaseID        uuid.UUID
	ApplicationID uuid.UUID
)

func (id PrisonerID) String() string    { return uuid.UUID(id).String() }
func (id LawyerID) String() string      { return uuid.UUID(id).String() }
func (id CaseID) String() string        { return uuid.UUID(id).String() }
func (id ApplicationID) String() string { return uuid.UUID(id).String() }

func (id PrisonerID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }
func (id LawyerID) IsNil() bool      { return uuid.UUID(id) == uuid.Nil }
func (id CaseID) IsNil() bool        { return uuid.UUID(id) == uuid.Nil }
func (id ApplicationID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }

func NewApplicationID() ApplicationID { return ApplicationID(uuid.New()) }

func ParsePrisonerID(s string) (PrisonerID, error) {
	u, err := parseUUID(s, "prisoner_id")
	return PrisonerID(u), err
}

func ParseLawyerID(s string) (LawyerID, error) {
	u, err := parseUUID(s, "lawyer_id")
	return LawyerID(u), err
}

func ParseCaseID(s string) (CaseID, error) {
	u, err := parseUUID(s, "case_id")
	return CaseID(u), err
}

func ParseApplicationID(s string) (ApplicationID, error) {
	u, err := parseUUID(s, "application_id")
	return ApplicationID(u), err
}

// maxIDLength accepts the urn:uuid: form uuid.Parse understands and nothing longer.
const maxIDLength = 45

func parseUUID(s, field string) (uuid.UUID, error) {
	if strings.TrimSpace(s) == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, field+" is required")
	}
	if len(s) > maxIDLength {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, field+" is not a valid id")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.Wrap(err, dErrors.CodeInvalidInput, field+" is not a valid id")
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, field+" must not be the nil id")
	}
	return u, nil
}
