package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "counsel/pkg/domain"
	dErrors "counsel/pkg/domain-errors"
)

func newTestApplication(t *testing.T) *Application {
	t.Helper()
	app, err := NewApplication(id.NewApplicationID(), id.PrisonerID(uuid.New()), id.LawyerID(uuid.New()), nil,
		time.Date(2026, 1, 2, 3, 4, 5, 123456789, time.FixedZone("X", 3600)))
	require.NoError(t, err)
	return app
}

func TestNewApplication(t *testing.T) {
	app := newTestApplication(t)
	assert.Equal(t, StatusPending, app.Status)
	assert.Nil(t, app.DecidedAt)
	assert.Equal(t, time.UTC, app.CreatedAt.Location())
	assert.Equal(t, 123456000, app.CreatedAt.Nanosecond())

	t.Run("requires ids", func(t *testing.T) {
		_, err := NewApplication(id.NewApplicationID(), id.PrisonerID{}, id.LawyerID(uuid.New()), nil, time.Now())
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))

		_, err = NewApplication(id.NewApplicationID(), id.PrisonerID(uuid.New()), id.LawyerID{}, nil, time.Now())
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))

		nilCase := id.CaseID{}
		_, err = NewApplication(id.NewApplicationID(), id.PrisonerID(uuid.New()), id.LawyerID(uuid.New()), &nilCase, time.Now())
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})
}

func TestCanFinalize(t *testing.T) {
	app := newTestApplication(t)

	assert.True(t, dErrors.HasCode(app.CanFinalize(StatusPending), dErrors.CodeBadRequest))
	assert.True(t, dErrors.HasCode(app.CanFinalize(Status("archived")), dErrors.CodeBadRequest))
	require.NoError(t, app.CanFinalize(StatusAccepted))

	now := time.Date(2026, 1, 3, 0, 0, 0, 0, time.UTC)
	app.ApplyFinalize(StatusRejected, now)
	assert.Equal(t, StatusRejected, app.Status)
	require.NotNil(t, app.DecidedAt)
	assert.Equal(t, now, *app.DecidedAt)

	err := app.CanFinalize(StatusAccepted)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidTransition))
}

func TestParseDecision(t *testing.T) {
	d, err := ParseDecision("accept")
	require.NoError(t, err)
	assert.Equal(t, DecisionAccept, d)
	assert.Equal(t, StatusAccepted, d.TargetStatus())

	d, err = ParseDecision("reject")
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, d.TargetStatus())

	for _, bad := range []string{"", "maybe", "accepted", "ACCEPT", " accept ", "Reject"} {
		_, err := ParseDecision(bad)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest), bad)
	}
}

func TestStatus(t *testing.T) {
	assert.False(t, StatusPending.IsTerminal())
	assert.True(t, StatusAccepted.IsTerminal())
	assert.True(t, StatusRejected.IsTerminal())
	assert.True(t, StatusPending.IsValid())
	assert.False(t, Status("").IsValid())
}
