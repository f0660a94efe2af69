package models

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "counsel/pkg/domain"
	dErrors "counsel/pkg/domain-errors"
)

func TestNewPrecedent(t *testing.T) {
	lawyer := id.LawyerID(uuid.New())
	now := time.Date(2025, 6, 1, 12, 0, 0, 123456789, time.UTC)

	p, err := NewPrecedent(lawyer, "  Gideon v. Wainwright ", "372 U.S. 335", " right to counsel ", now)
	require.NoError(t, err)
	assert.Equal(t, "Gideon v. Wainwright", p.Title)
	assert.Equal(t, "right to counsel", p.Summary)
	assert.Equal(t, lawyer, p.LawyerID)
	assert.Equal(t, now.Truncate(time.Microsecond), p.CreatedAt)
	assert.NotEqual(t, uuid.Nil, p.ID)

	for name, title := range map[string]string{"empty": "  ", "too long": strings.Repeat("x", 301)} {
		t.Run(name, func(t *testing.T) {
			_, err := NewPrecedent(lawyer, title, "", "", now)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
		})
	}
}

func TestNewMeeting(t *testing.T) {
	lawyer := id.LawyerID(uuid.New())
	prisoner := id.PrisonerID(uuid.New())
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	m, err := NewMeeting(lawyer, prisoner, now.Add(48*time.Hour), " Visiting room 2 ", "", now)
	require.NoError(t, err)
	assert.Equal(t, "Visiting room 2", m.Location)
	assert.Equal(t, prisoner, m.PrisonerID)

	_, err = NewMeeting(lawyer, prisoner, now.Add(-time.Minute), "", "", now)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))

	_, err = NewMeeting(lawyer, prisoner, time.Time{}, "", "", now)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
}
