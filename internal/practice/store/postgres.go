package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"counsel/internal/practice/models"
	id "counsel/pkg/domain"
)

// PostgresStore reads and writes the precedents, client_meetings and
// court_appearances tables.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) SavePrecedent(ctx context.Context, p *models.Precedent) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO precedents (id, lawyer_id, title, citation, summary, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		p.ID.String(), p.LawyerID.String(), p.Title, p.Citation, p.Summary, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("save precedent: %w", err)
	}
	return nil
}

func (s *PostgresStore) SaveMeeting(ctx context.Context, m *models.Meeting) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO client_meetings (id, lawyer_id, prisoner_id, scheduled_at, location, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		m.ID.String(), m.LawyerID.String(), m.PrisonerID.String(), m.ScheduledAt, m.Location, m.Notes, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("save meeting: %w", err)
	}
	return nil
}

func (s *PostgresStore) SaveAppearance(ctx context.Context, a *models.Appearance) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO court_appearances (id, lawyer_id, case_id, court, appeared_at, outcome)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO NOTHING`,
		a.ID.String(), a.LawyerID.String(), a.CaseID.String(), a.Court, a.AppearedAt, a.Outcome,
	)
	if err != nil {
		return fmt.Errorf("save appearance: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListPrecedents(ctx context.Context, lawyerID id.LawyerID) ([]*models.Precedent, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, lawyer_id, title, citation, summary, created_at
		FROM precedents WHERE lawyer_id = $1
		ORDER BY created_at DESC, id ASC`, lawyerID.String())
	if err != nil {
		return nil, fmt.Errorf("list precedents: %w", err)
	}
	defer rows.Close()

	out := []*models.Precedent{}
	for rows.Next() {
		var (
			p             models.Precedent
			rawID, rawLaw string
		)
		if err := rows.Scan(&rawID, &rawLaw, &p.Title, &p.Citation, &p.Summary, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("list precedents: %w", err)
		}
		if p.ID, err = uuid.Parse(rawID); err != nil {
			return nil, fmt.Errorf("list precedents: %w", err)
		}
		if p.LawyerID, err = id.ParseLawyerID(rawLaw); err != nil {
			return nil, fmt.Errorf("list precedents: %w", err)
		}
		p.CreatedAt = p.CreatedAt.UTC()
		out = append(out, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list precedents: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) ListMeetings(ctx context.Context, lawyerID id.LawyerID) ([]*models.Meeting, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, lawyer_id, prisoner_id, scheduled_at, location, notes, created_at
		FROM client_meetings WHERE lawyer_id = $1
		ORDER BY scheduled_at ASC, id ASC`, lawyerID.String())
	if err != nil {
		return nil, fmt.Errorf("list meetings: %w", err)
	}
	defer rows.Close()

	out := []*models.Meeting{}
	for rows.Next() {
		var (
			m                          models.Meeting
			rawID, rawLaw, rawPrisoner string
		)
		if err := rows.Scan(&rawID, &rawLaw, &rawPrisoner, &m.ScheduledAt, &m.Location, &m.Notes, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("list meetings: %w", err)
		}
		if m.ID, err = uuid.Parse(rawID); err != nil {
			return nil, fmt.Errorf("list meetings: %w", err)
		}
		if m.LawyerID, err = id.ParseLawyerID(rawLaw); err != nil {
			return nil, fmt.Errorf("list meetings: %w", err)
		}
		if m.PrisonerID, err = id.ParsePrisonerID(rawPrisoner); err != nil {
			return nil, fmt.Errorf("list meetings: %w", err)
		}
		m.ScheduledAt, m.CreatedAt = m.ScheduledAt.UTC(), m.CreatedAt.UTC()
		out = append(out, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list meetings: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) ListAppearances(ctx context.Context, lawyerID id.LawyerID) ([]*models.Appearance, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, lawyer_id, case_id, court, appeared_at, outcome
		FROM court_appearances WHERE lawyer_id = $1
		ORDER BY appeared_at DESC, id ASC`, lawyerID.String())
	if err != nil {
		return nil, fmt.Errorf("list appearances: %w", err)
	}
	defer rows.Close()

	out := []*models.Appearance{}
	for rows.Next() {
		var (
			a                      models.Appearance
			rawID, rawLaw, rawCase string
		)
		if err := rows.Scan(&rawID, &rawLaw, &rawCase, &a.Court, &a.AppearedAt, &a.Outcome); err != nil {
			return nil, fmt.Errorf("list appearances: %w", err)
		}
		if a.ID, err = uuid.Parse(rawID); err != nil {
			return nil, fmt.Errorf("list appearances: %w", err)
		}
		if a.LawyerID, err = id.ParseLawyerID(rawLaw); err != nil {
			return nil, fmt.Errorf("list appearances: %w", err)
		}
		if a.CaseID, err = id.ParseCaseID(rawCase); err != nil {
			return nil, fmt.Errorf("list appearances: %w", err)
		}
		a.AppearedAt = a.AppearedAt.UTC()
		out = append(out, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list appearances: %w", err)
	}
	return out, nil
}
