package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"counsel/internal/cases/models"
	id "counsel/pkg/domain"
	"counsel/pkg/platform/sentinel"
)

type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const caseColumns = `id, title, status, prisoner_id, assigned_lawyer_id, created_at, updated_at`

func (s *PostgresStore) Save(ctx context.Context, c *models.Case) error {
	var assigned sql.NullString
	if c.AssignedLawyerID != nil {
		assigned = sql.NullString{String: c.AssignedLawyerID.String(), Valid: true}
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO cases (`+caseColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET title = EXCLUDED.title, status = EXCLUDED.status,
			assigned_lawyer_id = EXCLUDED.assigned_lawyer_id, updated_at = EXCLUDED.updated_at`,
		c.ID.String(), c.Title, string(c.Status), c.PrisonerID.String(), assigned, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save case: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, caseID id.CaseID) (*models.Case, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+caseColumns+` FROM cases WHERE id = $1`, caseID.String())
	c, err := scanCase(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find case: %w", err)
	}
	return c, nil
}

func (s *PostgresStore) ListByLawyer(ctx context.Context, lawyerID id.LawyerID) ([]*models.Case, error) {
	return s.list(ctx, `SELECT `+caseColumns+` FROM cases WHERE assigned_lawyer_id = $1 ORDER BY created_at ASC, id ASC`, lawyerID.String())
}

func (s *PostgresStore) ListByPrisoner(ctx context.Context, prisonerID id.PrisonerID) ([]*models.Case, error) {
	return s.list(ctx, `SELECT `+caseColumns+` FROM cases WHERE prisoner_id = $1 ORDER BY created_at ASC, id ASC`, prisonerID.String())
}

// AssignLawyer is a single conditional update; a zero row count is resolved
// into not-found or conflict with a follow-up existence check.
func (s *PostgresStore) AssignLawyer(ctx context.Context, caseID id.CaseID, lawyerID id.LawyerID, now time.Time) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE cases SET assigned_lawyer_id = $2, updated_at = $3
		WHERE id = $1 AND (assigned_lawyer_id IS NULL OR assigned_lawyer_id = $2)`,
		caseID.String(), lawyerID.String(), now,
	)
	if err != nil {
		return fmt.Errorf("assign case: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("assign case: %w", err)
	}
	if n > 0 {
		return nil
	}

	var exists bool
	if err := s.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM cases WHERE id = $1)`, caseID.String()).Scan(&exists); err != nil {
		return fmt.Errorf("assign case: %w", err)
	}
	if !exists {
		return sentinel.ErrNotFound
	}
	return sentinel.ErrConflict
}

func (s *PostgresStore) AssignUnassigned(ctx context.Context, prisonerID id.PrisonerID, lawyerID id.LawyerID, now time.Time) ([]id.CaseID, error) {
	rows, err := s.db.QueryContext(ctx, `
		UPDATE cases SET assigned_lawyer_id = $2, updated_at = $3
		WHERE prisoner_id = $1 AND assigned_lawyer_id IS NULL
		RETURNING id`,
		prisonerID.String(), lawyerID.String(), now,
	)
	if err != nil {
		return nil, fmt.Errorf("assign unassigned cases: %w", err)
	}
	defer rows.Close()

	var changed []id.CaseID
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("assign unassigned cases: %w", err)
		}
		caseID, err := id.ParseCaseID(raw)
		if err != nil {
			return nil, fmt.Errorf("assign unassigned cases: %w", err)
		}
		changed = append(changed, caseID)
	}
	return changed, rows.Err()
}

func (s *PostgresStore) list(ctx context.Context, query string, arg string) ([]*models.Case, error) {
	rows, err := s.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("list cases: %w", err)
	}
	defer rows.Close()

	var out []*models.Case
	for rows.Next() {
		c, err := scanCase(rows)
		if err != nil {
			return nil, fmt.Errorf("list cases: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list cases: %w", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCase(row scanner) (*models.Case, error) {
	var (
		c                  models.Case
		rawID, rawPrisoner string
		status             string
		assigned           sql.NullString
	)
	if err := row.Scan(&rawID, &c.Title, &status, &rawPrisoner, &assigned, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	caseID, err := id.ParseCaseID(rawID)
	if err != nil {
		return nil, err
	}
	prisonerID, err := id.ParsePrisonerID(rawPrisoner)
	if err != nil {
		return nil, err
	}
	c.ID, c.PrisonerID, c.Status = caseID, prisonerID, models.Status(status)
	if assigned.Valid {
		lawyerID, err := id.ParseLawyerID(assigned.String)
		if err != nil {
			return nil, err
		}
		c.AssignedLawyerID = &lawyerID
	}
	return &c, nil
}
