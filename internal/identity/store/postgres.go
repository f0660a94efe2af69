package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"counsel/internal/identity/models"
	id "counsel/pkg/domain"
	"counsel/pkg/platform/sentinel"
)

// PostgresStore reads and writes the prisoners and lawyers tables.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const lawyerColumns = `id, name, email, phone, specialization, location, experience_years, pro_bono, active, created_at`

func (s *PostgresStore) SavePrisoner(ctx context.Context, p *models.Prisoner) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO prisoners (id, name, email, phone, active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, email = EXCLUDED.email,
			phone = EXCLUDED.phone, active = EXCLUDED.active`,
		p.ID.String(), p.Name, p.Email, p.Phone, p.Active, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("save prisoner: %w", err)
	}
	return nil
}

func (s *PostgresStore) SaveLawyer(ctx context.Context, l *models.Lawyer) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO lawyers (`+lawyerColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, email = EXCLUDED.email,
			phone = EXCLUDED.phone, specialization = EXCLUDED.specialization,
			location = EXCLUDED.location, experience_years = EXCLUDED.experience_years,
			pro_bono = EXCLUDED.pro_bono, active = EXCLUDED.active`,
		l.ID.String(), l.Name, l.Email, l.Phone, l.Specialization, l.Location,
		l.ExperienceYears, l.ProBono, l.Active, l.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("save lawyer: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindPrisoner(ctx context.Context, prisonerID id.PrisonerID) (*models.Prisoner, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, email, phone, active, created_at
		FROM prisoners WHERE id = $1`, prisonerID.String())

	var (
		p     models.Prisoner
		rawID string
	)
	if err := row.Scan(&rawID, &p.Name, &p.Email, &p.Phone, &p.Active, &p.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find prisoner: %w", err)
	}
	parsed, err := id.ParsePrisonerID(rawID)
	if err != nil {
		return nil, fmt.Errorf("find prisoner: %w", err)
	}
	p.ID = parsed
	return &p, nil
}

func (s *PostgresStore) FindLawyer(ctx context.Context, lawyerID id.LawyerID) (*models.Lawyer, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+lawyerColumns+` FROM lawyers WHERE id = $1`, lawyerID.String())
	l, err := scanLawyer(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find lawyer: %w", err)
	}
	return l, nil
}

func (s *PostgresStore) ListLawyers(ctx context.Context, filter models.LawyerFilter) ([]*models.Lawyer, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+lawyerColumns+` FROM lawyers
		WHERE active AND ($1 = FALSE OR pro_bono)
		ORDER BY name ASC, id ASC`, filter.ProBonoOnly)
	if err != nil {
		return nil, fmt.Errorf("list lawyers: %w", err)
	}
	defer rows.Close()

	var out []*models.Lawyer
	for rows.Next() {
		l, err := scanLawyer(rows)
		if err != nil {
			return nil, fmt.Errorf("list lawyers: %w", err)
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list lawyers: %w", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanLawyer(row scanner) (*models.Lawyer, error) {
	var (
		l     models.Lawyer
		rawID string
	)
	if err := row.Scan(&rawID, &l.Name, &l.Email, &l.Phone, &l.Specialization, &l.Location,
		&l.ExperienceYears, &l.ProBono, &l.Active, &l.CreatedAt); err != nil {
		return nil, err
	}
	parsed, err := id.ParseLawyerID(rawID)
	if err != nil {
		return nil, err
	}
	l.ID = parsed
	return &l, nil
}
