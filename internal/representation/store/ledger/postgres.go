package ledger

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/lib/pq"

	"counsel/internal/representation/models"
	id "counsel/pkg/domain"
	"counsel/pkg/platform/sentinel"
)

const uniqueViolation = "23505"

type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const applicationColumns = `id, prisoner_id, lawyer_id, case_id, status, created_at, decided_at`

// Create relies on applications_pending_pair_uidx: a second pending row for
// the pair is skipped by ON CONFLICT and reported as sentinel.ErrConflict.
func (s *PostgresStore) Create(ctx context.Context, app *models.Application) error {
	var caseID sql.NullString
	if app.CaseID != nil {
		caseID = sql.NullString{String: app.CaseID.String(), Valid: true}
	}
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO applications (`+applicationColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, NULL)
		ON CONFLICT (prisoner_id, lawyer_id) WHERE status = 'pending' DO NOTHING`,
		app.ID.String(), app.PrisonerID.String(), app.LawyerID.String(), caseID, string(app.Status), app.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return sentinel.ErrConflict
		}
		return classify("create application", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return classify("create application", err)
	}
	if n == 0 {
		return sentinel.ErrConflict
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, applicationID id.ApplicationID) (*models.Application, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+applicationColumns+` FROM applications WHERE id = $1`, applicationID.String())
	app, err := scanApplication(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, classify("find application", err)
	}
	return app, nil
}

func (s *PostgresStore) ListPendingByLawyer(ctx context.Context, lawyerID id.LawyerID) ([]*models.Application, error) {
	return s.list(ctx, `
		SELECT `+applicationColumns+` FROM applications
		WHERE lawyer_id = $1 AND status = 'pending'
		ORDER BY created_at ASC, id ASC`, lawyerID.String())
}

func (s *PostgresStore) ListByPrisoner(ctx context.Context, prisonerID id.PrisonerID) ([]*models.Application, error) {
	return s.list(ctx, `
		SELECT `+applicationColumns+` FROM applications
		WHERE prisoner_id = $1
		ORDER BY created_at ASC, id ASC`, prisonerID.String())
}

// Finalize is a conditional update on status = 'pending'. When no row
// matches, an existence check tells a terminal application from a missing one.
func (s *PostgresStore) Finalize(ctx context.Context, applicationID id.ApplicationID, target models.Status, decidedAt time.Time) (*models.Application, error) {
	row := s.db.QueryRowContext(ctx, `
		UPDATE applications SET status = $2, decided_at = $3
		WHERE id = $1 AND status = 'pending'
		RETURNING `+applicationColumns,
		applicationID.String(), string(target), decidedAt,
	)
	app, err := scanApplication(row)
	if err == nil {
		return app, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, classify("finalize application", err)
	}

	var exists bool
	if err := s.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM applications WHERE id = $1)`, applicationID.String()).Scan(&exists); err != nil {
		return nil, classify("finalize application", err)
	}
	if !exists {
		return nil, sentinel.ErrNotFound
	}
	return nil, sentinel.ErrInvalidState
}

func (s *PostgresStore) list(ctx context.Context, query string, arg string) ([]*models.Application, error) {
	rows, err := s.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, classify("list applications", err)
	}
	defer rows.Close()

	var out []*models.Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("list applications: %w", err)
		}
		out = append(out, app)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("list applications", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanApplication(row scanner) (*models.Application, error) {
	var (
		app                           models.Application
		rawID, rawPrisoner, rawLawyer string
		rawCase                       sql.NullString
		status                        string
		decidedAt                     sql.NullTime
	)
	if err := row.Scan(&rawID, &rawPrisoner, &rawLawyer, &rawCase, &status, &app.CreatedAt, &decidedAt); err != nil {
		return nil, err
	}
	var err error
	if app.ID, err = id.ParseApplicationID(rawID); err != nil {
		return nil, err
	}
	if app.PrisonerID, err = id.ParsePrisonerID(rawPrisoner); err != nil {
		return nil, err
	}
	if app.LawyerID, err = id.ParseLawyerID(rawLawyer); err != nil {
		return nil, err
	}
	if rawCase.Valid {
		caseID, err := id.ParseCaseID(rawCase.String)
		if err != nil {
			return nil, err
		}
		app.CaseID = &caseID
	}
	app.Status = models.Status(status)
	app.CreatedAt = app.CreatedAt.UTC()
	if decidedAt.Valid {
		decided := decidedAt.Time.UTC()
		app.DecidedAt = &decided
	}
	return &app, nil
}

// classify marks connection-level failures as sentinel.ErrUnavailable so the
// service reports them as such rather than as internal errors.
func classify(op string, err error) error {
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) || isConnErr(err) {
		return fmt.Errorf("%s: %w: %w", op, sentinel.ErrUnavailable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// isConnErr reports network failures other than context deadlines.
func isConnErr(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
