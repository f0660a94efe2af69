package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"counsel/internal/audit"
)

// Store appends events to the audit_events table.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Append(ctx context.Context, e audit.Event) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO audit_events (action, actor_id, subject, prisoner_id, lawyer_id, decision, reason, request_id, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		e.Action, e.ActorID, e.Subject, e.PrisonerID, e.LawyerID, e.Decision, e.Reason, e.RequestID, e.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

func (s *Store) ListBySubject(ctx context.Context, subject string) ([]audit.Event, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT action, actor_id, subject, prisoner_id, lawyer_id, decision, reason, request_id, occurred_at
		FROM audit_events WHERE subject = $1
		ORDER BY occurred_at ASC, id ASC`, subject)
	if err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}
	defer rows.Close()

	var out []audit.Event
	for rows.Next() {
		var e audit.Event
		if err := rows.Scan(&e.Action, &e.ActorID, &e.Subject, &e.PrisonerID, &e.LawyerID,
			&e.Decision, &e.Reason, &e.RequestID, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
