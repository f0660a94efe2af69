package ports

import (
	"context"

	"counsel/internal/audit"
)

// AuditPort matches audit.Publisher.Emit.
type AuditPort interface {
	Emit(ctx context.Context, event audit.Event) error
}
