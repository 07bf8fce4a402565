package ports

import (
	"context"

	"github.com/gazette-dev/gazette/internal/core/domain"
)

// AuditRepository persists audit events.
type AuditRepository interface {
	InsertEvent(ctx context.Context, event *domain.AuditEvent) error
}

// AuditRecorder accepts audit events without blocking the caller on storage.
type AuditRecorder interface {
	Record(event domain.AuditEvent)
}
