package ports

import (
	"context"

	"github.com/storekit/storefront-api/internal/core/domain"
)

// AuditRecorder accepts authentication audit events for asynchronous
// persistence. Record must not block the auth flow; events may be dropped
// under sustained backpressure.
type AuditRecorder interface {
	Record(event domain.AuditEvent)
}

// AuditRepository appends audit events to durable storage.
type AuditRepository interface {
	Append(ctx context.Context, event *domain.AuditEvent) error
}
