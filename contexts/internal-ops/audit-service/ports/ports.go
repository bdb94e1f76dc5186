package ports

import (
	"context"
	"time"

	"github.com/Masterbarreto/Api-Urna/contexts/internal-ops/audit-service/domain/entities"
)

// AuditLog is append-only; entries are never updated or deleted.
type AuditLog interface {
	Append(ctx context.Context, entry entities.Entry) error
	GetEntry(ctx context.Context, entryID string) (entities.Entry, error)
	ListEntries(ctx context.Context, filter entities.Filter, page, limit int) (entities.Page, error)
	CountByAction(ctx context.Context, filter entities.Filter) ([]entities.ActionCount, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
