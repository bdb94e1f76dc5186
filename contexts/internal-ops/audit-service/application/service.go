package application

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/Masterbarreto/Api-Urna/contexts/internal-ops/audit-service/domain/entities"
	domainerrors "github.com/Masterbarreto/Api-Urna/contexts/internal-ops/audit-service/domain/errors"
	"github.com/Masterbarreto/Api-Urna/contexts/internal-ops/audit-service/ports"
)

type metaKey struct{}

// Meta is the request context other modules do not know about: who acted and
// from where. The HTTP layer attaches it; the Recorder picks it up.
type Meta struct {
	UserID    string
	IPAddress string
	UserAgent string
}

func WithMeta(ctx context.Context, meta Meta) context.Context {
	return context.WithValue(ctx, metaKey{}, meta)
}

func MetaFrom(ctx context.Context) Meta {
	meta, _ := ctx.Value(metaKey{}).(Meta)
	return meta
}

type Service struct {
	Log    ports.AuditLog
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

// Record appends one audit entry, enriching it with the request meta carried
// in ctx.
func (s Service) Record(ctx context.Context, action, table, recordID string, data map[string]any) error {
	action = strings.TrimSpace(action)
	if action == "" {
		return domainerrors.ErrInvalidInput
	}
	id, err := s.IDGen.NewID(ctx)
	if err != nil {
		return err
	}
	meta := MetaFrom(ctx)
	entry := entities.Entry{
		ID:        id,
		UserID:    meta.UserID,
		Action:    action,
		Table:     strings.TrimSpace(table),
		RecordID:  strings.TrimSpace(recordID),
		Data:      data,
		IPAddress: meta.IPAddress,
		UserAgent: meta.UserAgent,
		CreatedAt: s.now(),
	}
	return s.Log.Append(ctx, entry)
}

func (s Service) GetEntry(ctx context.Context, entryID string) (entities.Entry, error) {
	return s.Log.GetEntry(ctx, strings.TrimSpace(entryID))
}

func (s Service) ListEntries(
	ctx context.Context,
	filter entities.Filter,
	page, limit int,
) (entities.Page, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 200 {
		limit = 50
	}
	return s.Log.ListEntries(ctx, filter, page, limit)
}

func (s Service) Stats(ctx context.Context, filter entities.Filter) ([]entities.ActionCount, error) {
	return s.Log.CountByAction(ctx, filter)
}

func (s Service) now() time.Time {
	if s.Clock != nil {
		return s.Clock.Now().UTC()
	}
	return time.Now().UTC()
}

// Recorder adapts Service to the Auditor port the other modules depend on.
// Failures are logged and swallowed there, never here.
type Recorder struct {
	Service Service
}

func (r Recorder) Record(ctx context.Context, action, table, recordID string, data map[string]any) error {
	return r.Service.Record(ctx, action, table, recordID, data)
}
