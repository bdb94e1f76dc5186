package ports

import (
	"context"
	"time"

	"github.com/Masterbarreto/Api-Urna/contexts/election-operations/booth-service/domain/entities"
)

type BoothRepository interface {
	SaveBooth(ctx context.Context, booth entities.Booth) error
	GetBooth(ctx context.Context, boothID string) (entities.Booth, error)
	GetBoothByNumber(ctx context.Context, number int) (entities.Booth, error)
	ListBooths(ctx context.Context) ([]entities.Booth, error)
	DeleteBooth(ctx context.Context, boothID string) error
	// TouchPing records a heartbeat without rewriting the whole row.
	TouchPing(ctx context.Context, boothID string, at time.Time, ip string) error
	// UpdateConnection caches the derived state for dashboard reads.
	UpdateConnection(ctx context.Context, boothID string, state entities.ConnectionState, at time.Time) error
}

type Auditor interface {
	Record(ctx context.Context, action string, table string, recordID string, data map[string]any) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
