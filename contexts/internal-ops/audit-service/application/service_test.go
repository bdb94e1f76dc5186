package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Masterbarreto/Api-Urna/contexts/internal-ops/audit-service/adapters/memory"
	"github.com/Masterbarreto/Api-Urna/contexts/internal-ops/audit-service/domain/entities"
	domainerrors "github.com/Masterbarreto/Api-Urna/contexts/internal-ops/audit-service/domain/errors"
)

func newTestService(t *testing.T) (Service, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	store.SetNow(time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC))
	return Service{
		Log:   store,
		Clock: store,
		IDGen: store,
	}, store
}

func TestRecordCarriesRequestMeta(t *testing.T) {
	service, _ := newTestService(t)

	ctx := WithMeta(context.Background(), Meta{
		UserID:    "user-1",
		IPAddress: "10.0.0.1",
		UserAgent: "urna-client/1.0",
	})
	if err := service.Record(ctx, "CRIACAO_ELEICAO", "eleicoes", "e1", map[string]any{"titulo": "X"}); err != nil {
		t.Fatalf("Record: %v", err)
	}

	page, err := service.ListEntries(context.Background(), entities.Filter{}, 1, 10)
	if err != nil {
		t.Fatalf("ListEntries: %v", err)
	}
	if len(page.Items) != 1 {
		t.Fatalf("entries = %d, want 1", len(page.Items))
	}
	entry := page.Items[0]
	if entry.UserID != "user-1" || entry.IPAddress != "10.0.0.1" || entry.UserAgent != "urna-client/1.0" {
		t.Fatalf("entry meta = %+v", entry)
	}
	if entry.Data["titulo"] != "X" {
		t.Fatalf("entry data = %+v", entry.Data)
	}
}

func TestRecordRejectsEmptyAction(t *testing.T) {
	service, _ := newTestService(t)

	err := service.Record(context.Background(), "  ", "eleicoes", "e1", nil)
	if !errors.Is(err, domainerrors.ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}

func TestListEntriesFiltersByAction(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := service.Record(ctx, "LOGIN", "usuarios", "u1", nil); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}
	if err := service.Record(ctx, "LOGOUT", "usuarios", "u1", nil); err != nil {
		t.Fatalf("Record: %v", err)
	}

	page, err := service.ListEntries(ctx, entities.Filter{Action: "LOGIN"}, 1, 10)
	if err != nil {
		t.Fatalf("ListEntries: %v", err)
	}
	if page.Total != 3 {
		t.Fatalf("total = %d, want 3", page.Total)
	}
}

func TestStatsCountsByAction(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	actions := []string{"LOGIN", "LOGIN", "CRIACAO_ELEICAO"}
	for _, action := range actions {
		if err := service.Record(ctx, action, "", "", nil); err != nil {
			t.Fatalf("Record %s: %v", action, err)
		}
	}

	counts, err := service.Stats(ctx, entities.Filter{})
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if len(counts) != 2 {
		t.Fatalf("actions = %d, want 2", len(counts))
	}
	if counts[0].Action != "LOGIN" || counts[0].Count != 2 {
		t.Fatalf("top action = %+v, want LOGIN with 2", counts[0])
	}
}

func TestGetEntryNotFound(t *testing.T) {
	service, _ := newTestService(t)

	_, err := service.GetEntry(context.Background(), "nope")
	if !errors.Is(err, domainerrors.ErrEntryNotFound) {
		t.Fatalf("err = %v, want ErrEntryNotFound", err)
	}
}
