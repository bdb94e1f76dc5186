package application

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/Masterbarreto/Api-Urna/contexts/election-operations/booth-service/domain/entities"
	domainerrors "github.com/Masterbarreto/Api-Urna/contexts/election-operations/booth-service/domain/errors"
	"github.com/Masterbarreto/Api-Urna/contexts/election-operations/booth-service/ports"
)

// Default heartbeat thresholds; config overrides them at wiring time.
const (
	DefaultOnlineWithin = 5 * time.Minute
	DefaultOfflineAfter = 15 * time.Minute
)

type Service struct {
	Booths       ports.BoothRepository
	Auditor      ports.Auditor
	Clock        ports.Clock
	IDGen        ports.IDGenerator
	OnlineWithin time.Duration
	OfflineAfter time.Duration
	Logger       *slog.Logger
}

type CreateBoothCommand struct {
	Number     int
	Location   string
	IPAddress  string
	ElectionID string
}

type UpdateBoothCommand struct {
	BoothID    string
	Location   *string
	Status     *entities.BoothStatus
	IPAddress  *string
	ElectionID *string
}

func (s Service) CreateBooth(ctx context.Context, cmd CreateBoothCommand) (entities.Booth, error) {
	if cmd.Number <= 0 || strings.TrimSpace(cmd.Location) == "" {
		return entities.Booth{}, domainerrors.ErrInvalidInput
	}
	if _, err := s.Booths.GetBoothByNumber(ctx, cmd.Number); err == nil {
		return entities.Booth{}, domainerrors.ErrDuplicateBoothNumber
	} else if !errors.Is(err, domainerrors.ErrBoothNotFound) {
		return entities.Booth{}, err
	}
	id, err := s.IDGen.NewID(ctx)
	if err != nil {
		return entities.Booth{}, err
	}
	now := s.now()
	booth := entities.Booth{
		ID:         id,
		Number:     cmd.Number,
		Location:   strings.TrimSpace(cmd.Location),
		Status:     entities.BoothStatusActive,
		IPAddress:  strings.TrimSpace(cmd.IPAddress),
		ElectionID: strings.TrimSpace(cmd.ElectionID),
		Connection: entities.ConnectionOffline,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.Booths.SaveBooth(ctx, booth); err != nil {
		return entities.Booth{}, err
	}
	s.audit(ctx, "CRIACAO_URNA", booth.ID, map[string]any{"numero": booth.Number})
	s.logger().Info("booth registered",
		"event", "booth_registered",
		"module", "election-operations/booth-service",
		"layer", "application",
		"booth_id", booth.ID,
		"numero", booth.Number,
	)
	return booth, nil
}

func (s Service) UpdateBooth(ctx context.Context, cmd UpdateBoothCommand) (entities.Booth, error) {
	booth, err := s.Booths.GetBooth(ctx, strings.TrimSpace(cmd.BoothID))
	if err != nil {
		return entities.Booth{}, err
	}
	if cmd.Location != nil {
		location := strings.TrimSpace(*cmd.Location)
		if location == "" {
			return entities.Booth{}, domainerrors.ErrInvalidInput
		}
		booth.Location = location
	}
	if cmd.Status != nil {
		if !entities.ValidBoothStatus(*cmd.Status) {
			return entities.Booth{}, domainerrors.ErrInvalidInput
		}
		booth.Status = *cmd.Status
	}
	if cmd.IPAddress != nil {
		booth.IPAddress = strings.TrimSpace(*cmd.IPAddress)
	}
	if cmd.ElectionID != nil {
		booth.ElectionID = strings.TrimSpace(*cmd.ElectionID)
	}
	now := s.now()
	booth.Connection = booth.ConnectionAt(now, s.onlineWithin(), s.offlineAfter())
	booth.UpdatedAt = now
	if err := s.Booths.SaveBooth(ctx, booth); err != nil {
		return entities.Booth{}, err
	}
	s.audit(ctx, "ATUALIZACAO_URNA", booth.ID, map[string]any{"status": string(booth.Status)})
	return booth, nil
}

func (s Service) GetBooth(ctx context.Context, boothID string) (entities.Booth, error) {
	booth, err := s.Booths.GetBooth(ctx, strings.TrimSpace(boothID))
	if err != nil {
		return entities.Booth{}, err
	}
	booth.Connection = booth.ConnectionAt(s.now(), s.onlineWithin(), s.offlineAfter())
	return booth, nil
}

func (s Service) ListBooths(ctx context.Context) ([]entities.Booth, error) {
	booths, err := s.Booths.ListBooths(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()
	for i := range booths {
		booths[i].Connection = booths[i].ConnectionAt(now, s.onlineWithin(), s.offlineAfter())
	}
	return booths, nil
}

func (s Service) DeleteBooth(ctx context.Context, boothID string) error {
	booth, err := s.Booths.GetBooth(ctx, strings.TrimSpace(boothID))
	if err != nil {
		return err
	}
	if err := s.Booths.DeleteBooth(ctx, booth.ID); err != nil {
		return err
	}
	s.audit(ctx, "EXCLUSAO_URNA", booth.ID, nil)
	return nil
}

// Ping records a heartbeat for the booth with the given number. Booths call
// it on every poll cycle, so it stays cheap: one conditional update, no audit.
func (s Service) Ping(ctx context.Context, number int, ip string) (entities.Booth, error) {
	booth, err := s.Booths.GetBoothByNumber(ctx, number)
	if err != nil {
		return entities.Booth{}, err
	}
	now := s.now()
	if err := s.Booths.TouchPing(ctx, booth.ID, now, strings.TrimSpace(ip)); err != nil {
		return entities.Booth{}, err
	}
	booth.LastPing = &now
	if ip != "" {
		booth.IPAddress = strings.TrimSpace(ip)
	}
	booth.Connection = booth.ConnectionAt(now, s.onlineWithin(), s.offlineAfter())
	return booth, nil
}

// FleetSummary aggregates derived connection states for the dashboard.
func (s Service) FleetSummary(ctx context.Context) (entities.FleetSummary, error) {
	booths, err := s.ListBooths(ctx)
	if err != nil {
		return entities.FleetSummary{}, err
	}
	summary := entities.FleetSummary{Total: len(booths)}
	for _, booth := range booths {
		switch booth.Connection {
		case entities.ConnectionOnline:
			summary.Online++
		case entities.ConnectionWarning:
			summary.Warning++
		default:
			summary.Offline++
		}
	}
	return summary, nil
}

// SweepConnections recomputes and caches the derived connection state of
// every booth, returning how many changed. The worker runs it on an interval.
func (s Service) SweepConnections(ctx context.Context) (int, error) {
	booths, err := s.Booths.ListBooths(ctx)
	if err != nil {
		return 0, err
	}
	now := s.now()
	changed := 0
	for _, booth := range booths {
		state := booth.ConnectionAt(now, s.onlineWithin(), s.offlineAfter())
		if state == booth.Connection {
			continue
		}
		if err := s.Booths.UpdateConnection(ctx, booth.ID, state, now); err != nil {
			return changed, err
		}
		changed++
	}
	return changed, nil
}

func (s Service) audit(ctx context.Context, action string, recordID string, data map[string]any) {
	if s.Auditor == nil {
		return
	}
	if err := s.Auditor.Record(ctx, action, "urnas", recordID, data); err != nil {
		s.logger().Warn("audit record failed",
			"event", "booth_audit_failed",
			"module", "election-operations/booth-service",
			"layer", "application",
			"action", action,
			"error", err.Error(),
		)
	}
}

func (s Service) onlineWithin() time.Duration {
	if s.OnlineWithin > 0 {
		return s.OnlineWithin
	}
	return DefaultOnlineWithin
}

func (s Service) offlineAfter() time.Duration {
	if s.OfflineAfter > 0 {
		return s.OfflineAfter
	}
	return DefaultOfflineAfter
}

func (s Service) now() time.Time {
	if s.Clock != nil {
		return s.Clock.Now().UTC()
	}
	return time.Now().UTC()
}

func (s Service) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.Default()
	}
	return s.Logger
}
