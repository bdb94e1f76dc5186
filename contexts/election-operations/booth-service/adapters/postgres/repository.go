package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/Masterbarreto/Api-Urna/contexts/election-operations/booth-service/domain/entities"
	domainerrors "github.com/Masterbarreto/Api-Urna/contexts/election-operations/booth-service/domain/errors"

	"github.com/google/uuid"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) SaveBooth(ctx context.Context, booth entities.Booth) error {
	row := boothModelFromEntity(booth)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(&row).
		Error
	if err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrDuplicateBoothNumber
		}
		return r.logError("booth_repo_save_failed", err, "booth_id", booth.ID)
	}
	return nil
}

func (r *Repository) GetBooth(ctx context.Context, boothID string) (entities.Booth, error) {
	var row boothModel
	err := r.db.WithContext(ctx).
		Where("id = ?", boothID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Booth{}, domainerrors.ErrBoothNotFound
		}
		return entities.Booth{}, r.logError("booth_repo_get_failed", err, "booth_id", boothID)
	}
	return row.toEntity(), nil
}

func (r *Repository) GetBoothByNumber(ctx context.Context, number int) (entities.Booth, error) {
	var row boothModel
	err := r.db.WithContext(ctx).
		Where("numero = ?", number).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Booth{}, domainerrors.ErrBoothNotFound
		}
		return entities.Booth{}, r.logError("booth_repo_get_by_number_failed", err, "numero", number)
	}
	return row.toEntity(), nil
}

func (r *Repository) ListBooths(ctx context.Context) ([]entities.Booth, error) {
	var rows []boothModel
	if err := r.db.WithContext(ctx).
		Order("numero ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("booth_repo_list_failed", err)
	}
	items := make([]entities.Booth, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) DeleteBooth(ctx context.Context, boothID string) error {
	err := r.db.WithContext(ctx).
		Where("id = ?", boothID).
		Delete(&boothModel{}).
		Error
	if err != nil {
		return r.logError("booth_repo_delete_failed", err, "booth_id", boothID)
	}
	return nil
}

func (r *Repository) TouchPing(ctx context.Context, boothID string, at time.Time, ip string) error {
	fields := map[string]any{
		"ultimo_ping": at,
		"updated_at":  at,
	}
	if ip != "" {
		fields["ip_address"] = ip
	}
	update := r.db.WithContext(ctx).
		Model(&boothModel{}).
		Where("id = ?", boothID).
		Updates(fields)
	if update.Error != nil {
		return r.logError("booth_repo_touch_ping_failed", update.Error, "booth_id", boothID)
	}
	if update.RowsAffected == 0 {
		return domainerrors.ErrBoothNotFound
	}
	return nil
}

func (r *Repository) UpdateConnection(
	ctx context.Context,
	boothID string,
	state entities.ConnectionState,
	at time.Time,
) error {
	err := r.db.WithContext(ctx).
		Model(&boothModel{}).
		Where("id = ?", boothID).
		Updates(map[string]any{
			"conexao_status": string(state),
			"updated_at":     at,
		}).
		Error
	if err != nil {
		return r.logError("booth_repo_update_connection_failed", err, "booth_id", boothID)
	}
	return nil
}

func (r *Repository) logError(event string, err error, args ...any) error {
	fields := append([]any{
		"event", event,
		"module", "election-operations/booth-service",
		"layer", "adapter/postgres",
		"error", err.Error(),
	}, args...)
	r.logger.Error("booth repository operation failed", fields...)
	return err
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "23505") || strings.Contains(msg, "UNIQUE constraint failed")
}

// SystemClock satisfies ports.Clock with wall-clock time.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

// UUIDGenerator satisfies ports.IDGenerator with random UUIDv4 values.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID(_ context.Context) (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
