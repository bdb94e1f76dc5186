package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/Masterbarreto/Api-Urna/contexts/internal-ops/audit-service/domain/entities"
	domainerrors "github.com/Masterbarreto/Api-Urna/contexts/internal-ops/audit-service/domain/errors"

	"github.com/google/uuid"

	"gorm.io/gorm"
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

func (r *Repository) Append(ctx context.Context, entry entities.Entry) error {
	row, err := entryModelFromEntity(entry)
	if err != nil {
		return r.logError("audit_repo_marshal_failed", err, "entry_id", entry.ID)
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return r.logError("audit_repo_append_failed", err, "entry_id", entry.ID)
	}
	return nil
}

func (r *Repository) GetEntry(ctx context.Context, entryID string) (entities.Entry, error) {
	var row entryModel
	err := r.db.WithContext(ctx).
		Where("id = ?", entryID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Entry{}, domainerrors.ErrEntryNotFound
		}
		return entities.Entry{}, r.logError("audit_repo_get_failed", err, "entry_id", entryID)
	}
	return row.toEntity(), nil
}

func (r *Repository) ListEntries(
	ctx context.Context,
	filter entities.Filter,
	page, limit int,
) (entities.Page, error) {
	query := r.filtered(ctx, filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return entities.Page{}, r.logError("audit_repo_count_failed", err)
	}

	var rows []entryModel
	if err := query.
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&rows).Error; err != nil {
		return entities.Page{}, r.logError("audit_repo_list_failed", err)
	}

	items := make([]entities.Entry, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return entities.Page{
		Items: items,
		Total: total,
		Page:  page,
		Limit: limit,
	}, nil
}

func (r *Repository) CountByAction(ctx context.Context, filter entities.Filter) ([]entities.ActionCount, error) {
	type countRow struct {
		Acao  string `gorm:"column:acao"`
		Total int64  `gorm:"column:total"`
	}
	var rows []countRow
	err := r.filtered(ctx, filter).
		Select("acao, COUNT(*) AS total").
		Group("acao").
		Order("total DESC").
		Find(&rows).
		Error
	if err != nil {
		return nil, r.logError("audit_repo_stats_failed", err)
	}
	items := make([]entities.ActionCount, 0, len(rows))
	for _, row := range rows {
		items = append(items, entities.ActionCount{Action: row.Acao, Count: row.Total})
	}
	return items, nil
}

func (r *Repository) filtered(ctx context.Context, filter entities.Filter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&entryModel{})
	if filter.UserID != "" {
		query = query.Where("usuario_id = ?", filter.UserID)
	}
	if filter.Action != "" {
		query = query.Where("acao = ?", filter.Action)
	}
	if filter.Table != "" {
		query = query.Where("tabela_afetada = ?", filter.Table)
	}
	if filter.Since != nil {
		query = query.Where("created_at >= ?", *filter.Since)
	}
	if filter.Until != nil {
		query = query.Where("created_at <= ?", *filter.Until)
	}
	return query
}

func (r *Repository) logError(event string, err error, args ...any) error {
	fields := append([]any{
		"event", event,
		"module", "internal-ops/audit-service",
		"layer", "adapter/postgres",
		"error", err.Error(),
	}, args...)
	r.logger.Error("audit repository operation failed", fields...)
	return err
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
