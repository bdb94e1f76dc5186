package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/Masterbarreto/Api-Urna/contexts/election-operations/results-service/domain/entities"
	domainerrors "github.com/Masterbarreto/Api-Urna/contexts/election-operations/results-service/domain/errors"
	"github.com/Masterbarreto/Api-Urna/contexts/election-operations/results-service/ports"

	"gorm.io/gorm"
)

type electionRow struct {
	ID         string    `gorm:"column:id"`
	Titulo     string    `gorm:"column:titulo"`
	Status     string    `gorm:"column:status"`
	DataInicio time.Time `gorm:"column:data_inicio"`
	DataFim    time.Time `gorm:"column:data_fim"`
}

type tallyRow struct {
	CandidatoID string `gorm:"column:candidato_id"`
	Numero      int    `gorm:"column:numero"`
	Nome        string `gorm:"column:nome"`
	Partido     string `gorm:"column:partido"`
	Votos       int64  `gorm:"column:votos"`
}

type kindRow struct {
	TipoVoto string `gorm:"column:tipo_voto"`
	Total    int64  `gorm:"column:total"`
}

// Repository reads results straight from the ledger tables. It owns no
// models; the registry and voting modules define the schema.
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

func (r *Repository) GetElection(ctx context.Context, electionID string) (entities.ElectionSummary, error) {
	var row electionRow
	err := r.db.WithContext(ctx).
		Table("eleicoes").
		Where("id = ?", electionID).
		Take(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.ElectionSummary{}, domainerrors.ErrElectionNotFound
		}
		return entities.ElectionSummary{}, r.logError("results_repo_get_election_failed", err, "election_id", electionID)
	}
	return electionSummary(row), nil
}

func (r *Repository) ListElections(ctx context.Context) ([]entities.ElectionSummary, error) {
	var rows []electionRow
	if err := r.db.WithContext(ctx).
		Table("eleicoes").
		Order("data_inicio DESC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("results_repo_list_elections_failed", err)
	}
	items := make([]entities.ElectionSummary, 0, len(rows))
	for _, row := range rows {
		items = append(items, electionSummary(row))
	}
	return items, nil
}

func (r *Repository) TallyByCandidate(ctx context.Context, electionID string) ([]entities.CandidateTally, error) {
	var rows []tallyRow
	err := r.db.WithContext(ctx).
		Table("candidatos").
		Select("candidatos.id AS candidato_id, candidatos.numero, candidatos.nome, candidatos.partido, COUNT(votos.id) AS votos").
		Joins("LEFT JOIN votos ON votos.candidato_id = candidatos.id").
		Where("candidatos.eleicao_id = ?", electionID).
		Group("candidatos.id, candidatos.numero, candidatos.nome, candidatos.partido").
		Find(&rows).
		Error
	if err != nil {
		return nil, r.logError("results_repo_tally_failed", err, "election_id", electionID)
	}
	items := make([]entities.CandidateTally, 0, len(rows))
	for _, row := range rows {
		items = append(items, entities.CandidateTally{
			CandidateID: row.CandidatoID,
			Number:      row.Numero,
			Name:        row.Nome,
			Party:       row.Partido,
			Votes:       row.Votos,
		})
	}
	return items, nil
}

func (r *Repository) CountVotesByKind(ctx context.Context, electionID string) (ports.VoteKindCounts, error) {
	var rows []kindRow
	err := r.db.WithContext(ctx).
		Table("votos").
		Select("tipo_voto, COUNT(*) AS total").
		Where("eleicao_id = ?", electionID).
		Group("tipo_voto").
		Find(&rows).
		Error
	if err != nil {
		return ports.VoteKindCounts{}, r.logError("results_repo_count_kinds_failed", err, "election_id", electionID)
	}
	var counts ports.VoteKindCounts
	for _, row := range rows {
		switch row.TipoVoto {
		case "candidato":
			counts.Candidate = row.Total
		case "nulo":
			counts.Null = row.Total
		case "branco":
			counts.Blank = row.Total
		}
	}
	return counts, nil
}

func (r *Repository) CountEligibleVoters(ctx context.Context, electionID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("eleitores").
		Where("eleicao_id = ?", electionID).
		Count(&count).
		Error
	if err != nil {
		return 0, r.logError("results_repo_count_eligible_failed", err, "election_id", electionID)
	}
	return count, nil
}

func (r *Repository) CountVotedVoters(ctx context.Context, electionID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("eleitores").
		Where("eleicao_id = ?", electionID).
		Where("ja_votou = ?", true).
		Count(&count).
		Error
	if err != nil {
		return 0, r.logError("results_repo_count_voted_failed", err, "election_id", electionID)
	}
	return count, nil
}

func (r *Repository) logError(event string, err error, args ...any) error {
	fields := append([]any{
		"event", event,
		"module", "election-operations/results-service",
		"layer", "adapter/postgres",
		"error", err.Error(),
	}, args...)
	r.logger.Error("results repository operation failed", fields...)
	return err
}

func electionSummary(row electionRow) entities.ElectionSummary {
	return entities.ElectionSummary{
		ID:       row.ID,
		Title:    row.Titulo,
		Status:   row.Status,
		StartsAt: row.DataInicio,
		EndsAt:   row.DataFim,
	}
}

// SystemClock satisfies ports.Clock with wall-clock time.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }
