package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/Masterbarreto/Api-Urna/contexts/election-operations/registry-service/domain/entities"
	domainerrors "github.com/Masterbarreto/Api-Urna/contexts/election-operations/registry-service/domain/errors"
	"github.com/Masterbarreto/Api-Urna/contexts/election-operations/registry-service/ports"

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

func (r *Repository) SaveElection(ctx context.Context, election entities.Election) error {
	row := electionModelFromEntity(election)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(&row).
		Error
	if err != nil {
		return r.logError("registry_repo_save_election_failed", err, "election_id", election.ID)
	}
	return nil
}

func (r *Repository) GetElection(ctx context.Context, electionID string) (entities.Election, error) {
	var row electionModel
	err := r.db.WithContext(ctx).
		Where("id = ?", electionID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Election{}, domainerrors.ErrElectionNotFound
		}
		return entities.Election{}, r.logError("registry_repo_get_election_failed", err, "election_id", electionID)
	}
	return row.toEntity(), nil
}

func (r *Repository) ListElections(ctx context.Context) ([]entities.Election, error) {
	var rows []electionModel
	if err := r.db.WithContext(ctx).
		Order("data_inicio DESC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("registry_repo_list_elections_failed", err)
	}
	items := make([]entities.Election, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) DeleteElection(ctx context.Context, electionID string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("eleicao_id = ?", electionID).Delete(&candidateModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("eleicao_id = ?", electionID).Delete(&voterModel{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", electionID).Delete(&electionModel{}).Error
	})
	if err != nil {
		return r.logError("registry_repo_delete_election_failed", err, "election_id", electionID)
	}
	return nil
}

func (r *Repository) CountElectionVotes(ctx context.Context, electionID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&voteRefModel{}).
		Where("eleicao_id = ?", electionID).
		Count(&count).
		Error
	if err != nil {
		return 0, r.logError("registry_repo_count_election_votes_failed", err, "election_id", electionID)
	}
	return count, nil
}

func (r *Repository) SaveCandidate(ctx context.Context, candidate entities.Candidate) error {
	row := candidateModelFromEntity(candidate)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(&row).
		Error
	if err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrDuplicateNumber
		}
		return r.logError("registry_repo_save_candidate_failed", err, "candidate_id", candidate.ID)
	}
	return nil
}

func (r *Repository) GetCandidate(ctx context.Context, candidateID string) (entities.Candidate, error) {
	var row candidateModel
	err := r.db.WithContext(ctx).
		Where("id = ?", candidateID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Candidate{}, domainerrors.ErrCandidateNotFound
		}
		return entities.Candidate{}, r.logError("registry_repo_get_candidate_failed", err, "candidate_id", candidateID)
	}
	return row.toEntity(), nil
}

func (r *Repository) ListCandidates(ctx context.Context, electionID string) ([]entities.Candidate, error) {
	var rows []candidateModel
	if err := r.db.WithContext(ctx).
		Where("eleicao_id = ?", electionID).
		Order("numero ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("registry_repo_list_candidates_failed", err, "election_id", electionID)
	}
	items := make([]entities.Candidate, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) DeleteCandidate(ctx context.Context, candidateID string) error {
	err := r.db.WithContext(ctx).
		Where("id = ?", candidateID).
		Delete(&candidateModel{}).
		Error
	if err != nil {
		return r.logError("registry_repo_delete_candidate_failed", err, "candidate_id", candidateID)
	}
	return nil
}

func (r *Repository) CountCandidateVotes(ctx context.Context, candidateID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&voteRefModel{}).
		Where("candidato_id = ?", candidateID).
		Count(&count).
		Error
	if err != nil {
		return 0, r.logError("registry_repo_count_candidate_votes_failed", err, "candidate_id", candidateID)
	}
	return count, nil
}

func (r *Repository) FindCandidateByNumber(
	ctx context.Context,
	electionID string,
	number int,
) (entities.Candidate, bool, error) {
	var row candidateModel
	err := r.db.WithContext(ctx).
		Where("eleicao_id = ?", electionID).
		Where("numero = ?", number).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Candidate{}, false, nil
		}
		return entities.Candidate{}, false, r.logError("registry_repo_find_candidate_by_number_failed", err,
			"election_id", electionID,
			"number", number,
		)
	}
	return row.toEntity(), true, nil
}

func (r *Repository) SaveVoter(ctx context.Context, voter entities.Voter) error {
	row := voterModelFromEntity(voter)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(&row).
		Error
	if err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrDuplicateRegistration
		}
		return r.logError("registry_repo_save_voter_failed", err, "voter_id", voter.ID)
	}
	return nil
}

func (r *Repository) GetVoter(ctx context.Context, voterID string) (entities.Voter, error) {
	var row voterModel
	err := r.db.WithContext(ctx).
		Where("id = ?", voterID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Voter{}, domainerrors.ErrVoterNotFound
		}
		return entities.Voter{}, r.logError("registry_repo_get_voter_failed", err, "voter_id", voterID)
	}
	return row.toEntity(), nil
}

func (r *Repository) ListVoters(
	ctx context.Context,
	electionID string,
	search string,
	page int,
	limit int,
) (ports.VoterPage, error) {
	query := r.db.WithContext(ctx).Model(&voterModel{}).Where("eleicao_id = ?", electionID)
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("nome LIKE ? OR matricula LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return ports.VoterPage{}, r.logError("registry_repo_count_voters_failed", err, "election_id", electionID)
	}

	var rows []voterModel
	if err := query.
		Order("nome ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&rows).Error; err != nil {
		return ports.VoterPage{}, r.logError("registry_repo_list_voters_failed", err, "election_id", electionID)
	}

	items := make([]entities.Voter, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return ports.VoterPage{
		Items: items,
		Total: total,
		Page:  page,
		Limit: limit,
	}, nil
}

func (r *Repository) DeleteVoter(ctx context.Context, voterID string) error {
	err := r.db.WithContext(ctx).
		Where("id = ?", voterID).
		Delete(&voterModel{}).
		Error
	if err != nil {
		return r.logError("registry_repo_delete_voter_failed", err, "voter_id", voterID)
	}
	return nil
}

func (r *Repository) FindVoterByRegistration(
	ctx context.Context,
	electionID string,
	registration string,
) (entities.Voter, bool, error) {
	var row voterModel
	err := r.db.WithContext(ctx).
		Where("eleicao_id = ?", electionID).
		Where("matricula = ?", registration).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Voter{}, false, nil
		}
		return entities.Voter{}, false, r.logError("registry_repo_find_voter_failed", err,
			"election_id", electionID,
			"registration", registration,
		)
	}
	return row.toEntity(), true, nil
}

func (r *Repository) logError(event string, err error, args ...any) error {
	fields := append([]any{
		"event", event,
		"module", "election-operations/registry-service",
		"layer", "adapter/postgres",
		"error", err.Error(),
	}, args...)
	r.logger.Error("registry repository operation failed", fields...)
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
