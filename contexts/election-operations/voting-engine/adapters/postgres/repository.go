package postgresadapter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Masterbarreto/Api-Urna/contexts/election-operations/voting-engine/domain/entities"
	domainerrors "github.com/Masterbarreto/Api-Urna/contexts/election-operations/voting-engine/domain/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
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

func (r *Repository) GetElection(ctx context.Context, electionID string) (entities.Election, error) {
	var row electionModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(electionID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Election{}, domainerrors.ErrElectionNotFound
		}
		return entities.Election{}, r.logError("voting_repo_get_election_failed", err,
			"election_id", strings.TrimSpace(electionID),
		)
	}
	return row.toEntity(), nil
}

func (r *Repository) GetActiveElection(ctx context.Context) (entities.Election, bool, error) {
	var row electionModel
	err := r.db.WithContext(ctx).
		Where("status = ?", string(entities.ElectionStatusActive)).
		Order("data_inicio DESC").
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Election{}, false, nil
		}
		return entities.Election{}, false, r.logError("voting_repo_get_active_election_failed", err)
	}
	return row.toEntity(), true, nil
}

func (r *Repository) GetVoterByRegistration(
	ctx context.Context,
	electionID string,
	registration string,
) (entities.Voter, error) {
	var row voterModel
	err := r.db.WithContext(ctx).
		Where("eleicao_id = ?", strings.TrimSpace(electionID)).
		Where("matricula = ?", strings.TrimSpace(registration)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Voter{}, domainerrors.ErrVoterNotFound
		}
		return entities.Voter{}, r.logError("voting_repo_get_voter_failed", err,
			"election_id", strings.TrimSpace(electionID),
			"registration", strings.TrimSpace(registration),
		)
	}
	return row.toEntity(), nil
}

func (r *Repository) GetCandidate(
	ctx context.Context,
	electionID string,
	candidateID string,
) (entities.Candidate, error) {
	var row candidateModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(candidateID)).
		Where("eleicao_id = ?", strings.TrimSpace(electionID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Candidate{}, domainerrors.ErrCandidateNotFound
		}
		return entities.Candidate{}, r.logError("voting_repo_get_candidate_failed", err,
			"election_id", strings.TrimSpace(electionID),
			"candidate_id", strings.TrimSpace(candidateID),
		)
	}
	return row.toEntity(), nil
}

func (r *Repository) ListCandidates(ctx context.Context, electionID string) ([]entities.Candidate, error) {
	var rows []candidateModel
	if err := r.db.WithContext(ctx).
		Where("eleicao_id = ?", strings.TrimSpace(electionID)).
		Order("numero ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("voting_repo_list_candidates_failed", err,
			"election_id", strings.TrimSpace(electionID),
		)
	}
	items := make([]entities.Candidate, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

// CastVote appends the vote row and flips the voter flag as one transaction.
// Every precondition is re-checked inside the transaction; the conditional
// update on ja_votou and the unique (eleicao_id, eleitor_id) vote index close
// the race window between check and write, so two concurrent casts for the
// same voter can never both commit.
func (r *Repository) CastVote(ctx context.Context, vote entities.Vote) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var voter voterModel
		err := tx.Where("id = ?", vote.VoterID).First(&voter).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.ErrVoterNotFound
			}
			return fmt.Errorf("load voter: %w", err)
		}

		var election electionModel
		err = tx.Where("id = ?", vote.ElectionID).First(&election).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.ErrElectionNotFound
			}
			return fmt.Errorf("load election: %w", err)
		}
		if !election.toEntity().IsOpen(vote.CreatedAt) {
			return domainerrors.ErrElectionNotOpen
		}
		if voter.JaVotou {
			return domainerrors.ErrAlreadyVoted
		}

		if vote.CandidateID != nil {
			var candidate candidateModel
			err = tx.
				Where("id = ?", *vote.CandidateID).
				Where("eleicao_id = ?", vote.ElectionID).
				First(&candidate).Error
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return domainerrors.ErrCandidateNotFound
				}
				return fmt.Errorf("load candidate: %w", err)
			}
		}

		row := voteModelFromEntity(vote)
		if err := tx.Create(&row).Error; err != nil {
			if isUniqueViolation(err) {
				return domainerrors.ErrAlreadyVoted
			}
			return fmt.Errorf("insert vote: %w", err)
		}

		update := tx.Model(&voterModel{}).
			Where("id = ?", vote.VoterID).
			Where("ja_votou = ?", false).
			Updates(map[string]any{
				"ja_votou":     true,
				"horario_voto": vote.CreatedAt,
				"updated_at":   vote.CreatedAt,
			})
		if update.Error != nil {
			return fmt.Errorf("flag voter: %w", update.Error)
		}
		if update.RowsAffected == 0 {
			// Another transaction flipped the flag first; abort the whole unit.
			return domainerrors.ErrAlreadyVoted
		}
		return nil
	})
}

func (r *Repository) logError(event string, err error, args ...any) error {
	fields := append([]any{
		"event", event,
		"module", "election-operations/voting-engine",
		"layer", "adapter/postgres",
		"error", err.Error(),
	}, args...)
	r.logger.Error("voting repository operation failed", fields...)
	return err
}

// isUniqueViolation recognizes duplicate-key failures from postgres (23505)
// and from the sqlite engine used in tests.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// SystemClock satisfies ports.Clock with wall-clock time.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

// UUIDGenerator satisfies ports.IDGenerator with random UUIDv4 values. The
// same generator mints vote verification hashes: a random 128-bit value in
// text form.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID(_ context.Context) (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
