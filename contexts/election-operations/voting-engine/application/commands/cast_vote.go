package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	application "github.com/Masterbarreto/Api-Urna/contexts/election-operations/voting-engine/application"
	"github.com/Masterbarreto/Api-Urna/contexts/election-operations/voting-engine/domain/entities"
	domainerrors "github.com/Masterbarreto/Api-Urna/contexts/election-operations/voting-engine/domain/errors"
	"github.com/Masterbarreto/Api-Urna/contexts/election-operations/voting-engine/ports"
)

// CastVoteCommand is the write-model input for a single vote attempt.
// Selection is either a candidate id or one of the NULO/BRANCO pseudo-tokens.
type CastVoteCommand struct {
	ElectionID        string
	VoterRegistration string
	Selection         string
}

// CastVoteResult is the public receipt returned to the booth.
type CastVoteResult struct {
	VerificationHash string
	Kind             entities.VoteKind
	CastAt           time.Time
}

// CastVoteUseCase orchestrates the vote-casting transaction: resolve voter,
// validate the election window, resolve the selection, append the vote and
// flip the voter flag atomically, then notify observers best-effort.
type CastVoteUseCase struct {
	Elections  ports.ElectionReader
	Voters     ports.VoterReader
	Candidates ports.CandidateReader
	Ledger     ports.VoteLedger
	Notifier   ports.Notifier
	Auditor    ports.Auditor
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

// CastVote accepts or rejects one vote attempt. Preconditions are evaluated
// here for early rejection and again by the ledger inside the atomic unit, so
// two concurrent attempts for the same voter can never both commit. A repeat
// attempt for a voter who already voted deterministically fails with
// ErrAlreadyVoted.
func (uc CastVoteUseCase) CastVote(ctx context.Context, cmd CastVoteCommand) (CastVoteResult, error) {
	logger := application.ResolveLogger(uc.Logger)

	registration := strings.TrimSpace(cmd.VoterRegistration)
	electionID := strings.TrimSpace(cmd.ElectionID)
	selection := strings.TrimSpace(cmd.Selection)
	logger.Info("vote cast processing started",
		"event", "voting_cast_started",
		"module", "election-operations/voting-engine",
		"layer", "application",
		"election_id", electionID,
		"registration", registration,
	)
	if registration == "" || electionID == "" || selection == "" {
		logger.Warn("vote cast validation failed",
			"event", "voting_cast_validation_failed",
			"module", "election-operations/voting-engine",
			"layer", "application",
			"election_id", electionID,
			"registration", registration,
		)
		return CastVoteResult{}, domainerrors.ErrInvalidBallot
	}

	now := uc.now()

	voter, err := uc.Voters.GetVoterByRegistration(ctx, electionID, registration)
	if err != nil {
		return CastVoteResult{}, uc.asStorageError(err)
	}
	election, err := uc.Elections.GetElection(ctx, electionID)
	if err != nil {
		return CastVoteResult{}, uc.asStorageError(err)
	}
	if !election.IsOpen(now) {
		logger.Warn("vote cast rejected, election not open",
			"event", "voting_cast_election_not_open",
			"module", "election-operations/voting-engine",
			"layer", "application",
			"election_id", electionID,
			"election_status", string(election.Status),
		)
		return CastVoteResult{}, domainerrors.ErrElectionNotOpen
	}
	if voter.HasVoted {
		logger.Warn("vote cast rejected, duplicate attempt",
			"event", "voting_cast_duplicate",
			"module", "election-operations/voting-engine",
			"layer", "application",
			"election_id", electionID,
			"registration", registration,
		)
		return CastVoteResult{}, domainerrors.ErrAlreadyVoted
	}

	kind, candidateID, err := uc.resolveSelection(ctx, electionID, selection)
	if err != nil {
		return CastVoteResult{}, err
	}

	voteID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return CastVoteResult{}, uc.asStorageError(err)
	}
	verificationHash, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return CastVoteResult{}, uc.asStorageError(err)
	}

	vote := entities.Vote{
		ID:                voteID,
		ElectionID:        electionID,
		VoterID:           voter.ID,
		VoterRegistration: registration,
		CandidateID:       candidateID,
		Kind:              kind,
		VerificationHash:  verificationHash,
		CreatedAt:         now,
	}
	if err := uc.Ledger.CastVote(ctx, vote); err != nil {
		return CastVoteResult{}, uc.asStorageError(err)
	}

	uc.notify(ctx, ports.VoteCastEvent{
		ElectionID: electionID,
		Kind:       kind,
		CastAt:     now,
	})
	uc.audit(ctx, vote)

	logger.Info("vote cast committed",
		"event", "voting_cast_committed",
		"module", "election-operations/voting-engine",
		"layer", "application",
		"election_id", electionID,
		"vote_kind", string(kind),
	)
	return CastVoteResult{
		VerificationHash: verificationHash,
		Kind:             kind,
		CastAt:           now,
	}, nil
}

// resolveSelection maps the ballot selection onto the closed vote-kind set.
// The kinds are fixed at write time, never probed against the schema.
func (uc CastVoteUseCase) resolveSelection(
	ctx context.Context,
	electionID string,
	selection string,
) (entities.VoteKind, *string, error) {
	switch selection {
	case entities.SelectionNull:
		return entities.VoteKindNull, nil, nil
	case entities.SelectionBlank:
		return entities.VoteKindBlank, nil, nil
	}
	candidate, err := uc.Candidates.GetCandidate(ctx, electionID, selection)
	if err != nil {
		return "", nil, uc.asStorageError(err)
	}
	return entities.VoteKindCandidate, &candidate.ID, nil
}

func (uc CastVoteUseCase) notify(ctx context.Context, event ports.VoteCastEvent) {
	if uc.Notifier == nil {
		return
	}
	if err := uc.Notifier.PublishVoteCast(ctx, event); err != nil {
		application.ResolveLogger(uc.Logger).Warn("vote event publish failed",
			"event", "voting_cast_notify_failed",
			"module", "election-operations/voting-engine",
			"layer", "application",
			"election_id", event.ElectionID,
			"error", err.Error(),
		)
	}
}

func (uc CastVoteUseCase) audit(ctx context.Context, vote entities.Vote) {
	if uc.Auditor == nil {
		return
	}
	err := uc.Auditor.Record(ctx, "REGISTRO_VOTO", "votos", vote.ID, map[string]any{
		"eleicao_id":       vote.ElectionID,
		"tipo_voto":        string(vote.Kind),
		"hash_verificacao": vote.VerificationHash,
	})
	if err != nil {
		application.ResolveLogger(uc.Logger).Warn("vote audit record failed",
			"event", "voting_cast_audit_failed",
			"module", "election-operations/voting-engine",
			"layer", "application",
			"vote_id", vote.ID,
			"error", err.Error(),
		)
	}
}

func (uc CastVoteUseCase) now() time.Time {
	if uc.Clock != nil {
		return uc.Clock.Now().UTC()
	}
	return time.Now().UTC()
}

// asStorageError keeps the domain taxonomy intact and folds every other
// failure into ErrPersistenceUnavailable so callers can tell retryable
// storage faults from terminal rejections.
func (uc CastVoteUseCase) asStorageError(err error) error {
	switch {
	case errors.Is(err, domainerrors.ErrVoterNotFound),
		errors.Is(err, domainerrors.ErrElectionNotFound),
		errors.Is(err, domainerrors.ErrCandidateNotFound),
		errors.Is(err, domainerrors.ErrElectionNotOpen),
		errors.Is(err, domainerrors.ErrAlreadyVoted),
		errors.Is(err, domainerrors.ErrInvalidBallot):
		return err
	default:
		return fmt.Errorf("%w: %v", domainerrors.ErrPersistenceUnavailable, err)
	}
}
