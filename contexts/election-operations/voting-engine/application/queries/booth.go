package queries

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "github.com/Masterbarreto/Api-Urna/contexts/election-operations/voting-engine/application"
	"github.com/Masterbarreto/Api-Urna/contexts/election-operations/voting-engine/domain/entities"
	domainerrors "github.com/Masterbarreto/Api-Urna/contexts/election-operations/voting-engine/domain/errors"
	"github.com/Masterbarreto/Api-Urna/contexts/election-operations/voting-engine/ports"
)

// VoterValidation is what the booth shows on the identification screen.
type VoterValidation struct {
	VoterName     string
	Registration  string
	ElectionID    string
	ElectionTitle string
}

// BoothUseCase serves the two booth read paths: voter validation before the
// ballot screen, and the candidate list for an election.
type BoothUseCase struct {
	Elections  ports.ElectionReader
	Voters     ports.VoterReader
	Candidates ports.CandidateReader
	Clock      ports.Clock
	Logger     *slog.Logger
}

// ValidateVoter checks that the voter exists, the election is open now and
// the voter has not voted yet. electionID may be empty; the active election
// is used then.
func (uc BoothUseCase) ValidateVoter(ctx context.Context, electionID string, registration string) (VoterValidation, error) {
	logger := application.ResolveLogger(uc.Logger)
	registration = strings.TrimSpace(registration)
	if registration == "" {
		return VoterValidation{}, domainerrors.ErrInvalidBallot
	}

	election, err := uc.resolveElection(ctx, electionID)
	if err != nil {
		return VoterValidation{}, err
	}
	voter, err := uc.Voters.GetVoterByRegistration(ctx, election.ID, registration)
	if err != nil {
		logger.Warn("voter validation failed, unknown registration",
			"event", "voting_validate_voter_not_found",
			"module", "election-operations/voting-engine",
			"layer", "application",
			"election_id", election.ID,
			"registration", registration,
		)
		return VoterValidation{}, err
	}
	if !election.IsOpen(uc.now()) {
		return VoterValidation{}, domainerrors.ErrElectionNotOpen
	}
	if voter.HasVoted {
		logger.Warn("voter validation failed, duplicate attempt",
			"event", "voting_validate_voter_duplicate",
			"module", "election-operations/voting-engine",
			"layer", "application",
			"election_id", election.ID,
			"registration", registration,
		)
		return VoterValidation{}, domainerrors.ErrAlreadyVoted
	}
	return VoterValidation{
		VoterName:     voter.Name,
		Registration:  voter.Registration,
		ElectionID:    election.ID,
		ElectionTitle: election.Title,
	}, nil
}

// ListBallotOptions returns the candidates of the given election, ordered by
// number. electionID may be empty; the active election is used then.
func (uc BoothUseCase) ListBallotOptions(ctx context.Context, electionID string) ([]entities.Candidate, error) {
	election, err := uc.resolveElection(ctx, electionID)
	if err != nil {
		return nil, err
	}
	return uc.Candidates.ListCandidates(ctx, election.ID)
}

func (uc BoothUseCase) resolveElection(ctx context.Context, electionID string) (entities.Election, error) {
	electionID = strings.TrimSpace(electionID)
	if electionID != "" {
		return uc.Elections.GetElection(ctx, electionID)
	}
	election, found, err := uc.Elections.GetActiveElection(ctx)
	if err != nil {
		return entities.Election{}, err
	}
	if !found {
		return entities.Election{}, domainerrors.ErrNoActiveElection
	}
	return election, nil
}

func (uc BoothUseCase) now() time.Time {
	if uc.Clock != nil {
		return uc.Clock.Now().UTC()
	}
	return time.Now().UTC()
}
