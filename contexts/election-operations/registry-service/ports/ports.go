package ports

import (
	"context"
	"time"

	"github.com/Masterbarreto/Api-Urna/contexts/election-operations/registry-service/domain/entities"
)

type ElectionRepository interface {
	SaveElection(ctx context.Context, election entities.Election) error
	GetElection(ctx context.Context, electionID string) (entities.Election, error)
	ListElections(ctx context.Context) ([]entities.Election, error)
	DeleteElection(ctx context.Context, electionID string) error
	CountElectionVotes(ctx context.Context, electionID string) (int64, error)
}

type CandidateRepository interface {
	SaveCandidate(ctx context.Context, candidate entities.Candidate) error
	GetCandidate(ctx context.Context, candidateID string) (entities.Candidate, error)
	ListCandidates(ctx context.Context, electionID string) ([]entities.Candidate, error)
	DeleteCandidate(ctx context.Context, candidateID string) error
	CountCandidateVotes(ctx context.Context, candidateID string) (int64, error)
	FindCandidateByNumber(ctx context.Context, electionID string, number int) (entities.Candidate, bool, error)
}

// VoterPage bounds list reads; the voter table is the largest in the system.
type VoterPage struct {
	Items []entities.Voter
	Total int64
	Page  int
	Limit int
}

type VoterRepository interface {
	SaveVoter(ctx context.Context, voter entities.Voter) error
	GetVoter(ctx context.Context, voterID string) (entities.Voter, error)
	ListVoters(ctx context.Context, electionID string, search string, page int, limit int) (VoterPage, error)
	DeleteVoter(ctx context.Context, voterID string) error
	FindVoterByRegistration(ctx context.Context, electionID string, registration string) (entities.Voter, bool, error)
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
