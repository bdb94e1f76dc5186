package ports

import (
	"context"
	"time"

	"github.com/Masterbarreto/Api-Urna/contexts/election-operations/results-service/domain/entities"
)

// VoteKindCounts splits the ledger of one election by vote kind.
type VoteKindCounts struct {
	Candidate int64
	Null      int64
	Blank     int64
}

func (c VoteKindCounts) Total() int64 { return c.Candidate + c.Null + c.Blank }

// ResultsReader is the read-only view over elections, the roster and the
// vote ledger that results are computed from.
type ResultsReader interface {
	GetElection(ctx context.Context, electionID string) (entities.ElectionSummary, error)
	ListElections(ctx context.Context) ([]entities.ElectionSummary, error)
	// TallyByCandidate returns one row per candidate of the election,
	// including candidates with zero votes, unordered.
	TallyByCandidate(ctx context.Context, electionID string) ([]entities.CandidateTally, error)
	CountVotesByKind(ctx context.Context, electionID string) (VoteKindCounts, error)
	CountEligibleVoters(ctx context.Context, electionID string) (int64, error)
	CountVotedVoters(ctx context.Context, electionID string) (int64, error)
}

// FleetReader exposes the booth fleet status for the dashboard. The booth
// module satisfies it.
type FleetReader interface {
	FleetStatus(ctx context.Context) (entities.FleetStatus, error)
}

type Clock interface {
	Now() time.Time
}
