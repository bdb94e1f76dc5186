package ports

import (
	"context"
	"time"

	"github.com/Masterbarreto/Api-Urna/contexts/election-operations/voting-engine/domain/entities"
)

type ElectionReader interface {
	GetElection(ctx context.Context, electionID string) (entities.Election, error)
	GetActiveElection(ctx context.Context) (entities.Election, bool, error)
}

type VoterReader interface {
	GetVoterByRegistration(ctx context.Context, electionID string, registration string) (entities.Voter, error)
}

type CandidateReader interface {
	GetCandidate(ctx context.Context, electionID string, candidateID string) (entities.Candidate, error)
	ListCandidates(ctx context.Context, electionID string) ([]entities.Candidate, error)
}

// VoteLedger is the transactional write capability of the module. CastVote
// must re-check every precondition inside the same atomic unit that appends
// the vote and flips the voter flag, and roll the whole unit back on any
// failure. Implementations return the module's domain errors for precondition
// failures and plain errors for storage faults.
type VoteLedger interface {
	CastVote(ctx context.Context, vote entities.Vote) error
}

// VoteCastEvent is the outbound fan-out payload emitted after a committed
// vote. It carries no voter identity.
type VoteCastEvent struct {
	ElectionID string
	Kind       entities.VoteKind
	CastAt     time.Time
}

// Notifier delivers vote events to realtime observers, best effort. A failed
// or slow delivery never affects the vote outcome.
type Notifier interface {
	PublishVoteCast(ctx context.Context, event VoteCastEvent) error
}

// Auditor records administrative/audit trail entries, best effort.
type Auditor interface {
	Record(ctx context.Context, action string, table string, recordID string, data map[string]any) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
