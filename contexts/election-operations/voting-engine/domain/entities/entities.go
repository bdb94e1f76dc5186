package entities

import "time"

type ElectionStatus string

const (
	ElectionStatusCreated   ElectionStatus = "criada"
	ElectionStatusActive    ElectionStatus = "ativa"
	ElectionStatusFinished  ElectionStatus = "finalizada"
	ElectionStatusCancelled ElectionStatus = "cancelada"
)

type Election struct {
	ID          string
	Title       string
	Description string
	StartsAt    time.Time
	EndsAt      time.Time
	Status      ElectionStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsOpen reports whether the election accepts ballots at instant now.
// Status alone cannot express "paused outside hours", so both the status and
// the [StartsAt, EndsAt] window are enforced. Boundaries are inclusive.
func (e Election) IsOpen(now time.Time) bool {
	if e.Status != ElectionStatusActive {
		return false
	}
	return !now.Before(e.StartsAt) && !now.After(e.EndsAt)
}

type Candidate struct {
	ID         string
	ElectionID string
	Number     int
	Name       string
	Party      string
	PhotoURL   string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type Voter struct {
	ID           string
	ElectionID   string
	Registration string
	Name         string
	HasVoted     bool
	VotedAt      *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CanVote reports whether voter may cast a ballot in election at instant now.
// Pure; callers re-evaluate it inside the storage transaction as well.
func CanVote(voter Voter, election Election, now time.Time) bool {
	return election.IsOpen(now) && !voter.HasVoted
}

type VoteKind string

const (
	VoteKindCandidate VoteKind = "candidato"
	VoteKindNull      VoteKind = "nulo"
	VoteKindBlank     VoteKind = "branco"
)

// Ballot pseudo-selections. They stand in for invalid/blank ballots without
// referencing a candidate record.
const (
	SelectionNull  = "NULO"
	SelectionBlank = "BRANCO"
)

// Vote is an append-only record of one cast ballot. CandidateID is nil iff
// Kind is not VoteKindCandidate.
type Vote struct {
	ID                string
	ElectionID        string
	VoterID           string
	VoterRegistration string
	CandidateID       *string
	Kind              VoteKind
	VerificationHash  string
	CreatedAt         time.Time
}
