package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Masterbarreto/Api-Urna/contexts/election-operations/voting-engine/domain/entities"
	domainerrors "github.com/Masterbarreto/Api-Urna/contexts/election-operations/voting-engine/domain/errors"

	"github.com/google/uuid"
)

// Store is the in-memory implementation of the voting-engine ports, used for
// module tests and local wiring. CastVote holds the write lock for the whole
// check-and-write sequence, which gives the same atomicity the postgres
// adapter gets from its transaction.
type Store struct {
	mu sync.RWMutex

	elections  map[string]entities.Election
	candidates map[string]entities.Candidate
	voters     map[string]entities.Voter
	votes      map[string]entities.Vote

	now *time.Time
}

func NewStore() *Store {
	return &Store{
		elections:  make(map[string]entities.Election),
		candidates: make(map[string]entities.Candidate),
		voters:     make(map[string]entities.Voter),
		votes:      make(map[string]entities.Vote),
	}
}

func (s *Store) SetElection(election entities.Election) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.elections[strings.TrimSpace(election.ID)] = election
}

func (s *Store) SetCandidate(candidate entities.Candidate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.candidates[strings.TrimSpace(candidate.ID)] = candidate
}

func (s *Store) SetVoter(voter entities.Voter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.voters[strings.TrimSpace(voter.ID)] = voter
}

// SetNow pins the store clock for deterministic window tests.
func (s *Store) SetNow(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fixed := now.UTC()
	s.now = &fixed
}

func (s *Store) GetElection(_ context.Context, electionID string) (entities.Election, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	election, ok := s.elections[strings.TrimSpace(electionID)]
	if !ok {
		return entities.Election{}, domainerrors.ErrElectionNotFound
	}
	return election, nil
}

func (s *Store) GetActiveElection(_ context.Context) (entities.Election, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var latest entities.Election
	found := false
	for _, election := range s.elections {
		if election.Status != entities.ElectionStatusActive {
			continue
		}
		if !found || election.StartsAt.After(latest.StartsAt) {
			latest = election
			found = true
		}
	}
	return latest, found, nil
}

func (s *Store) GetVoterByRegistration(
	_ context.Context,
	electionID string,
	registration string,
) (entities.Voter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, voter := range s.voters {
		if voter.ElectionID == strings.TrimSpace(electionID) &&
			voter.Registration == strings.TrimSpace(registration) {
			return voter, nil
		}
	}
	return entities.Voter{}, domainerrors.ErrVoterNotFound
}

func (s *Store) GetCandidate(
	_ context.Context,
	electionID string,
	candidateID string,
) (entities.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	candidate, ok := s.candidates[strings.TrimSpace(candidateID)]
	if !ok || candidate.ElectionID != strings.TrimSpace(electionID) {
		return entities.Candidate{}, domainerrors.ErrCandidateNotFound
	}
	return candidate, nil
}

func (s *Store) ListCandidates(_ context.Context, electionID string) ([]entities.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.Candidate, 0)
	for _, candidate := range s.candidates {
		if candidate.ElectionID == strings.TrimSpace(electionID) {
			items = append(items, candidate)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Number < items[j].Number })
	return items, nil
}

func (s *Store) CastVote(_ context.Context, vote entities.Vote) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	voter, ok := s.voters[vote.VoterID]
	if !ok {
		return domainerrors.ErrVoterNotFound
	}
	election, ok := s.elections[vote.ElectionID]
	if !ok {
		return domainerrors.ErrElectionNotFound
	}
	if !election.IsOpen(vote.CreatedAt) {
		return domainerrors.ErrElectionNotOpen
	}
	if voter.HasVoted {
		return domainerrors.ErrAlreadyVoted
	}
	if vote.CandidateID != nil {
		candidate, ok := s.candidates[*vote.CandidateID]
		if !ok || candidate.ElectionID != vote.ElectionID {
			return domainerrors.ErrCandidateNotFound
		}
	}
	for _, existing := range s.votes {
		if existing.ElectionID == vote.ElectionID && existing.VoterID == vote.VoterID {
			return domainerrors.ErrAlreadyVoted
		}
	}

	s.votes[vote.ID] = vote
	votedAt := vote.CreatedAt
	voter.HasVoted = true
	voter.VotedAt = &votedAt
	voter.UpdatedAt = votedAt
	s.voters[voter.ID] = voter
	return nil
}

// Votes returns a copy of the ledger for test assertions.
func (s *Store) Votes() []entities.Vote {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.Vote, 0, len(s.votes))
	for _, vote := range s.votes {
		items = append(items, vote)
	}
	return items
}

// Voter returns the current voter state for test assertions.
func (s *Store) Voter(voterID string) (entities.Voter, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	voter, ok := s.voters[strings.TrimSpace(voterID)]
	return voter, ok
}

func (s *Store) Now() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.now != nil {
		return *s.now
	}
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
