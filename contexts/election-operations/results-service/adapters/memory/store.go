package memory

import (
	"context"
	"sync"
	"time"

	"github.com/Masterbarreto/Api-Urna/contexts/election-operations/results-service/domain/entities"
	domainerrors "github.com/Masterbarreto/Api-Urna/contexts/election-operations/results-service/domain/errors"
	"github.com/Masterbarreto/Api-Urna/contexts/election-operations/results-service/ports"
)

type seededVote struct {
	electionID  string
	candidateID string
	kind        string
}

// Store is the in-memory ResultsReader used by use-case tests. Seed it with
// elections, candidates, voters and votes, then query like production.
type Store struct {
	mu         sync.RWMutex
	elections  []entities.ElectionSummary
	candidates map[string][]entities.CandidateTally
	eligible   map[string]int64
	voted      map[string]int64
	votes      []seededVote
	fleet      entities.FleetStatus
	now        *time.Time
}

func NewStore() *Store {
	return &Store{
		candidates: make(map[string][]entities.CandidateTally),
		eligible:   make(map[string]int64),
		voted:      make(map[string]int64),
	}
}

func (s *Store) SetElection(election entities.ElectionSummary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.elections = append(s.elections, election)
}

func (s *Store) SetCandidate(electionID string, tally entities.CandidateTally) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.candidates[electionID] = append(s.candidates[electionID], tally)
}

func (s *Store) SetVoterCounts(electionID string, eligible, voted int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.eligible[electionID] = eligible
	s.voted[electionID] = voted
}

// AddVote appends a ledger row; kind is candidato, nulo or branco.
func (s *Store) AddVote(electionID, candidateID, kind string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.votes = append(s.votes, seededVote{electionID: electionID, candidateID: candidateID, kind: kind})
}

func (s *Store) SetFleet(fleet entities.FleetStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fleet = fleet
}

func (s *Store) SetNow(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fixed := now.UTC()
	s.now = &fixed
}

func (s *Store) GetElection(_ context.Context, electionID string) (entities.ElectionSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, election := range s.elections {
		if election.ID == electionID {
			return election, nil
		}
	}
	return entities.ElectionSummary{}, domainerrors.ErrElectionNotFound
}

func (s *Store) ListElections(_ context.Context) ([]entities.ElectionSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entities.ElectionSummary(nil), s.elections...), nil
}

func (s *Store) TallyByCandidate(_ context.Context, electionID string) ([]entities.CandidateTally, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tallies := make([]entities.CandidateTally, 0, len(s.candidates[electionID]))
	for _, candidate := range s.candidates[electionID] {
		tally := candidate
		tally.Votes = 0
		for _, vote := range s.votes {
			if vote.electionID == electionID && vote.candidateID == candidate.CandidateID {
				tally.Votes++
			}
		}
		tallies = append(tallies, tally)
	}
	return tallies, nil
}

func (s *Store) CountVotesByKind(_ context.Context, electionID string) (ports.VoteKindCounts, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var counts ports.VoteKindCounts
	for _, vote := range s.votes {
		if vote.electionID != electionID {
			continue
		}
		switch vote.kind {
		case "candidato":
			counts.Candidate++
		case "nulo":
			counts.Null++
		case "branco":
			counts.Blank++
		}
	}
	return counts, nil
}

func (s *Store) CountEligibleVoters(_ context.Context, electionID string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.eligible[electionID], nil
}

func (s *Store) CountVotedVoters(_ context.Context, electionID string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.voted[electionID], nil
}

func (s *Store) FleetStatus(_ context.Context) (entities.FleetStatus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fleet, nil
}

func (s *Store) Now() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.now != nil {
		return *s.now
	}
	return time.Now().UTC()
}
