package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Masterbarreto/Api-Urna/contexts/election-operations/registry-service/domain/entities"
	domainerrors "github.com/Masterbarreto/Api-Urna/contexts/election-operations/registry-service/domain/errors"
	"github.com/Masterbarreto/Api-Urna/contexts/election-operations/registry-service/ports"

	"github.com/google/uuid"
)

// Store is the in-memory implementation of the registry ports, used for
// module tests and local wiring.
type Store struct {
	mu sync.RWMutex

	elections  map[string]entities.Election
	candidates map[string]entities.Candidate
	voters     map[string]entities.Voter

	electionVotes  map[string]int64
	candidateVotes map[string]int64

	now *time.Time
}

func NewStore() *Store {
	return &Store{
		elections:      make(map[string]entities.Election),
		candidates:     make(map[string]entities.Candidate),
		voters:         make(map[string]entities.Voter),
		electionVotes:  make(map[string]int64),
		candidateVotes: make(map[string]int64),
	}
}

// SetVoteCounts seeds ledger counts so delete-refusal paths can be exercised
// without a vote table.
func (s *Store) SetVoteCounts(electionID string, candidateID string, count int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if electionID != "" {
		s.electionVotes[electionID] += count
	}
	if candidateID != "" {
		s.candidateVotes[candidateID] += count
	}
}

// SetNow pins the store clock for deterministic tests.
func (s *Store) SetNow(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fixed := now.UTC()
	s.now = &fixed
}

func (s *Store) SaveElection(_ context.Context, election entities.Election) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.elections[election.ID] = election
	return nil
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

func (s *Store) ListElections(_ context.Context) ([]entities.Election, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.Election, 0, len(s.elections))
	for _, election := range s.elections {
		items = append(items, election)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].StartsAt.After(items[j].StartsAt) })
	return items, nil
}

func (s *Store) DeleteElection(_ context.Context, electionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.elections, electionID)
	for id, candidate := range s.candidates {
		if candidate.ElectionID == electionID {
			delete(s.candidates, id)
		}
	}
	for id, voter := range s.voters {
		if voter.ElectionID == electionID {
			delete(s.voters, id)
		}
	}
	return nil
}

func (s *Store) CountElectionVotes(_ context.Context, electionID string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.electionVotes[electionID], nil
}

func (s *Store) SaveCandidate(_ context.Context, candidate entities.Candidate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.candidates[candidate.ID] = candidate
	return nil
}

func (s *Store) GetCandidate(_ context.Context, candidateID string) (entities.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	candidate, ok := s.candidates[strings.TrimSpace(candidateID)]
	if !ok {
		return entities.Candidate{}, domainerrors.ErrCandidateNotFound
	}
	return candidate, nil
}

func (s *Store) ListCandidates(_ context.Context, electionID string) ([]entities.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.Candidate, 0)
	for _, candidate := range s.candidates {
		if candidate.ElectionID == electionID {
			items = append(items, candidate)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Number < items[j].Number })
	return items, nil
}

func (s *Store) DeleteCandidate(_ context.Context, candidateID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.candidates, candidateID)
	return nil
}

func (s *Store) CountCandidateVotes(_ context.Context, candidateID string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.candidateVotes[candidateID], nil
}

func (s *Store) FindCandidateByNumber(
	_ context.Context,
	electionID string,
	number int,
) (entities.Candidate, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, candidate := range s.candidates {
		if candidate.ElectionID == electionID && candidate.Number == number {
			return candidate, true, nil
		}
	}
	return entities.Candidate{}, false, nil
}

func (s *Store) SaveVoter(_ context.Context, voter entities.Voter) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.voters[voter.ID] = voter
	return nil
}

func (s *Store) GetVoter(_ context.Context, voterID string) (entities.Voter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	voter, ok := s.voters[strings.TrimSpace(voterID)]
	if !ok {
		return entities.Voter{}, domainerrors.ErrVoterNotFound
	}
	return voter, nil
}

func (s *Store) ListVoters(
	_ context.Context,
	electionID string,
	search string,
	page int,
	limit int,
) (ports.VoterPage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	matches := make([]entities.Voter, 0)
	needle := strings.ToLower(search)
	for _, voter := range s.voters {
		if voter.ElectionID != electionID {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(voter.Name), needle) &&
			!strings.Contains(strings.ToLower(voter.Registration), needle) {
			continue
		}
		matches = append(matches, voter)
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].Name < matches[j].Name })

	total := int64(len(matches))
	start := (page - 1) * limit
	if start > len(matches) {
		start = len(matches)
	}
	end := start + limit
	if end > len(matches) {
		end = len(matches)
	}
	return ports.VoterPage{
		Items: matches[start:end],
		Total: total,
		Page:  page,
		Limit: limit,
	}, nil
}

func (s *Store) DeleteVoter(_ context.Context, voterID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.voters, voterID)
	return nil
}

func (s *Store) FindVoterByRegistration(
	_ context.Context,
	electionID string,
	registration string,
) (entities.Voter, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, voter := range s.voters {
		if voter.ElectionID == electionID && voter.Registration == registration {
			return voter, true, nil
		}
	}
	return entities.Voter{}, false, nil
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
