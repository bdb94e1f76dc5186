package commands

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Masterbarreto/Api-Urna/contexts/election-operations/voting-engine/adapters/memory"
	"github.com/Masterbarreto/Api-Urna/contexts/election-operations/voting-engine/domain/entities"
	domainerrors "github.com/Masterbarreto/Api-Urna/contexts/election-operations/voting-engine/domain/errors"
	"github.com/Masterbarreto/Api-Urna/contexts/election-operations/voting-engine/ports"
)

type eventRecorder struct {
	mu     sync.Mutex
	events []ports.VoteCastEvent
}

func (r *eventRecorder) PublishVoteCast(_ context.Context, event ports.VoteCastEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func (r *eventRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

func newTestUseCase(store *memory.Store, notifier ports.Notifier) CastVoteUseCase {
	return CastVoteUseCase{
		Elections:  store,
		Voters:     store,
		Candidates: store,
		Ledger:     store,
		Notifier:   notifier,
		Clock:      store,
		IDGen:      store,
	}
}

func seedOpenElection(store *memory.Store, now time.Time) {
	store.SetNow(now)
	store.SetElection(entities.Election{
		ID:       "eleicao-1",
		Title:    "Eleição do Grêmio 2025",
		Status:   entities.ElectionStatusActive,
		StartsAt: now.Add(-time.Hour),
		EndsAt:   now.Add(time.Hour),
	})
	store.SetCandidate(entities.Candidate{
		ID:         "candidato-1",
		ElectionID: "eleicao-1",
		Number:     10,
		Name:       "Chapa Um",
	})
	store.SetCandidate(entities.Candidate{
		ID:         "candidato-2",
		ElectionID: "eleicao-1",
		Number:     20,
		Name:       "Chapa Dois",
	})
}

func TestCastVoteForCandidate(t *testing.T) {
	now := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
	store := memory.NewStore()
	recorder := &eventRecorder{}
	seedOpenElection(store, now)
	store.SetVoter(entities.Voter{
		ID:           "eleitor-1",
		ElectionID:   "eleicao-1",
		Registration: "20250001",
		Name:         "Ana",
	})

	uc := newTestUseCase(store, recorder)
	result, err := uc.CastVote(context.Background(), CastVoteCommand{
		ElectionID:        "eleicao-1",
		VoterRegistration: "20250001",
		Selection:         "candidato-1",
	})
	if err != nil {
		t.Fatalf("cast vote failed: %v", err)
	}
	if result.VerificationHash == "" {
		t.Fatal("expected a verification hash receipt")
	}
	if result.Kind != entities.VoteKindCandidate {
		t.Fatalf("expected candidate vote, got %q", result.Kind)
	}
	if !result.CastAt.Equal(now) {
		t.Fatalf("expected cast time %v, got %v", now, result.CastAt)
	}

	votes := store.Votes()
	if len(votes) != 1 {
		t.Fatalf("expected one vote row, got %d", len(votes))
	}
	if votes[0].CandidateID == nil || *votes[0].CandidateID != "candidato-1" {
		t.Fatalf("vote row does not reference candidato-1: %+v", votes[0])
	}
	voter, _ := store.Voter("eleitor-1")
	if !voter.HasVoted || voter.VotedAt == nil {
		t.Fatalf("voter flag not flipped: %+v", voter)
	}
	if recorder.count() != 1 {
		t.Fatalf("expected one published event, got %d", recorder.count())
	}
}

func TestCastVoteSecondAttemptRejected(t *testing.T) {
	now := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
	store := memory.NewStore()
	seedOpenElection(store, now)
	store.SetVoter(entities.Voter{
		ID:           "eleitor-1",
		ElectionID:   "eleicao-1",
		Registration: "20250001",
	})

	uc := newTestUseCase(store, nil)
	if _, err := uc.CastVote(context.Background(), CastVoteCommand{
		ElectionID:        "eleicao-1",
		VoterRegistration: "20250001",
		Selection:         "candidato-1",
	}); err != nil {
		t.Fatalf("first cast failed: %v", err)
	}

	// A different selection must not matter: the rejection is terminal.
	for i := 0; i < 3; i++ {
		_, err := uc.CastVote(context.Background(), CastVoteCommand{
			ElectionID:        "eleicao-1",
			VoterRegistration: "20250001",
			Selection:         "candidato-2",
		})
		if !errors.Is(err, domainerrors.ErrAlreadyVoted) {
			t.Fatalf("attempt %d: expected ErrAlreadyVoted, got %v", i+2, err)
		}
	}
	if len(store.Votes()) != 1 {
		t.Fatalf("expected exactly one vote row, got %d", len(store.Votes()))
	}
}

func TestCastNullVote(t *testing.T) {
	now := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
	store := memory.NewStore()
	seedOpenElection(store, now)
	store.SetVoter(entities.Voter{
		ID:           "eleitor-2",
		ElectionID:   "eleicao-1",
		Registration: "20250002",
	})

	uc := newTestUseCase(store, nil)
	result, err := uc.CastVote(context.Background(), CastVoteCommand{
		ElectionID:        "eleicao-1",
		VoterRegistration: "20250002",
		Selection:         entities.SelectionNull,
	})
	if err != nil {
		t.Fatalf("null vote failed: %v", err)
	}
	if result.Kind != entities.VoteKindNull {
		t.Fatalf("expected nulo vote kind, got %q", result.Kind)
	}
	votes := store.Votes()
	if len(votes) != 1 || votes[0].CandidateID != nil {
		t.Fatalf("null vote must not reference a candidate: %+v", votes)
	}
}

func TestCastBlankVote(t *testing.T) {
	now := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
	store := memory.NewStore()
	seedOpenElection(store, now)
	store.SetVoter(entities.Voter{
		ID:           "eleitor-3",
		ElectionID:   "eleicao-1",
		Registration: "20250003",
	})

	uc := newTestUseCase(store, nil)
	result, err := uc.CastVote(context.Background(), CastVoteCommand{
		ElectionID:        "eleicao-1",
		VoterRegistration: "20250003",
		Selection:         entities.SelectionBlank,
	})
	if err != nil {
		t.Fatalf("blank vote failed: %v", err)
	}
	if result.Kind != entities.VoteKindBlank {
		t.Fatalf("expected branco vote kind, got %q", result.Kind)
	}
}

func TestCastVoteElectionNotOpen(t *testing.T) {
	now := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
	store := memory.NewStore()
	store.SetNow(now)
	store.SetElection(entities.Election{
		ID:       "eleicao-2",
		Status:   entities.ElectionStatusCreated,
		StartsAt: now.Add(-time.Hour),
		EndsAt:   now.Add(time.Hour),
	})
	store.SetVoter(entities.Voter{
		ID:           "eleitor-4",
		ElectionID:   "eleicao-2",
		Registration: "20250004",
	})

	uc := newTestUseCase(store, nil)
	_, err := uc.CastVote(context.Background(), CastVoteCommand{
		ElectionID:        "eleicao-2",
		VoterRegistration: "20250004",
		Selection:         entities.SelectionBlank,
	})
	if !errors.Is(err, domainerrors.ErrElectionNotOpen) {
		t.Fatalf("expected ErrElectionNotOpen, got %v", err)
	}
	if len(store.Votes()) != 0 {
		t.Fatal("no vote row may exist for a rejected attempt")
	}
}

func TestCastVoteUnknownVoterAndCandidate(t *testing.T) {
	now := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
	store := memory.NewStore()
	seedOpenElection(store, now)
	store.SetVoter(entities.Voter{
		ID:           "eleitor-5",
		ElectionID:   "eleicao-1",
		Registration: "20250005",
	})

	uc := newTestUseCase(store, nil)
	if _, err := uc.CastVote(context.Background(), CastVoteCommand{
		ElectionID:        "eleicao-1",
		VoterRegistration: "99999999",
		Selection:         "candidato-1",
	}); !errors.Is(err, domainerrors.ErrVoterNotFound) {
		t.Fatalf("expected ErrVoterNotFound, got %v", err)
	}

	if _, err := uc.CastVote(context.Background(), CastVoteCommand{
		ElectionID:        "eleicao-1",
		VoterRegistration: "20250005",
		Selection:         "candidato-inexistente",
	}); !errors.Is(err, domainerrors.ErrCandidateNotFound) {
		t.Fatalf("expected ErrCandidateNotFound, got %v", err)
	}
}

func TestConcurrentCastsExactlyOneWins(t *testing.T) {
	now := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
	store := memory.NewStore()
	recorder := &eventRecorder{}
	seedOpenElection(store, now)
	store.SetVoter(entities.Voter{
		ID:           "eleitor-6",
		ElectionID:   "eleicao-1",
		Registration: "20250006",
	})

	uc := newTestUseCase(store, recorder)

	const attempts = 16
	var successes, duplicates atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			selection := "candidato-1"
			if n%2 == 1 {
				selection = "candidato-2"
			}
			_, err := uc.CastVote(context.Background(), CastVoteCommand{
				ElectionID:        "eleicao-1",
				VoterRegistration: "20250006",
				Selection:         selection,
			})
			switch {
			case err == nil:
				successes.Add(1)
			case errors.Is(err, domainerrors.ErrAlreadyVoted):
				duplicates.Add(1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	if successes.Load() != 1 {
		t.Fatalf("expected exactly one successful cast, got %d", successes.Load())
	}
	if duplicates.Load() != attempts-1 {
		t.Fatalf("expected %d AlreadyVoted rejections, got %d", attempts-1, duplicates.Load())
	}
	votes := store.Votes()
	if len(votes) != 1 {
		t.Fatalf("expected one committed vote row, got %d", len(votes))
	}
	voter, _ := store.Voter("eleitor-6")
	if !voter.HasVoted {
		t.Fatal("winning cast must flip the voter flag")
	}
	if recorder.count() != 1 {
		t.Fatalf("expected one published event, got %d", recorder.count())
	}
}

type failingNotifier struct{}

func (failingNotifier) PublishVoteCast(context.Context, ports.VoteCastEvent) error {
	return fmt.Errorf("subscriber gone")
}

func TestNotifierFailureDoesNotFailVote(t *testing.T) {
	now := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
	store := memory.NewStore()
	seedOpenElection(store, now)
	store.SetVoter(entities.Voter{
		ID:           "eleitor-7",
		ElectionID:   "eleicao-1",
		Registration: "20250007",
	})

	uc := newTestUseCase(store, failingNotifier{})
	if _, err := uc.CastVote(context.Background(), CastVoteCommand{
		ElectionID:        "eleicao-1",
		VoterRegistration: "20250007",
		Selection:         entities.SelectionBlank,
	}); err != nil {
		t.Fatalf("notify failure must not fail the vote: %v", err)
	}
	if len(store.Votes()) != 1 {
		t.Fatal("vote must be committed despite notify failure")
	}
}
