package memory

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Masterbarreto/Api-Urna/contexts/election-operations/voting-engine/domain/entities"
	domainerrors "github.com/Masterbarreto/Api-Urna/contexts/election-operations/voting-engine/domain/errors"
)

func TestStoreCastVoteConcurrent(t *testing.T) {
	now := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
	store := NewStore()
	store.SetElection(entities.Election{
		ID:       "eleicao-1",
		Status:   entities.ElectionStatusActive,
		StartsAt: now.Add(-time.Hour),
		EndsAt:   now.Add(time.Hour),
	})
	store.SetVoter(entities.Voter{
		ID:           "eleitor-1",
		ElectionID:   "eleicao-1",
		Registration: "20250001",
	})

	const attempts = 32
	var successes atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			err := store.CastVote(context.Background(), entities.Vote{
				ID:         "voto-" + string(rune('a'+n%26)) + string(rune('a'+n/26)),
				ElectionID: "eleicao-1",
				VoterID:    "eleitor-1",
				Kind:       entities.VoteKindBlank,
				CreatedAt:  now,
			})
			if err == nil {
				successes.Add(1)
			} else if !errors.Is(err, domainerrors.ErrAlreadyVoted) {
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	if successes.Load() != 1 {
		t.Fatalf("expected exactly one winner, got %d", successes.Load())
	}
	if len(store.Votes()) != 1 {
		t.Fatalf("expected one vote row, got %d", len(store.Votes()))
	}
	voter, _ := store.Voter("eleitor-1")
	if !voter.HasVoted {
		t.Fatal("voter flag must be flipped by the winning cast")
	}
}
