package entities

import (
	"testing"
	"time"
)

func TestElectionWindowBoundaries(t *testing.T) {
	start := time.Date(2025, 10, 1, 8, 0, 0, 0, time.UTC)
	end := time.Date(2025, 10, 1, 17, 0, 0, 0, time.UTC)
	election := Election{
		ID:       "eleicao-1",
		StartsAt: start,
		EndsAt:   end,
		Status:   ElectionStatusActive,
	}

	cases := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"exactly at start", start, true},
		{"exactly at end", end, true},
		{"middle of window", start.Add(4 * time.Hour), true},
		{"one nanosecond before start", start.Add(-time.Nanosecond), false},
		{"one nanosecond after end", end.Add(time.Nanosecond), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := election.IsOpen(tc.now); got != tc.want {
				t.Fatalf("IsOpen(%v) = %v, want %v", tc.now, got, tc.want)
			}
		})
	}
}

func TestElectionStatusGatesWindow(t *testing.T) {
	now := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
	election := Election{
		StartsAt: now.Add(-time.Hour),
		EndsAt:   now.Add(time.Hour),
	}
	for _, status := range []ElectionStatus{
		ElectionStatusCreated,
		ElectionStatusFinished,
		ElectionStatusCancelled,
	} {
		election.Status = status
		if election.IsOpen(now) {
			t.Fatalf("election with status %q must not be open", status)
		}
	}
	election.Status = ElectionStatusActive
	if !election.IsOpen(now) {
		t.Fatal("active election inside window must be open")
	}
}

func TestCanVote(t *testing.T) {
	now := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
	election := Election{
		Status:   ElectionStatusActive,
		StartsAt: now.Add(-time.Hour),
		EndsAt:   now.Add(time.Hour),
	}

	if !CanVote(Voter{HasVoted: false}, election, now) {
		t.Fatal("eligible voter in open election must be able to vote")
	}
	if CanVote(Voter{HasVoted: true}, election, now) {
		t.Fatal("voter who already voted must not be able to vote")
	}
	if CanVote(Voter{HasVoted: false}, election, now.Add(2*time.Hour)) {
		t.Fatal("voter must not be able to vote outside the window")
	}
}
