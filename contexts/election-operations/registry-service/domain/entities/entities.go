package entities

import "time"

type ElectionStatus string

const (
	ElectionStatusCreated   ElectionStatus = "criada"
	ElectionStatusActive    ElectionStatus = "ativa"
	ElectionStatusFinished  ElectionStatus = "finalizada"
	ElectionStatusCancelled ElectionStatus = "cancelada"
)

// ValidStatus reports whether s is one of the closed set of election states.
func ValidStatus(s ElectionStatus) bool {
	switch s {
	case ElectionStatusCreated, ElectionStatusActive, ElectionStatusFinished, ElectionStatusCancelled:
		return true
	}
	return false
}

// CanTransition encodes the administrative lifecycle: criada -> ativa ->
// finalizada, with cancelada reachable until the election finishes. The
// vote-casting flow never mutates status.
func CanTransition(from ElectionStatus, to ElectionStatus) bool {
	if from == to {
		return true
	}
	switch from {
	case ElectionStatusCreated:
		return to == ElectionStatusActive || to == ElectionStatusCancelled
	case ElectionStatusActive:
		return to == ElectionStatusFinished || to == ElectionStatusCancelled
	default:
		return false
	}
}

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

// ImportReport summarizes a bulk voter import. Row numbers are 1-based and
// count the header line.
type ImportReport struct {
	Imported int
	Skipped  []ImportRowError
}

type ImportRowError struct {
	Row    int
	Reason string
}
