package errors

import "errors"

var (
	ErrInvalidBallot          = errors.New("invalid ballot input")
	ErrVoterNotFound          = errors.New("voter not found")
	ErrElectionNotFound       = errors.New("election not found")
	ErrCandidateNotFound      = errors.New("candidate not found")
	ErrElectionNotOpen        = errors.New("election is not open for voting")
	ErrAlreadyVoted           = errors.New("voter has already voted")
	ErrNoActiveElection       = errors.New("no active election")
	ErrPersistenceUnavailable = errors.New("vote storage unavailable")
)
