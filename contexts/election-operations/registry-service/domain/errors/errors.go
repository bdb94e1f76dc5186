package errors

import "errors"

var (
	ErrInvalidInput            = errors.New("invalid registry input")
	ErrElectionNotFound        = errors.New("election not found")
	ErrCandidateNotFound       = errors.New("candidate not found")
	ErrVoterNotFound           = errors.New("voter not found")
	ErrDuplicateNumber         = errors.New("candidate number already used in election")
	ErrDuplicateRegistration   = errors.New("voter registration already used in election")
	ErrInvalidStatusTransition = errors.New("invalid election status transition")
	ErrElectionHasVotes        = errors.New("election has recorded votes")
	ErrCandidateHasVotes       = errors.New("candidate has recorded votes")
	ErrVoterHasVoted           = errors.New("voter has already voted")
)
