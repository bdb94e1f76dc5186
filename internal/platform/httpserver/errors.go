package httpserver

import (
	"errors"
	"net/http"

	registryerrors "github.com/Masterbarreto/Api-Urna/contexts/election-operations/registry-service/domain/errors"
	resultserrors "github.com/Masterbarreto/Api-Urna/contexts/election-operations/results-service/domain/errors"
	voteerrors "github.com/Masterbarreto/Api-Urna/contexts/election-operations/voting-engine/domain/errors"
	autherrors "github.com/Masterbarreto/Api-Urna/contexts/identity-access/auth-service/domain/errors"
	auditerrors "github.com/Masterbarreto/Api-Urna/contexts/internal-ops/audit-service/domain/errors"

	bootherrors "github.com/Masterbarreto/Api-Urna/contexts/election-operations/booth-service/domain/errors"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, errorBody{Code: code, Message: message})
}

type errorMapping struct {
	sentinel error
	status   int
	code     string
}

// mappings translates domain sentinels into HTTP statuses. Order matters only
// for readability; sentinels are disjoint across modules.
var mappings = []errorMapping{
	// Voting engine.
	{voteerrors.ErrInvalidBallot, http.StatusBadRequest, "invalid_ballot"},
	{voteerrors.ErrVoterNotFound, http.StatusNotFound, "voter_not_found"},
	{voteerrors.ErrElectionNotFound, http.StatusNotFound, "election_not_found"},
	{voteerrors.ErrCandidateNotFound, http.StatusNotFound, "candidate_not_found"},
	{voteerrors.ErrNoActiveElection, http.StatusNotFound, "no_active_election"},
	{voteerrors.ErrElectionNotOpen, http.StatusConflict, "election_not_open"},
	{voteerrors.ErrAlreadyVoted, http.StatusConflict, "already_voted"},
	{voteerrors.ErrPersistenceUnavailable, http.StatusServiceUnavailable, "vote_storage_unavailable"},

	// Registry.
	{registryerrors.ErrInvalidInput, http.StatusBadRequest, "invalid_input"},
	{registryerrors.ErrElectionNotFound, http.StatusNotFound, "election_not_found"},
	{registryerrors.ErrCandidateNotFound, http.StatusNotFound, "candidate_not_found"},
	{registryerrors.ErrVoterNotFound, http.StatusNotFound, "voter_not_found"},
	{registryerrors.ErrDuplicateNumber, http.StatusConflict, "duplicate_candidate_number"},
	{registryerrors.ErrDuplicateRegistration, http.StatusConflict, "duplicate_registration"},
	{registryerrors.ErrInvalidStatusTransition, http.StatusConflict, "invalid_status_transition"},
	{registryerrors.ErrElectionHasVotes, http.StatusConflict, "election_has_votes"},
	{registryerrors.ErrCandidateHasVotes, http.StatusConflict, "candidate_has_votes"},
	{registryerrors.ErrVoterHasVoted, http.StatusConflict, "voter_has_voted"},

	// Booth fleet.
	{bootherrors.ErrInvalidInput, http.StatusBadRequest, "invalid_input"},
	{bootherrors.ErrBoothNotFound, http.StatusNotFound, "booth_not_found"},
	{bootherrors.ErrDuplicateBoothNumber, http.StatusConflict, "duplicate_booth_number"},

	// Results.
	{resultserrors.ErrElectionNotFound, http.StatusNotFound, "election_not_found"},
	{resultserrors.ErrUnknownFormat, http.StatusBadRequest, "unknown_format"},

	// Auth.
	{autherrors.ErrInvalidInput, http.StatusBadRequest, "invalid_input"},
	{autherrors.ErrInvalidCredentials, http.StatusUnauthorized, "invalid_credentials"},
	{autherrors.ErrUserNotFound, http.StatusNotFound, "user_not_found"},
	{autherrors.ErrUserInactive, http.StatusForbidden, "user_inactive"},
	{autherrors.ErrDuplicateEmail, http.StatusConflict, "duplicate_email"},
	{autherrors.ErrInvalidToken, http.StatusUnauthorized, "invalid_token"},

	// Audit.
	{auditerrors.ErrInvalidInput, http.StatusBadRequest, "invalid_input"},
	{auditerrors.ErrEntryNotFound, http.StatusNotFound, "audit_entry_not_found"},
}

func writeDomainError(w http.ResponseWriter, err error) {
	for _, m := range mappings {
		if errors.Is(err, m.sentinel) {
			writeError(w, m.status, m.code, m.sentinel.Error())
			return
		}
	}
	writeError(w, http.StatusInternalServerError, "internal_error", "unexpected error")
}
