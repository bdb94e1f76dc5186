package httpserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	votinghttp "github.com/Masterbarreto/Api-Urna/contexts/election-operations/voting-engine/transport/http"
)

func (s *Server) handleValidateVoter(w http.ResponseWriter, r *http.Request) {
	var req votinghttp.ValidateVoterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.voting.Handler.ValidateVoterHandler(r.Context(), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleBoothCandidates(w http.ResponseWriter, r *http.Request) {
	resp, err := s.voting.Handler.ListCandidatesHandler(r.Context(), r.URL.Query().Get("eleicao_id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCastVote(w http.ResponseWriter, r *http.Request) {
	var req votinghttp.CastVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.voting.Handler.CastVoteHandler(r.Context(), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleBoothPing(w http.ResponseWriter, r *http.Request) {
	number, err := strconv.Atoi(r.PathValue("numero"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_booth_number", "booth number must be an integer")
		return
	}
	resp, err := s.booths.Handler.PingHandler(r.Context(), number, resolveClientIP(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleRealtimeElection streams vote events for one election over SSE.
// Events carry only the vote kind and timestamp; consumers needing totals
// re-read the results endpoint.
func (s *Server) handleRealtimeElection(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming_unsupported", "response writer does not support streaming")
		return
	}
	electionID := r.PathValue("eleicao_id")

	events, cancel := s.hub.Subscribe(electionID)
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	heartbeat := time.NewTicker(15 * time.Second)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-heartbeat.C:
			fmt.Fprint(w, ": heartbeat\n\n")
			flusher.Flush()
		case event, open := <-events:
			if !open {
				return
			}
			payload, err := json.Marshal(event)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: vote\ndata: %s\n\n", payload)
			flusher.Flush()
		}
	}
}
