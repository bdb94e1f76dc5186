package httpserver

import (
	"encoding/json"
	"net/http"
	"strconv"

	boothhttp "github.com/Masterbarreto/Api-Urna/contexts/election-operations/booth-service/transport/http"
	registryhttp "github.com/Masterbarreto/Api-Urna/contexts/election-operations/registry-service/transport/http"
	authapp "github.com/Masterbarreto/Api-Urna/contexts/identity-access/auth-service/application"
)

func (s *Server) handleListElections(w http.ResponseWriter, r *http.Request, _ authapp.Claims) {
	resp, err := s.registry.Handler.ListElectionsHandler(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateElection(w http.ResponseWriter, r *http.Request, _ authapp.Claims) {
	var req registryhttp.ElectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.registry.Handler.CreateElectionHandler(r.Context(), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGetElection(w http.ResponseWriter, r *http.Request, _ authapp.Claims) {
	resp, err := s.registry.Handler.GetElectionHandler(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateElection(w http.ResponseWriter, r *http.Request, _ authapp.Claims) {
	var req registryhttp.ElectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.registry.Handler.UpdateElectionHandler(r.Context(), r.PathValue("id"), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteElection(w http.ResponseWriter, r *http.Request, _ authapp.Claims) {
	if err := s.registry.Handler.DeleteElectionHandler(r.Context(), r.PathValue("id")); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListCandidates(w http.ResponseWriter, r *http.Request, _ authapp.Claims) {
	resp, err := s.registry.Handler.ListCandidatesHandler(r.Context(), r.URL.Query().Get("eleicao_id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateCandidate(w http.ResponseWriter, r *http.Request, _ authapp.Claims) {
	var req registryhttp.CandidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.registry.Handler.CreateCandidateHandler(r.Context(), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGetCandidate(w http.ResponseWriter, r *http.Request, _ authapp.Claims) {
	resp, err := s.registry.Handler.GetCandidateHandler(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateCandidate(w http.ResponseWriter, r *http.Request, _ authapp.Claims) {
	var req registryhttp.CandidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.registry.Handler.UpdateCandidateHandler(r.Context(), r.PathValue("id"), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteCandidate(w http.ResponseWriter, r *http.Request, _ authapp.Claims) {
	if err := s.registry.Handler.DeleteCandidateHandler(r.Context(), r.PathValue("id")); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListVoters(w http.ResponseWriter, r *http.Request, _ authapp.Claims) {
	query := r.URL.Query()
	page := queryInt(query.Get("page"))
	limit := queryInt(query.Get("limit"))
	resp, err := s.registry.Handler.ListVotersHandler(
		r.Context(),
		query.Get("eleicao_id"),
		query.Get("search"),
		page,
		limit,
	)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateVoter(w http.ResponseWriter, r *http.Request, _ authapp.Claims) {
	var req registryhttp.VoterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.registry.Handler.CreateVoterHandler(r.Context(), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGetVoter(w http.ResponseWriter, r *http.Request, _ authapp.Claims) {
	resp, err := s.registry.Handler.GetVoterHandler(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateVoter(w http.ResponseWriter, r *http.Request, _ authapp.Claims) {
	var req registryhttp.VoterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.registry.Handler.UpdateVoterHandler(r.Context(), r.PathValue("id"), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteVoter(w http.ResponseWriter, r *http.Request, _ authapp.Claims) {
	if err := s.registry.Handler.DeleteVoterHandler(r.Context(), r.PathValue("id")); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleImportVoters(w http.ResponseWriter, r *http.Request, _ authapp.Claims) {
	defer r.Body.Close()
	resp, err := s.registry.Handler.ImportVotersHandler(r.Context(), r.PathValue("eleicao_id"), r.Body)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListBooths(w http.ResponseWriter, r *http.Request, _ authapp.Claims) {
	resp, err := s.booths.Handler.ListBoothsHandler(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateBooth(w http.ResponseWriter, r *http.Request, _ authapp.Claims) {
	var req boothhttp.BoothRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.booths.Handler.CreateBoothHandler(r.Context(), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGetBooth(w http.ResponseWriter, r *http.Request, _ authapp.Claims) {
	resp, err := s.booths.Handler.GetBoothHandler(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateBooth(w http.ResponseWriter, r *http.Request, _ authapp.Claims) {
	var req boothhttp.BoothRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.booths.Handler.UpdateBoothHandler(r.Context(), r.PathValue("id"), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteBooth(w http.ResponseWriter, r *http.Request, _ authapp.Claims) {
	if err := s.booths.Handler.DeleteBoothHandler(r.Context(), r.PathValue("id")); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// queryInt returns zero for absent or malformed values; the services clamp
// pagination to their own defaults.
func queryInt(raw string) int {
	if raw == "" {
		return 0
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return value
}
