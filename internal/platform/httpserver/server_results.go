package httpserver

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	authapp "github.com/Masterbarreto/Api-Urna/contexts/identity-access/auth-service/application"
	auditentities "github.com/Masterbarreto/Api-Urna/contexts/internal-ops/audit-service/domain/entities"
)

func (s *Server) handleElectionResults(w http.ResponseWriter, r *http.Request, _ authapp.Claims) {
	resp, err := s.results.Handler.ElectionResultsHandler(r.Context(), r.PathValue("eleicao_id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleExportResults(w http.ResponseWriter, r *http.Request, _ authapp.Claims) {
	electionID := r.PathValue("eleicao_id")
	format := r.URL.Query().Get("formato")
	if format == "" {
		format = "csv"
	}

	// Buffered so a late failure still produces a JSON error instead of a
	// half-written sheet.
	var buf bytes.Buffer
	if err := s.results.Handler.ExportResultsHandler(r.Context(), electionID, format, &buf); err != nil {
		writeDomainError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=resultados-%s.csv", electionID))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request, _ authapp.Claims) {
	resp, err := s.results.Handler.DashboardHandler(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListAuditEntries(w http.ResponseWriter, r *http.Request, _ authapp.Claims) {
	query := r.URL.Query()
	filter, err := auditFilter(query.Get("usuario_id"), query.Get("acao"), query.Get("tabela"), query.Get("desde"), query.Get("ate"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_date", "desde and ate must be RFC 3339 timestamps")
		return
	}
	resp, err := s.audit.Handler.ListEntriesHandler(r.Context(), filter, queryInt(query.Get("page")), queryInt(query.Get("limit")))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetAuditEntry(w http.ResponseWriter, r *http.Request, _ authapp.Claims) {
	resp, err := s.audit.Handler.GetEntryHandler(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAuditStats(w http.ResponseWriter, r *http.Request, _ authapp.Claims) {
	query := r.URL.Query()
	filter, err := auditFilter(query.Get("usuario_id"), query.Get("acao"), query.Get("tabela"), query.Get("desde"), query.Get("ate"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_date", "desde and ate must be RFC 3339 timestamps")
		return
	}
	resp, err := s.audit.Handler.StatsHandler(r.Context(), filter)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func auditFilter(userID, action, table, since, until string) (auditentities.Filter, error) {
	filter := auditentities.Filter{UserID: userID, Action: action, Table: table}
	if since != "" {
		parsed, err := time.Parse(time.RFC3339, since)
		if err != nil {
			return auditentities.Filter{}, err
		}
		filter.Since = &parsed
	}
	if until != "" {
		parsed, err := time.Parse(time.RFC3339, until)
		if err != nil {
			return auditentities.Filter{}, err
		}
		filter.Until = &parsed
	}
	return filter, nil
}
