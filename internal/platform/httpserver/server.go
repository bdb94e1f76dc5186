package httpserver

import (
	"encoding/json"
	"log/slog"
	"net/http"

	boothservice "github.com/Masterbarreto/Api-Urna/contexts/election-operations/booth-service"
	registryservice "github.com/Masterbarreto/Api-Urna/contexts/election-operations/registry-service"
	resultsservice "github.com/Masterbarreto/Api-Urna/contexts/election-operations/results-service"
	votingengine "github.com/Masterbarreto/Api-Urna/contexts/election-operations/voting-engine"
	authservice "github.com/Masterbarreto/Api-Urna/contexts/identity-access/auth-service"
	auditservice "github.com/Masterbarreto/Api-Urna/contexts/internal-ops/audit-service"
	"github.com/Masterbarreto/Api-Urna/internal/platform/realtime"

	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/Masterbarreto/Api-Urna/internal/platform/httpserver/docs"
)

type Server struct {
	mux    *http.ServeMux
	logger *slog.Logger
	addr   string

	voting   votingengine.Module
	registry registryservice.Module
	booths   boothservice.Module
	results  resultsservice.Module
	auth     authservice.Module
	audit    auditservice.Module
	hub      *realtime.Hub

	swaggerEnabled bool
}

type Modules struct {
	Voting   votingengine.Module
	Registry registryservice.Module
	Booths   boothservice.Module
	Results  resultsservice.Module
	Auth     authservice.Module
	Audit    auditservice.Module
	Hub      *realtime.Hub
}

type Options struct {
	Addr          string
	EnableSwagger bool
	Logger        *slog.Logger
}

func New(modules Modules, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	addr := opts.Addr
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:            http.NewServeMux(),
		logger:         logger,
		addr:           addr,
		voting:         modules.Voting,
		registry:       modules.Registry,
		booths:         modules.Booths,
		results:        modules.Results,
		auth:           modules.Auth,
		audit:          modules.Audit,
		hub:            modules.Hub,
		swaggerEnabled: opts.EnableSwagger,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

// Handler exposes the routed mux for httptest.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) registerRoutes() {
	if s.swaggerEnabled {
		s.mux.Handle("/swagger/", httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
		))
	}

	s.mux.HandleFunc("GET /healthz", s.handleHealth)

	// Booth surface, token-free.
	s.mux.HandleFunc("POST /api/v1/urna/eleitores/validar", s.handleValidateVoter)
	s.mux.HandleFunc("GET /api/v1/urna/candidatos", s.handleBoothCandidates)
	s.mux.HandleFunc("POST /api/v1/urna/votos", s.handleCastVote)
	s.mux.HandleFunc("GET /api/v1/tempo-real/eleicoes/{eleicao_id}", s.handleRealtimeElection)
	s.mux.HandleFunc("POST /api/v1/urnas/{numero}/ping", s.handleBoothPing)

	// Auth.
	s.mux.HandleFunc("POST /api/v1/auth/login", s.handleLogin)
	s.mux.HandleFunc("GET /api/v1/auth/me", s.authenticated(s.handleMe))
	s.mux.HandleFunc("POST /api/v1/auth/refresh", s.authenticated(s.handleRefresh))
	s.mux.HandleFunc("POST /api/v1/auth/logout", s.authenticated(s.handleLogout))

	// Registry, JWT-protected; mutations are admin-only.
	s.mux.HandleFunc("GET /api/v1/eleicoes", s.authenticated(s.handleListElections))
	s.mux.HandleFunc("POST /api/v1/eleicoes", s.adminOnly(s.handleCreateElection))
	s.mux.HandleFunc("GET /api/v1/eleicoes/{id}", s.authenticated(s.handleGetElection))
	s.mux.HandleFunc("PUT /api/v1/eleicoes/{id}", s.adminOnly(s.handleUpdateElection))
	s.mux.HandleFunc("DELETE /api/v1/eleicoes/{id}", s.adminOnly(s.handleDeleteElection))

	s.mux.HandleFunc("GET /api/v1/candidatos", s.authenticated(s.handleListCandidates))
	s.mux.HandleFunc("POST /api/v1/candidatos", s.adminOnly(s.handleCreateCandidate))
	s.mux.HandleFunc("GET /api/v1/candidatos/{id}", s.authenticated(s.handleGetCandidate))
	s.mux.HandleFunc("PUT /api/v1/candidatos/{id}", s.adminOnly(s.handleUpdateCandidate))
	s.mux.HandleFunc("DELETE /api/v1/candidatos/{id}", s.adminOnly(s.handleDeleteCandidate))

	s.mux.HandleFunc("GET /api/v1/eleitores", s.authenticated(s.handleListVoters))
	s.mux.HandleFunc("POST /api/v1/eleitores", s.adminOnly(s.handleCreateVoter))
	s.mux.HandleFunc("GET /api/v1/eleitores/{id}", s.authenticated(s.handleGetVoter))
	s.mux.HandleFunc("PUT /api/v1/eleitores/{id}", s.adminOnly(s.handleUpdateVoter))
	s.mux.HandleFunc("DELETE /api/v1/eleitores/{id}", s.adminOnly(s.handleDeleteVoter))
	s.mux.HandleFunc("POST /api/v1/eleicoes/{eleicao_id}/eleitores/importar", s.adminOnly(s.handleImportVoters))

	// Booth fleet.
	s.mux.HandleFunc("GET /api/v1/urnas", s.authenticated(s.handleListBooths))
	s.mux.HandleFunc("POST /api/v1/urnas", s.adminOnly(s.handleCreateBooth))
	s.mux.HandleFunc("GET /api/v1/urnas/{id}", s.authenticated(s.handleGetBooth))
	s.mux.HandleFunc("PUT /api/v1/urnas/{id}", s.adminOnly(s.handleUpdateBooth))
	s.mux.HandleFunc("DELETE /api/v1/urnas/{id}", s.adminOnly(s.handleDeleteBooth))

	// Results and dashboard.
	s.mux.HandleFunc("GET /api/v1/resultados/{eleicao_id}", s.authenticated(s.handleElectionResults))
	s.mux.HandleFunc("GET /api/v1/resultados/{eleicao_id}/exportar", s.authenticated(s.handleExportResults))
	s.mux.HandleFunc("GET /api/v1/dashboard/summary", s.authenticated(s.handleDashboard))

	// Audit trail.
	s.mux.HandleFunc("GET /api/v1/auditoria", s.authenticated(s.handleListAuditEntries))
	s.mux.HandleFunc("GET /api/v1/auditoria/estatisticas", s.authenticated(s.handleAuditStats))
	s.mux.HandleFunc("GET /api/v1/auditoria/{id}", s.authenticated(s.handleGetAuditEntry))
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func resolveClientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return forwarded
	}
	return r.RemoteAddr
}
