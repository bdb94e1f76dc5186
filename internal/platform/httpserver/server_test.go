package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	boothservice "github.com/Masterbarreto/Api-Urna/contexts/election-operations/booth-service"
	registryservice "github.com/Masterbarreto/Api-Urna/contexts/election-operations/registry-service"
	registrymemory "github.com/Masterbarreto/Api-Urna/contexts/election-operations/registry-service/adapters/memory"
	resultsservice "github.com/Masterbarreto/Api-Urna/contexts/election-operations/results-service"
	votingengine "github.com/Masterbarreto/Api-Urna/contexts/election-operations/voting-engine"
	votingentities "github.com/Masterbarreto/Api-Urna/contexts/election-operations/voting-engine/domain/entities"
	authservice "github.com/Masterbarreto/Api-Urna/contexts/identity-access/auth-service"
	authentities "github.com/Masterbarreto/Api-Urna/contexts/identity-access/auth-service/domain/entities"
	auditservice "github.com/Masterbarreto/Api-Urna/contexts/internal-ops/audit-service"
	"github.com/Masterbarreto/Api-Urna/internal/platform/realtime"

	"golang.org/x/crypto/bcrypt"
)

type testEnv struct {
	server *httptest.Server
	voting votingengine.Module
	auth   authservice.Module
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	hub := realtime.NewHub(logger)

	voting := votingengine.NewInMemoryModule(realtime.Notifier{Hub: hub}, logger)
	booths := boothservice.NewInMemoryModule(logger)
	results := resultsservice.NewInMemoryModule(logger)
	auth := authservice.NewInMemoryModule([]byte("test-secret"), logger)
	audit := auditservice.NewInMemoryModule(logger)

	// The registry gets the real audit recorder so trail assertions see the
	// acting user flow end to end.
	registryStore := registrymemory.NewStore()
	registry := registryservice.NewModule(registryservice.Dependencies{
		Elections:  registryStore,
		Candidates: registryStore,
		Voters:     registryStore,
		Auditor:    audit.Recorder,
		Clock:      registryStore,
		IDGen:      registryStore,
		Logger:     logger,
	})
	registry.Store = registryStore

	srv := New(Modules{
		Voting:   voting,
		Registry: registry,
		Booths:   booths,
		Results:  results,
		Auth:     auth,
		Audit:    audit,
		Hub:      hub,
	}, Options{Logger: logger})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	return testEnv{server: ts, voting: voting, auth: auth}
}

func (env testEnv) seedUser(t *testing.T, email, password string, role authentities.Role) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	err = env.auth.Store.SaveUser(context.Background(), authentities.User{
		ID:           "user-" + email,
		Name:         email,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Active:       true,
	})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
}

func (env testEnv) login(t *testing.T, email, password string) string {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"email": email, "senha": password})
	resp, err := http.Post(env.server.URL+"/api/v1/auth/login", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("login request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login status = %d", resp.StatusCode)
	}
	var parsed struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	return parsed.Token
}

func (env testEnv) do(t *testing.T, method, path, token string, payload any) *http.Response {
	t.Helper()
	var body io.Reader
	if payload != nil {
		raw, _ := json.Marshal(payload)
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, env.server.URL+path, body)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

func (env testEnv) seedOpenElection(t *testing.T) {
	t.Helper()
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	env.voting.Store.SetNow(now)
	env.voting.Store.SetElection(votingentities.Election{
		ID:       "eleicao-1",
		Title:    "Gremio Estudantil 2026",
		StartsAt: now.Add(-time.Hour),
		EndsAt:   now.Add(time.Hour),
		Status:   votingentities.ElectionStatusActive,
	})
	env.voting.Store.SetCandidate(votingentities.Candidate{
		ID:         "cand-1",
		ElectionID: "eleicao-1",
		Number:     10,
		Name:       "Chapa Um",
	})
	env.voting.Store.SetVoter(votingentities.Voter{
		ID:           "voter-1",
		ElectionID:   "eleicao-1",
		Registration: "20260001",
		Name:         "Ana Souza",
	})
}

func TestHealthEndpoint(t *testing.T) {
	env := newTestEnv(t)

	resp, err := http.Get(env.server.URL + "/healthz")
	if err != nil {
		t.Fatalf("health request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	env := newTestEnv(t)

	for _, path := range []string{
		"/api/v1/eleicoes",
		"/api/v1/urnas",
		"/api/v1/auditoria",
		"/api/v1/dashboard/summary",
	} {
		resp := env.do(t, http.MethodGet, path, "", nil)
		resp.Body.Close()
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("GET %s status = %d, want 401", path, resp.StatusCode)
		}
	}
}

func TestOperatorCannotMutateRegistry(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "operador@urna.local", "senha123", authentities.RoleOperator)
	token := env.login(t, "operador@urna.local", "senha123")

	resp := env.do(t, http.MethodPost, "/api/v1/eleicoes", token, map[string]string{
		"titulo":      "Nova",
		"data_inicio": "2026-06-01T08:00:00Z",
		"data_fim":    "2026-06-01T18:00:00Z",
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", resp.StatusCode)
	}

	// Reads stay open to operators.
	list := env.do(t, http.MethodGet, "/api/v1/eleicoes", token, nil)
	list.Body.Close()
	if list.StatusCode != http.StatusOK {
		t.Fatalf("list status = %d, want 200", list.StatusCode)
	}
}

func TestAdminElectionLifecycleOverHTTP(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "admin@urna.local", "senha123", authentities.RoleAdmin)
	token := env.login(t, "admin@urna.local", "senha123")

	create := env.do(t, http.MethodPost, "/api/v1/eleicoes", token, map[string]string{
		"titulo":      "Gremio 2026",
		"data_inicio": "2026-06-01T08:00:00Z",
		"data_fim":    "2026-06-01T18:00:00Z",
	})
	defer create.Body.Close()
	if create.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d, want 201", create.StatusCode)
	}
	var created struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	if err := json.NewDecoder(create.Body).Decode(&created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	if created.Status != "criada" {
		t.Fatalf("status = %q, want criada", created.Status)
	}

	get := env.do(t, http.MethodGet, "/api/v1/eleicoes/"+created.ID, token, nil)
	get.Body.Close()
	if get.StatusCode != http.StatusOK {
		t.Fatalf("get status = %d, want 200", get.StatusCode)
	}

	missing := env.do(t, http.MethodGet, "/api/v1/eleicoes/nope", token, nil)
	missing.Body.Close()
	if missing.StatusCode != http.StatusNotFound {
		t.Fatalf("missing status = %d, want 404", missing.StatusCode)
	}
}

func TestBoothVoteFlow(t *testing.T) {
	env := newTestEnv(t)
	env.seedOpenElection(t)

	validate := env.do(t, http.MethodPost, "/api/v1/urna/eleitores/validar", "", map[string]string{
		"matricula": "20260001",
	})
	defer validate.Body.Close()
	if validate.StatusCode != http.StatusOK {
		t.Fatalf("validate status = %d, want 200", validate.StatusCode)
	}

	cast := env.do(t, http.MethodPost, "/api/v1/urna/votos", "", map[string]string{
		"eleitor_matricula": "20260001",
		"eleicao_id":        "eleicao-1",
		"candidato_id":      "cand-1",
	})
	defer cast.Body.Close()
	if cast.StatusCode != http.StatusCreated {
		t.Fatalf("cast status = %d, want 201", cast.StatusCode)
	}
	var receipt struct {
		HashVerificacao string `json:"hash_verificacao"`
		TipoVoto        string `json:"tipo_voto"`
	}
	if err := json.NewDecoder(cast.Body).Decode(&receipt); err != nil {
		t.Fatalf("decode receipt: %v", err)
	}
	if receipt.HashVerificacao == "" || receipt.TipoVoto != "candidato" {
		t.Fatalf("unexpected receipt: %+v", receipt)
	}

	again := env.do(t, http.MethodPost, "/api/v1/urna/votos", "", map[string]string{
		"eleitor_matricula": "20260001",
		"eleicao_id":        "eleicao-1",
		"candidato_id":      "cand-1",
	})
	again.Body.Close()
	if again.StatusCode != http.StatusConflict {
		t.Fatalf("second cast status = %d, want 409", again.StatusCode)
	}
}

func TestBoothPingUnknownNumber(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodPost, "/api/v1/urnas/42/ping", "", nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
}

func TestRealtimeStreamReceivesVote(t *testing.T) {
	env := newTestEnv(t)
	env.seedOpenElection(t)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, env.server.URL+"/api/v1/tempo-real/eleicoes/eleicao-1", nil)
	if err != nil {
		t.Fatalf("build stream request: %v", err)
	}
	stream, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("open stream: %v", err)
	}
	defer stream.Body.Close()
	if got := stream.Header.Get("Content-Type"); got != "text/event-stream" {
		t.Fatalf("content type = %q", got)
	}

	// The subscription is registered before the handler flushes headers, so
	// the vote below lands on it.
	cast := env.do(t, http.MethodPost, "/api/v1/urna/votos", "", map[string]string{
		"eleitor_matricula": "20260001",
		"eleicao_id":        "eleicao-1",
		"candidato_id":      "NULO",
	})
	cast.Body.Close()
	if cast.StatusCode != http.StatusCreated {
		t.Fatalf("cast status = %d, want 201", cast.StatusCode)
	}

	buf := make([]byte, 4096)
	deadline := time.Now().Add(2 * time.Second)
	var received bytes.Buffer
	for time.Now().Before(deadline) {
		n, err := stream.Body.Read(buf)
		if n > 0 {
			received.Write(buf[:n])
			if bytes.Contains(received.Bytes(), []byte("event: vote")) &&
				bytes.Contains(received.Bytes(), []byte(`"tipo_voto":"nulo"`)) {
				return
			}
		}
		if err != nil {
			break
		}
	}
	t.Fatalf("did not receive vote event, got: %s", received.String())
}

func TestExportResultsUnknownElection(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "admin@urna.local", "senha123", authentities.RoleAdmin)
	token := env.login(t, "admin@urna.local", "senha123")

	resp := env.do(t, http.MethodGet, "/api/v1/resultados/nope/exportar", token, nil)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
	if got := resp.Header.Get("Content-Type"); got != "application/json" {
		t.Fatalf("error content type = %q, want application/json", got)
	}
}

func TestAuditTrailCapturesAdminActions(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "admin@urna.local", "senha123", authentities.RoleAdmin)
	token := env.login(t, "admin@urna.local", "senha123")

	create := env.do(t, http.MethodPost, "/api/v1/eleicoes", token, map[string]string{
		"titulo":      "Auditada",
		"data_inicio": "2026-06-01T08:00:00Z",
		"data_fim":    "2026-06-01T18:00:00Z",
	})
	create.Body.Close()
	if create.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d, want 201", create.StatusCode)
	}

	list := env.do(t, http.MethodGet, "/api/v1/auditoria?acao=CRIACAO_ELEICAO", token, nil)
	defer list.Body.Close()
	if list.StatusCode != http.StatusOK {
		t.Fatalf("audit list status = %d, want 200", list.StatusCode)
	}
	var parsed struct {
		Items []struct {
			Acao          string `json:"acao"`
			TabelaAfetada string `json:"tabela_afetada"`
			UsuarioID     string `json:"usuario_id"`
		} `json:"items"`
		Total int64 `json:"total"`
	}
	if err := json.NewDecoder(list.Body).Decode(&parsed); err != nil {
		t.Fatalf("decode audit list: %v", err)
	}
	if parsed.Total == 0 {
		t.Fatal("expected at least one CREATE audit entry")
	}
	entry := parsed.Items[0]
	if entry.TabelaAfetada != "eleicoes" {
		t.Fatalf("tabela_afetada = %q, want eleicoes", entry.TabelaAfetada)
	}
	if entry.UsuarioID == "" {
		t.Fatal("expected audit entry to carry the acting user")
	}
}

func TestTokenRefreshAndMe(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "admin@urna.local", "senha123", authentities.RoleAdmin)
	token := env.login(t, "admin@urna.local", "senha123")

	me := env.do(t, http.MethodGet, "/api/v1/auth/me", token, nil)
	defer me.Body.Close()
	if me.StatusCode != http.StatusOK {
		t.Fatalf("me status = %d, want 200", me.StatusCode)
	}
	var user struct {
		Email string `json:"email"`
		Tipo  string `json:"tipo"`
	}
	if err := json.NewDecoder(me.Body).Decode(&user); err != nil {
		t.Fatalf("decode me: %v", err)
	}
	if user.Email != "admin@urna.local" || user.Tipo != "admin" {
		t.Fatalf("unexpected me payload: %+v", user)
	}

	refresh := env.do(t, http.MethodPost, "/api/v1/auth/refresh", token, nil)
	defer refresh.Body.Close()
	if refresh.StatusCode != http.StatusOK {
		t.Fatalf("refresh status = %d, want 200", refresh.StatusCode)
	}
	var renewed struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(refresh.Body).Decode(&renewed); err != nil {
		t.Fatalf("decode refresh: %v", err)
	}
	if renewed.Token == "" {
		t.Fatal("expected a renewed token")
	}

	logout := env.do(t, http.MethodPost, "/api/v1/auth/logout", renewed.Token, nil)
	logout.Body.Close()
	if logout.StatusCode != http.StatusNoContent {
		t.Fatalf("logout status = %d, want 204", logout.StatusCode)
	}
}

func TestGarbledBoothNumberRejected(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodPost, fmt.Sprintf("/api/v1/urnas/%s/ping", "abc"), "", nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}
