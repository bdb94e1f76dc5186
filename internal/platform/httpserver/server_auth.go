package httpserver

import (
	"encoding/json"
	"net/http"
	"strings"

	authapp "github.com/Masterbarreto/Api-Urna/contexts/identity-access/auth-service/application"
	authhttp "github.com/Masterbarreto/Api-Urna/contexts/identity-access/auth-service/transport/http"
	auditapp "github.com/Masterbarreto/Api-Urna/contexts/internal-ops/audit-service/application"
)

// authenticated verifies the bearer token and attaches both the claims and
// the audit request meta to the context.
func (s *Server) authenticated(next func(http.ResponseWriter, *http.Request, authapp.Claims)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := s.bearerClaims(w, r)
		if !ok {
			return
		}
		ctx := auditapp.WithMeta(r.Context(), auditapp.Meta{
			UserID:    claims.Subject,
			IPAddress: resolveClientIP(r),
			UserAgent: r.UserAgent(),
		})
		next(w, r.WithContext(ctx), claims)
	}
}

// adminOnly is authenticated plus the admin role requirement. Operators keep
// read access; only admins mutate.
func (s *Server) adminOnly(next func(http.ResponseWriter, *http.Request, authapp.Claims)) http.HandlerFunc {
	return s.authenticated(func(w http.ResponseWriter, r *http.Request, claims authapp.Claims) {
		if claims.Role != "admin" {
			writeError(w, http.StatusForbidden, "forbidden", "admin role required")
			return
		}
		next(w, r, claims)
	})
}

func (s *Server) bearerClaims(w http.ResponseWriter, r *http.Request) (authapp.Claims, bool) {
	header := r.Header.Get("Authorization")
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || strings.TrimSpace(token) == "" {
		writeError(w, http.StatusUnauthorized, "missing_token", "bearer token is required")
		return authapp.Claims{}, false
	}
	claims, err := s.auth.Service.Authenticate(strings.TrimSpace(token))
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid_token", "token is invalid or expired")
		return authapp.Claims{}, false
	}
	return claims, true
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req authhttp.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	ctx := auditapp.WithMeta(r.Context(), auditapp.Meta{
		IPAddress: resolveClientIP(r),
		UserAgent: r.UserAgent(),
	})
	resp, err := s.auth.Handler.LoginHandler(ctx, req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request, claims authapp.Claims) {
	resp, err := s.auth.Handler.MeHandler(r.Context(), claims)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request, claims authapp.Claims) {
	resp, err := s.auth.Handler.RefreshHandler(r.Context(), claims)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request, claims authapp.Claims) {
	s.auth.Handler.LogoutHandler(r.Context(), claims)
	w.WriteHeader(http.StatusNoContent)
}
