package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"github.com/Masterbarreto/Api-Urna/contexts/identity-access/auth-service/application"
	"github.com/Masterbarreto/Api-Urna/contexts/identity-access/auth-service/domain/entities"
	httptransport "github.com/Masterbarreto/Api-Urna/contexts/identity-access/auth-service/transport/http"
)

type Handler struct {
	Auth   application.Service
	Logger *slog.Logger
}

// LoginHandler godoc
// @Summary Authenticate and issue a JWT
// @Tags auth
// @Accept json
// @Produce json
// @Param request body http.LoginRequest true "credentials"
// @Success 200 {object} http.LoginResponse
// @Failure 401 {object} http.ErrorResponse
// @Router /api/v1/auth/login [post]
func (h Handler) LoginHandler(
	ctx context.Context,
	req httptransport.LoginRequest,
) (httptransport.LoginResponse, error) {
	session, err := h.Auth.Login(ctx, req.Email, req.Senha)
	if err != nil {
		return httptransport.LoginResponse{}, err
	}
	return sessionResponse(session), nil
}

// MeHandler godoc
// @Summary Current authenticated user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} http.UserResponse
// @Failure 401 {object} http.ErrorResponse
// @Router /api/v1/auth/me [get]
func (h Handler) MeHandler(ctx context.Context, claims application.Claims) (httptransport.UserResponse, error) {
	user, err := h.Auth.Me(ctx, claims)
	if err != nil {
		return httptransport.UserResponse{}, err
	}
	return userResponse(user), nil
}

// RefreshHandler godoc
// @Summary Issue a fresh token for a valid session
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} http.LoginResponse
// @Failure 401 {object} http.ErrorResponse
// @Router /api/v1/auth/refresh [post]
func (h Handler) RefreshHandler(
	ctx context.Context,
	claims application.Claims,
) (httptransport.LoginResponse, error) {
	session, err := h.Auth.Refresh(ctx, claims)
	if err != nil {
		return httptransport.LoginResponse{}, err
	}
	return sessionResponse(session), nil
}

// LogoutHandler godoc
// @Summary Record a logout
// @Tags auth
// @Security BearerAuth
// @Success 204
// @Router /api/v1/auth/logout [post]
func (h Handler) LogoutHandler(ctx context.Context, claims application.Claims) {
	h.Auth.Logout(ctx, claims)
}

func sessionResponse(session application.Session) httptransport.LoginResponse {
	return httptransport.LoginResponse{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt.Format(time.RFC3339),
		Usuario:   userResponse(session.User),
	}
}

func userResponse(user entities.User) httptransport.UserResponse {
	resp := httptransport.UserResponse{
		ID:    user.ID,
		Nome:  user.Name,
		Email: user.Email,
		Tipo:  string(user.Role),
		Ativo: user.Active,
	}
	if user.LastLogin != nil {
		lastLogin := user.LastLogin.Format(time.RFC3339)
		resp.UltimoLogin = &lastLogin
	}
	return resp
}
