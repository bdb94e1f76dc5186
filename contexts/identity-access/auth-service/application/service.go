package application

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/Masterbarreto/Api-Urna/contexts/identity-access/auth-service/domain/entities"
	domainerrors "github.com/Masterbarreto/Api-Urna/contexts/identity-access/auth-service/domain/errors"
	"github.com/Masterbarreto/Api-Urna/contexts/identity-access/auth-service/ports"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const DefaultTokenTTL = 8 * time.Hour

// Claims is the JWT payload issued on login. Role travels in the token so
// the middleware can enforce it without a user lookup per request.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"tipo"`
	jwt.RegisteredClaims
}

type Service struct {
	Users    ports.UserRepository
	Auditor  ports.Auditor
	Clock    ports.Clock
	IDGen    ports.IDGenerator
	Secret   []byte
	TokenTTL time.Duration
	Logger   *slog.Logger
}

type Session struct {
	Token     string
	ExpiresAt time.Time
	User      entities.User
}

// Login verifies the password against the stored bcrypt hash and issues a
// signed token. Unknown email and wrong password both return
// ErrInvalidCredentials so the response does not leak which one failed.
func (s Service) Login(ctx context.Context, email, password string) (Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return Session{}, domainerrors.ErrInvalidInput
	}
	user, err := s.Users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrUserNotFound) {
			return Session{}, domainerrors.ErrInvalidCredentials
		}
		return Session{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return Session{}, domainerrors.ErrInvalidCredentials
	}
	if !user.Active {
		return Session{}, domainerrors.ErrUserInactive
	}

	now := s.now()
	session, err := s.issue(user, now)
	if err != nil {
		return Session{}, err
	}
	if err := s.Users.TouchLastLogin(ctx, user.ID, now); err != nil {
		s.logger().Warn("last login update failed",
			"event", "auth_last_login_update_failed",
			"module", "identity-access/auth-service",
			"layer", "application",
			"user_id", user.ID,
			"error", err.Error(),
		)
	}
	s.audit(ctx, "LOGIN", user.ID, nil)
	s.logger().Info("user logged in",
		"event", "auth_login_succeeded",
		"module", "identity-access/auth-service",
		"layer", "application",
		"user_id", user.ID,
	)
	return session, nil
}

// Authenticate parses and verifies a bearer token, returning its claims.
func (s Service) Authenticate(tokenString string) (Claims, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(
		tokenString,
		&claims,
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, domainerrors.ErrInvalidToken
			}
			return s.Secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		return Claims{}, domainerrors.ErrInvalidToken
	}
	return claims, nil
}

// Me loads the current user behind a verified token.
func (s Service) Me(ctx context.Context, claims Claims) (entities.User, error) {
	user, err := s.Users.GetUser(ctx, claims.Subject)
	if err != nil {
		return entities.User{}, err
	}
	if !user.Active {
		return entities.User{}, domainerrors.ErrUserInactive
	}
	return user, nil
}

// Refresh issues a new token for a still-valid session.
func (s Service) Refresh(ctx context.Context, claims Claims) (Session, error) {
	user, err := s.Me(ctx, claims)
	if err != nil {
		return Session{}, err
	}
	return s.issue(user, s.now())
}

// Logout only leaves an audit trail; tokens are stateless and expire on
// their own.
func (s Service) Logout(ctx context.Context, claims Claims) {
	s.audit(ctx, "LOGOUT", claims.Subject, nil)
}

// EnsureAdmin creates the bootstrap admin account when no user owns the
// given email yet. Entrypoints call it with config credentials.
func (s Service) EnsureAdmin(ctx context.Context, name, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return domainerrors.ErrInvalidInput
	}
	if _, err := s.Users.GetUserByEmail(ctx, email); err == nil {
		return nil
	} else if !errors.Is(err, domainerrors.ErrUserNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	id, err := s.IDGen.NewID(ctx)
	if err != nil {
		return err
	}
	now := s.now()
	user := entities.User{
		ID:           id,
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: string(hash),
		Role:         entities.RoleAdmin,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Users.SaveUser(ctx, user); err != nil {
		return err
	}
	s.logger().Info("bootstrap admin created",
		"event", "auth_admin_seeded",
		"module", "identity-access/auth-service",
		"layer", "application",
		"user_id", user.ID,
	)
	return nil
}

func (s Service) issue(user entities.User, now time.Time) (Session, error) {
	expiresAt := now.Add(s.tokenTTL())
	claims := Claims{
		Email: user.Email,
		Role:  string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
	if err != nil {
		return Session{}, err
	}
	return Session{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user,
	}, nil
}

func (s Service) audit(ctx context.Context, action string, userID string, data map[string]any) {
	if s.Auditor == nil {
		return
	}
	if err := s.Auditor.Record(ctx, action, "usuarios", userID, data); err != nil {
		s.logger().Warn("audit record failed",
			"event", "auth_audit_failed",
			"module", "identity-access/auth-service",
			"layer", "application",
			"action", action,
			"error", err.Error(),
		)
	}
}

func (s Service) tokenTTL() time.Duration {
	if s.TokenTTL > 0 {
		return s.TokenTTL
	}
	return DefaultTokenTTL
}

func (s Service) now() time.Time {
	if s.Clock != nil {
		return s.Clock.Now().UTC()
	}
	return time.Now().UTC()
}

func (s Service) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.Default()
	}
	return s.Logger
}
