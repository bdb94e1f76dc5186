package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/Masterbarreto/Api-Urna/contexts/identity-access/auth-service/domain/entities"
	domainerrors "github.com/Masterbarreto/Api-Urna/contexts/identity-access/auth-service/domain/errors"

	"github.com/google/uuid"
)

// Store is the in-memory implementation of the auth ports.
type Store struct {
	mu    sync.RWMutex
	users map[string]entities.User
	now   *time.Time
}

func NewStore() *Store {
	return &Store{users: make(map[string]entities.User)}
}

// SetNow pins the store clock for deterministic token expiry tests.
func (s *Store) SetNow(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fixed := now.UTC()
	s.now = &fixed
}

func (s *Store) SaveUser(_ context.Context, user entities.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, existing := range s.users {
		if id != user.ID && existing.Email == user.Email {
			return domainerrors.ErrDuplicateEmail
		}
	}
	s.users[user.ID] = user
	return nil
}

func (s *Store) GetUser(_ context.Context, userID string) (entities.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[strings.TrimSpace(userID)]
	if !ok {
		return entities.User{}, domainerrors.ErrUserNotFound
	}
	return user, nil
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (entities.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, user := range s.users {
		if user.Email == email {
			return user, nil
		}
	}
	return entities.User{}, domainerrors.ErrUserNotFound
}

func (s *Store) TouchLastLogin(_ context.Context, userID string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[userID]
	if !ok {
		return domainerrors.ErrUserNotFound
	}
	login := at
	user.LastLogin = &login
	user.UpdatedAt = at
	s.users[userID] = user
	return nil
}

func (s *Store) Now() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.now != nil {
		return *s.now
	}
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
