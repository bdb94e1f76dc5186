package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Masterbarreto/Api-Urna/contexts/election-operations/booth-service/domain/entities"
	domainerrors "github.com/Masterbarreto/Api-Urna/contexts/election-operations/booth-service/domain/errors"

	"github.com/google/uuid"
)

// Store is the in-memory implementation of the booth ports.
type Store struct {
	mu     sync.RWMutex
	booths map[string]entities.Booth
	now    *time.Time
}

func NewStore() *Store {
	return &Store{booths: make(map[string]entities.Booth)}
}

// SetNow pins the store clock for deterministic staleness tests.
func (s *Store) SetNow(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fixed := now.UTC()
	s.now = &fixed
}

func (s *Store) SaveBooth(_ context.Context, booth entities.Booth) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.booths[booth.ID] = booth
	return nil
}

func (s *Store) GetBooth(_ context.Context, boothID string) (entities.Booth, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	booth, ok := s.booths[strings.TrimSpace(boothID)]
	if !ok {
		return entities.Booth{}, domainerrors.ErrBoothNotFound
	}
	return booth, nil
}

func (s *Store) GetBoothByNumber(_ context.Context, number int) (entities.Booth, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, booth := range s.booths {
		if booth.Number == number {
			return booth, nil
		}
	}
	return entities.Booth{}, domainerrors.ErrBoothNotFound
}

func (s *Store) ListBooths(_ context.Context) ([]entities.Booth, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.Booth, 0, len(s.booths))
	for _, booth := range s.booths {
		items = append(items, booth)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Number < items[j].Number })
	return items, nil
}

func (s *Store) DeleteBooth(_ context.Context, boothID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.booths, boothID)
	return nil
}

func (s *Store) TouchPing(_ context.Context, boothID string, at time.Time, ip string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	booth, ok := s.booths[boothID]
	if !ok {
		return domainerrors.ErrBoothNotFound
	}
	ping := at
	booth.LastPing = &ping
	if ip != "" {
		booth.IPAddress = ip
	}
	booth.UpdatedAt = at
	s.booths[boothID] = booth
	return nil
}

func (s *Store) UpdateConnection(
	_ context.Context,
	boothID string,
	state entities.ConnectionState,
	at time.Time,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	booth, ok := s.booths[boothID]
	if !ok {
		return domainerrors.ErrBoothNotFound
	}
	booth.Connection = state
	booth.UpdatedAt = at
	s.booths[boothID] = booth
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
