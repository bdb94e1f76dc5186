package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Masterbarreto/Api-Urna/contexts/internal-ops/audit-service/domain/entities"
	domainerrors "github.com/Masterbarreto/Api-Urna/contexts/internal-ops/audit-service/domain/errors"

	"github.com/google/uuid"
)

// Store is the in-memory implementation of the audit log.
type Store struct {
	mu      sync.RWMutex
	entries []entities.Entry
	now     *time.Time
}

func NewStore() *Store {
	return &Store{}
}

// SetNow pins the store clock for deterministic tests.
func (s *Store) SetNow(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fixed := now.UTC()
	s.now = &fixed
}

func (s *Store) Append(_ context.Context, entry entities.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	return nil
}

func (s *Store) GetEntry(_ context.Context, entryID string) (entities.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, entry := range s.entries {
		if entry.ID == strings.TrimSpace(entryID) {
			return entry, nil
		}
	}
	return entities.Entry{}, domainerrors.ErrEntryNotFound
}

func (s *Store) ListEntries(
	_ context.Context,
	filter entities.Filter,
	page, limit int,
) (entities.Page, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := make([]entities.Entry, 0)
	for _, entry := range s.entries {
		if matchesFilter(entry, filter) {
			matches = append(matches, entry)
		}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].CreatedAt.After(matches[j].CreatedAt) })

	total := int64(len(matches))
	start := (page - 1) * limit
	if start > len(matches) {
		start = len(matches)
	}
	end := start + limit
	if end > len(matches) {
		end = len(matches)
	}
	return entities.Page{
		Items: matches[start:end],
		Total: total,
		Page:  page,
		Limit: limit,
	}, nil
}

func (s *Store) CountByAction(_ context.Context, filter entities.Filter) ([]entities.ActionCount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[string]int64)
	for _, entry := range s.entries {
		if matchesFilter(entry, filter) {
			counts[entry.Action]++
		}
	}
	items := make([]entities.ActionCount, 0, len(counts))
	for action, count := range counts {
		items = append(items, entities.ActionCount{Action: action, Count: count})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Count != items[j].Count {
			return items[i].Count > items[j].Count
		}
		return items[i].Action < items[j].Action
	})
	return items, nil
}

func matchesFilter(entry entities.Entry, filter entities.Filter) bool {
	if filter.UserID != "" && entry.UserID != filter.UserID {
		return false
	}
	if filter.Action != "" && entry.Action != filter.Action {
		return false
	}
	if filter.Table != "" && entry.Table != filter.Table {
		return false
	}
	if filter.Since != nil && entry.CreatedAt.Before(*filter.Since) {
		return false
	}
	if filter.Until != nil && entry.CreatedAt.After(*filter.Until) {
		return false
	}
	return true
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
