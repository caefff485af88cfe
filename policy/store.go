package policy

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
)

// DefaultSlotKey is the slot saved policies live in.
const DefaultSlotKey = "savedPolicies"

// Store reads and writes the saved policy collection through a Medium.
type Store struct {
	medium Medium
	key    string
	log    *slog.Logger

	mu sync.Mutex
}

// NewStore creates a store over medium. An empty key means DefaultSlotKey.
func NewStore(medium Medium, key string, log *slog.Logger) *Store {
	if key == "" {
		key = DefaultSlotKey
	}
	if log == nil {
		log = slog.Default()
	}
	return &Store{medium: medium, key: key, log: log}
}

// LoadAll returns the persisted collection. Missing, unreadable or malformed
// data yields an empty collection.
func (s *Store) LoadAll(ctx context.Context) []SavedPolicy {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(ctx)
}

// SaveAll overwrites the persisted collection.
func (s *Store) SaveAll(ctx context.Context, policies []SavedPolicy) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(ctx, policies)
}

// Get returns one saved policy.
func (s *Store) Get(ctx context.Context, id string) (SavedPolicy, bool) {
	return Find(s.LoadAll(ctx), id)
}

// Upsert reads the collection, replaces or appends p and writes it back.
func (s *Store) Upsert(ctx context.Context, p SavedPolicy) ([]SavedPolicy, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	policies := Upsert(s.loadLocked(ctx), p)
	if err := s.saveLocked(ctx, policies); err != nil {
		return nil, err
	}
	return policies, nil
}

// Remove reads the collection, drops id and writes it back. Unknown ids
// leave the collection as it was but still rewrite it.
func (s *Store) Remove(ctx context.Context, id string) ([]SavedPolicy, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	policies := Remove(s.loadLocked(ctx), id)
	if err := s.saveLocked(ctx, policies); err != nil {
		return nil, err
	}
	return policies, nil
}

func (s *Store) loadLocked(ctx context.Context) []SavedPolicy {
	const op = "policy.Store.LoadAll"

	data, err := s.medium.Read(ctx, s.key)
	if err != nil {
		s.log.Error("failed to read saved policies", slog.String("op", op), slog.String("key", s.key), slog.Any("error", err))
		return []SavedPolicy{}
	}
	if len(data) == 0 {
		return []SavedPolicy{}
	}

	var policies []SavedPolicy
	if err := json.Unmarshal(data, &policies); err != nil {
		s.log.Warn("discarding malformed saved policies",
			slog.String("op", op),
			slog.Any("error", &MalformedSlotError{Key: s.key, Err: err}),
		)
		return []SavedPolicy{}
	}
	if policies == nil {
		return []SavedPolicy{}
	}
	return policies
}

func (s *Store) saveLocked(ctx context.Context, policies []SavedPolicy) error {
	const op = "policy.Store.SaveAll"

	if policies == nil {
		policies = []SavedPolicy{}
	}
	data, err := json.Marshal(policies)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.medium.Write(ctx, s.key, data); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
