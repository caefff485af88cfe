/*
session.go - The working set behind the rule builder screen

PURPOSE:
  A Session holds the one rule list being edited, the id of the saved policy
  it was loaded from (if any) and the saved policy store. Every UI gesture
  maps to one method:

    onRuleAdd              -> OnRuleAdd
    onRuleFieldChange      -> OnRuleFieldChange
    onRuleDelete           -> OnRuleDelete
    onReorder              -> OnReorder
    onSavePolicy           -> OnSavePolicy
    onLoadPolicyForEdit    -> OnLoadPolicyForEdit
    onDeleteSavedPolicy    -> OnDeleteSavedPolicy

SERIALIZATION:
  A mutex serializes gestures, so derived-row maintenance is atomic relative
  to the update that triggered it. The engine returns a new list on every
  call; the session swaps it in and hands out copies.

EDITING STATE:
  After OnLoadPolicyForEdit the next save replaces that policy in place and
  keeps its creation time. Reset and LoadPreset start a new, unsaved policy.

SEE ALSO:
  - rules/engine.go: list transforms
  - policy/store.go: persistence
  - presets.go: sample policies
*/
package workspace

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/warp/leave-rules/policy"
	"github.com/warp/leave-rules/rules"
	"github.com/warp/leave-rules/summary"
)

// Session is a single working set plus its saved policy store.
type Session struct {
	engine *rules.Engine
	store  *policy.Store
	log    *slog.Logger
	now    func() time.Time
	newID  func() string

	mu        sync.Mutex
	list      []rules.Rule
	editingID string
}

// Option configures a Session.
type Option func(*Session)

// WithClock overrides the time source used for creation timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithPolicyIDGenerator overrides saved policy id generation.
func WithPolicyIDGenerator(fn func() string) Option {
	return func(s *Session) { s.newID = fn }
}

// WithLogger sets the session logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Session) { s.log = log }
}

// NewSession starts a session on a freshly initialized rule list.
func NewSession(engine *rules.Engine, store *policy.Store, opts ...Option) *Session {
	s := &Session{
		engine: engine,
		store:  store,
		log:    slog.Default(),
		now:    time.Now,
		newID:  policy.NewID,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.list = engine.Initialize()
	return s
}

// State is a point-in-time copy of the session.
type State struct {
	Rules     []rules.Rule
	Rows      []rules.RowView
	CanSave   bool
	EditingID string
}

// =============================================================================
// READS
// =============================================================================

// Rules returns a copy of the working list.
func (s *Session) Rules() []rules.Rule {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.list)
}

// State returns the working list, its row views and the save gate.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

// EditingID is the saved policy the working list was loaded from, or "".
func (s *Session) EditingID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editingID
}

// CanSave reports whether every row has an operator and a value.
func (s *Session) CanSave() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return rules.IsPolicyValid(s.list)
}

// Summary explains the working list.
func (s *Session) Summary() summary.Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return summary.SummarizeRules(s.list)
}

// =============================================================================
// RULE GESTURES
// =============================================================================

// OnRuleAdd appends a blank row.
func (s *Session) OnRuleAdd() State {
	return s.apply(s.engine.AddRule)
}

// OnRuleFieldChange merges patch into row id. Unknown ids are a no-op.
func (s *Session) OnRuleFieldChange(id string, patch rules.Patch) State {
	return s.apply(func(list []rules.Rule) []rules.Rule {
		return s.engine.UpdateRule(list, id, patch)
	})
}

// OnRuleDelete removes row id unless it is a default row.
func (s *Session) OnRuleDelete(id string) State {
	return s.apply(func(list []rules.Rule) []rules.Rule {
		return s.engine.DeleteRule(list, id)
	})
}

// OnReorder moves the row fromID to the position of toID.
func (s *Session) OnReorder(fromID, toID string) State {
	return s.apply(func(list []rules.Rule) []rules.Rule {
		return s.engine.ReorderByID(list, fromID, toID)
	})
}

// Reset starts a new, unsaved policy from the seeded list.
func (s *Session) Reset() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.list = s.engine.Initialize()
	s.editingID = ""
	return s.stateLocked()
}

// =============================================================================
// SAVED POLICY GESTURES
// =============================================================================

// OnSavePolicy snapshots the working list. While editing a saved policy the
// snapshot replaces it in place, keeping its id and creation time; a blank
// name keeps its name. Otherwise a new policy is appended and a blank name
// becomes "Policy N".
func (s *Session) OnSavePolicy(ctx context.Context, name string) (policy.SavedPolicy, error) {
	const op = "workspace.Session.OnSavePolicy"

	s.mu.Lock()
	defer s.mu.Unlock()

	if missing := rules.Incomplete(s.list); len(missing) > 0 {
		return policy.SavedPolicy{}, &IncompletePolicyError{RuleIDs: missing}
	}

	name = strings.TrimSpace(name)
	existing := s.store.LoadAll(ctx)

	var saved policy.SavedPolicy
	if prev, ok := policy.Find(existing, s.editingID); ok {
		if name == "" {
			name = prev.Name
		}
		saved = policy.Snapshot(prev.ID, name, prev.CreatedAt, s.list)
	} else {
		if name == "" {
			name = policy.DefaultName(len(existing))
		}
		saved = policy.Snapshot(s.newID(), name, s.now(), s.list)
	}

	if _, err := s.store.Upsert(ctx, saved); err != nil {
		return policy.SavedPolicy{}, fmt.Errorf("%s: %w", op, err)
	}
	s.editingID = saved.ID
	s.log.Info("policy saved", slog.String("id", saved.ID), slog.String("name", saved.Name), slog.Int("rules", len(saved.Rules)))
	return saved, nil
}

// OnLoadPolicyForEdit replaces the working list with a saved policy's rows.
// An unknown id leaves the session unchanged.
func (s *Session) OnLoadPolicyForEdit(ctx context.Context, policyID string) (State, error) {
	const op = "workspace.Session.OnLoadPolicyForEdit"

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.store.Get(ctx, policyID)
	if !ok {
		return s.stateLocked(), fmt.Errorf("%s: %q: %w", op, policyID, policy.ErrPolicyNotFound)
	}
	s.list = s.engine.Rehydrate(p.ID, p.Rules)
	s.editingID = p.ID
	return s.stateLocked(), nil
}

// OnDeleteSavedPolicy removes a saved policy. Deleting the policy being
// edited turns the working list into a new, unsaved policy.
func (s *Session) OnDeleteSavedPolicy(ctx context.Context, policyID string) ([]policy.SavedPolicy, error) {
	const op = "workspace.Session.OnDeleteSavedPolicy"

	s.mu.Lock()
	defer s.mu.Unlock()

	remaining, err := s.store.Remove(ctx, policyID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if s.editingID == policyID {
		s.editingID = ""
	}
	return remaining, nil
}

// SavedPolicies returns the persisted collection in saved order.
func (s *Session) SavedPolicies(ctx context.Context) []policy.SavedPolicy {
	return s.store.LoadAll(ctx)
}

// SavedPolicy returns one persisted policy.
func (s *Session) SavedPolicy(ctx context.Context, policyID string) (policy.SavedPolicy, error) {
	p, ok := s.store.Get(ctx, policyID)
	if !ok {
		return policy.SavedPolicy{}, fmt.Errorf("workspace.Session.SavedPolicy: %q: %w", policyID, policy.ErrPolicyNotFound)
	}
	return p, nil
}

// =============================================================================
// INTERNALS
// =============================================================================

func (s *Session) apply(fn func([]rules.Rule) []rules.Rule) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.list = fn(s.list)
	return s.stateLocked()
}

func (s *Session) stateLocked() State {
	return State{
		Rules:     slices.Clone(s.list),
		Rows:      s.engine.View(s.list),
		CanSave:   rules.IsPolicyValid(s.list),
		EditingID: s.editingID,
	}
}
