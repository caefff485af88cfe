/*
Package policy keeps the collection of saved leave policies.

PURPOSE:
  A saved policy is an immutable snapshot of a working rule list: its rule
  tuples in working-list order, without row ids or default flags. The
  collection is persisted as one JSON array in a single key-value slot.

PERSISTENCE CONTRACT:
  - Reads never fail: a missing or unparsable slot is an empty collection.
    Unparsable data is logged, not propagated.
  - Writes always store the whole collection (last write wins).
  - Upsert replaces an entry with the same id in place; otherwise appends.

SEE ALSO:
  - store.go:        Store over a Medium
  - medium.go:       Medium interface + in-memory implementation
  - store/sqlite:    SQLite-backed Medium
  - store/mysql:     MySQL-backed Medium
*/
package policy

import (
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/warp/leave-rules/rules"
)

// SavedPolicy is a named snapshot of a rule list.
type SavedPolicy struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	CreatedAt time.Time      `json:"createdAt"`
	Rules     []rules.Fields `json:"rules"`
}

// NewID returns a fresh policy id.
func NewID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// DefaultName is the name given to a policy saved without one, where count
// is the number of policies saved so far.
func DefaultName(count int) string {
	return fmt.Sprintf("Policy %d", count+1)
}

// Snapshot builds a policy from a working list.
func Snapshot(id, name string, createdAt time.Time, list []rules.Rule) SavedPolicy {
	return SavedPolicy{
		ID:        id,
		Name:      name,
		CreatedAt: createdAt,
		Rules:     rules.FieldsOf(list),
	}
}

// =============================================================================
// COLLECTION HELPERS
// =============================================================================

// Find returns the policy with the given id.
func Find(policies []SavedPolicy, id string) (SavedPolicy, bool) {
	i := slices.IndexFunc(policies, func(p SavedPolicy) bool { return p.ID == id })
	if i < 0 {
		return SavedPolicy{}, false
	}
	return policies[i], true
}

// Upsert replaces the policy with p.ID in place, or appends p.
func Upsert(policies []SavedPolicy, p SavedPolicy) []SavedPolicy {
	out := slices.Clone(policies)
	i := slices.IndexFunc(out, func(q SavedPolicy) bool { return q.ID == p.ID })
	if i < 0 {
		return append(out, p)
	}
	out[i] = p
	return out
}

// Remove drops the policy with the given id. Unknown ids are a no-op.
func Remove(policies []SavedPolicy, id string) []SavedPolicy {
	return slices.DeleteFunc(slices.Clone(policies), func(p SavedPolicy) bool { return p.ID == id })
}
