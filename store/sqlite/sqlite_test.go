package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/leave-rules/policy"
	"github.com/warp/leave-rules/rules"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestReadMissingSlot(t *testing.T) {
	s := newTestStore(t)

	data, err := s.Read(context.Background(), "nothing")
	require.NoError(t, err)
	assert.Nil(t, data)

	_, ok, err := s.UpdatedAt(context.Background(), "nothing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestWriteOverwrites(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.Write(ctx, "k", []byte(`[1]`)))
	require.NoError(t, s.Write(ctx, "k", []byte(`[2]`)))

	data, err := s.Read(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `[2]`, string(data))

	at, ok, err := s.UpdatedAt(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.WithinDuration(t, time.Now(), at, time.Minute)
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	require.NoError(t, s.Write(ctx, "k", []byte(`x`)))

	require.NoError(t, s.Reset(ctx))

	data, err := s.Read(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestPolicyStoreOverSQLite(t *testing.T) {
	// GIVEN: a policy store persisted to a database file
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "policies.db")
	s, err := New(path)
	require.NoError(t, err)

	saved := policy.SavedPolicy{
		ID:        "p1",
		Name:      "Canada Annual",
		CreatedAt: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
		Rules: []rules.Fields{
			{RuleType: "If", ConditionType: "Country", Operator: "=", ConditionValue: "Canada"},
		},
	}
	_, err = policy.NewStore(s, "", nil).Upsert(ctx, saved)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	// WHEN: the database is reopened
	reopened, err := New(path)
	require.NoError(t, err)
	defer reopened.Close()

	// THEN: the policy is still there
	got := policy.NewStore(reopened, "", nil).LoadAll(ctx)
	require.Len(t, got, 1)
	assert.Equal(t, saved, got[0])
}

func TestMalformedSlotIsEmpty(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	require.NoError(t, s.Write(ctx, policy.DefaultSlotKey, []byte("garbage")))

	assert.Empty(t, policy.NewStore(s, "", nil).LoadAll(ctx))
}

func TestUpdatedAt_CorruptTimestamp(t *testing.T) {
	// GIVEN: a slot whose timestamp was damaged outside the store
	ctx := context.Background()
	s := newTestStore(t)
	require.NoError(t, s.Write(ctx, "k", []byte(`[]`)))
	_, err := s.db.ExecContext(ctx, "UPDATE slots SET updated_at = 'yesterday-ish' WHERE key = ?", "k")
	require.NoError(t, err)

	// WHEN: reading the timestamp
	at, ok, err := s.UpdatedAt(ctx, "k")

	// THEN: the parse failure is reported instead of a zero time
	require.Error(t, err)
	assert.Contains(t, err.Error(), `slot "k"`)
	assert.True(t, ok)
	assert.True(t, at.IsZero())
}
