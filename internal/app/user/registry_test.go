package user

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"relaychat/internal/pkg/errs"
)

func TestRegistry_Register(t *testing.T) {
	tests := []struct {
		name     string
		existing []string
		register string
		wantCode int
	}{
		{name: "first user", register: "alice"},
		{name: "distinct name", existing: []string{"alice"}, register: "bob"},
		{name: "case differs", existing: []string{"alice"}, register: "Alice"},
		{name: "surrounding whitespace is a different name", existing: []string{"alice"}, register: " alice "},
		{name: "empty name", register: "", wantCode: errs.ErrEmptyName},
		{name: "whitespace only", register: " \t\n ", wantCode: errs.ErrEmptyName},
		{name: "exact duplicate", existing: []string{"alice"}, register: "alice", wantCode: errs.ErrNameTaken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := NewRegistry()
			for _, n := range tt.existing {
				_, err := reg.Register(n)
				require.Nil(t, err)
			}
			before := reg.Snapshot()

			u, err := reg.Register(tt.register)

			if tt.wantCode != 0 {
				require.NotNil(t, err)
				assert.Equal(t, tt.wantCode, err.Code)
				assert.Equal(t, before, reg.Snapshot(), "failed registration must not mutate the registry")
				return
			}

			require.Nil(t, err)
			assert.Equal(t, tt.register, u.Name)
			assert.NotEmpty(t, u.ID)
			assert.Equal(t, len(tt.existing)+1, reg.Len())

			got, ok := reg.ByName(tt.register)
			assert.True(t, ok)
			assert.Equal(t, u, got)

			got, ok = reg.ByID(u.ID)
			assert.True(t, ok)
			assert.Equal(t, u, got)
		})
	}
}

func TestRegistry_RosterSizeMatchesSuccessfulJoins(t *testing.T) {
	reg := NewRegistry()
	ids := make(map[string]struct{})

	for i := 0; i < 50; i++ {
		u, err := reg.Register(fmt.Sprintf("user-%d", i))
		require.Nil(t, err)

		_, dup := ids[u.ID]
		assert.False(t, dup)
		ids[u.ID] = struct{}{}
	}

	assert.Equal(t, 50, reg.Len())
	assert.Len(t, reg.Snapshot(), 50)
}

func TestRegistry_RegenerateCollidingID(t *testing.T) {
	ids := []string{"fixed", "fixed", "fixed", "fresh"}
	next := 0
	reg := newRegistry(func() string {
		id := ids[next]
		next++
		return id
	})

	first, err := reg.Register("alice")
	require.Nil(t, err)
	assert.Equal(t, "fixed", first.ID)

	second, err := reg.Register("bob")
	require.Nil(t, err)
	assert.Equal(t, "fresh", second.ID)
}

func TestRegistry_Remove(t *testing.T) {
	reg := NewRegistry()
	alice, _ := reg.Register("alice")
	bob, _ := reg.Register("bob")
	carol, _ := reg.Register("carol")

	removed, ok := reg.RemoveByID(bob.ID)
	require.True(t, ok)
	assert.Equal(t, bob, removed)
	assert.Equal(t, []User{alice, carol}, reg.Snapshot())

	_, ok = reg.RemoveByID(bob.ID)
	assert.False(t, ok, "removing twice is a no-op")

	removed, ok = reg.RemoveByName("alice")
	require.True(t, ok)
	assert.Equal(t, alice, removed)
	assert.Equal(t, []User{carol}, reg.Snapshot())

	_, ok = reg.RemoveByName("nobody")
	assert.False(t, ok)

	_, ok = reg.ByName("alice")
	assert.False(t, ok)

	again, err := reg.Register("alice")
	require.Nil(t, err, "a released name can be registered again")
	assert.NotEqual(t, alice.ID, again.ID)
}

func TestRegistry_SnapshotOrderAndIsolation(t *testing.T) {
	reg := NewRegistry()

	empty := reg.Snapshot()
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	for _, n := range []string{"c", "a", "b"} {
		_, err := reg.Register(n)
		require.Nil(t, err)
	}

	snap := reg.Snapshot()
	require.Len(t, snap, 3)
	assert.Equal(t, "c", snap[0].Name)
	assert.Equal(t, "a", snap[1].Name)
	assert.Equal(t, "b", snap[2].Name)

	snap[0].Name = "mutated"
	_, ok := reg.ByName("c")
	assert.True(t, ok, "mutating a snapshot must not affect the registry")
}

func TestRegistry_ConcurrentSameName(t *testing.T) {
	reg := NewRegistry()

	const attempts = 64
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		taken     int
	)

	for n := 0; n < attempts; n++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := reg.Register("alice")

			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				successes++
			} else if err.Code == errs.ErrNameTaken {
				taken++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, attempts-1, taken)
	assert.Equal(t, 1, reg.Len())
}
