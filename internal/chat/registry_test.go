package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryRejectsBlankIdentity(t *testing.T) {
	cases := []struct {
		name     string
		username string
		room     string
	}{
		{"empty username", "", "general"},
		{"empty room", "alice", ""},
		{"whitespace username", "   ", "general"},
		{"whitespace room", "alice", " \t "},
		{"both empty", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			reg := NewRegistry()
			err := reg.Register("c1", tc.username, tc.room)
			require.ErrorIs(t, err, ErrInvalidIdentity)
			assert.Zero(t, reg.Len())
		})
	}
}

func TestRegistryMembersOfInsertionOrder(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register("c1", "alice", "general"))
	require.NoError(t, reg.Register("c2", "bob", "general"))
	require.NoError(t, reg.Register("c3", "carol", "random"))
	require.NoError(t, reg.Register("c4", "dave", "general"))

	assert.Equal(t, []string{"alice", "bob", "dave"}, reg.MembersOf("general"))
	assert.Equal(t, []string{"carol"}, reg.MembersOf("random"))
	assert.Empty(t, reg.MembersOf("empty-room"))
}

func TestRegistryOverwriteMovesEntry(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register("c1", "alice", "general"))
	require.NoError(t, reg.Register("c1", "alice2", "random"))

	assert.Empty(t, reg.MembersOf("general"))
	assert.Equal(t, []string{"alice2"}, reg.MembersOf("random"))
	assert.Equal(t, 1, reg.Len())

	id, ok := reg.Lookup("c1")
	require.True(t, ok)
	assert.Equal(t, Identity{Username: "alice2", Room: "random"}, id)
}

func TestRegistryUnregisterIsIdempotent(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register("c1", "alice", "general"))

	reg.Unregister("c1")
	reg.Unregister("c1") // second removal must be a no-op
	reg.Unregister("never-registered")

	_, ok := reg.Lookup("c1")
	assert.False(t, ok)
	assert.Zero(t, reg.Len())
}

func TestRegistryKeepsDuplicateDisplayNames(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register("c1", "alice", "general"))
	require.NoError(t, reg.Register("c2", "alice", "general"))

	// No uniqueness on display names: one entry per connection.
	assert.Equal(t, []string{"alice", "alice"}, reg.MembersOf("general"))
}
