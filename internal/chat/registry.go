package chat

import (
	"sort"
	"strings"
)

// Identity is what a connection supplied when it joined a room. It is
// immutable for the lifetime of the registration; a client changing its name
// or room reconnects instead.
type Identity struct {
	Username string
	Room     string
}

type registryEntry struct {
	Identity
	seq uint64 // registration order, drives MembersOf ordering
}

// Registry is the single source of truth for presence: it maps each live
// connection ID to the identity it registered at join time. Entries exist
// only while the connection is in a room and are removed synchronously on
// disconnect.
//
// Registry is not goroutine-safe on its own; Service serializes all access.
type Registry struct {
	entries map[string]registryEntry
	seq     uint64
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]registryEntry)}
}

// Register inserts or overwrites the entry for connID. Display names are not
// required to be unique.
func (r *Registry) Register(connID, username, room string) error {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(room) == "" {
		return ErrInvalidIdentity
	}
	r.seq++
	r.entries[connID] = registryEntry{
		Identity: Identity{Username: username, Room: room},
		seq:      r.seq,
	}
	return nil
}

// Unregister removes the entry for connID. Removing an unknown ID is a no-op
// so a disconnect racing an explicit leave stays safe.
func (r *Registry) Unregister(connID string) {
	delete(r.entries, connID)
}

func (r *Registry) Lookup(connID string) (Identity, bool) {
	e, ok := r.entries[connID]
	return e.Identity, ok
}

// MembersOf returns the display names currently registered to room, in
// registration order. The snapshot is recomputed from scratch on every call
// so it can never go stale; the linear scan is deliberate, rooms hold tens of
// connections, not millions.
func (r *Registry) MembersOf(room string) []string {
	matched := make([]registryEntry, 0, len(r.entries))
	for _, e := range r.entries {
		if e.Room == room {
			matched = append(matched, e)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].seq < matched[j].seq })

	names := make([]string, len(matched))
	for i, e := range matched {
		names[i] = e.Username
	}
	return names
}

func (r *Registry) Len() int { return len(r.entries) }
