package ws

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouterDispatchesTypedHandler(t *testing.T) {
	r := NewRouter()

	var got JoinRoomBody
	Register(r, "join_room", func(ctx context.Context, c *ConnContext, req JoinRoomBody) error {
		got = req
		return nil
	})

	env := Envelope{
		Event: "join_room",
		Body:  json.RawMessage(`{"username":"alice","room":"general"}`),
	}
	require.NoError(t, r.dispatch(context.Background(), &ConnContext{}, env))
	assert.Equal(t, JoinRoomBody{Username: "alice", Room: "general"}, got)
}

func TestRouterDispatchesEmptyBody(t *testing.T) {
	r := NewRouter()

	called := false
	Register(r, "typing", func(ctx context.Context, c *ConnContext, req TypingBody) error {
		called = true
		return nil
	})

	require.NoError(t, r.dispatch(context.Background(), &ConnContext{}, Envelope{Event: "typing"}))
	assert.True(t, called)
}

func TestRouterUnknownEvent(t *testing.T) {
	r := NewRouter()
	err := r.dispatch(context.Background(), &ConnContext{}, Envelope{Event: "no_such_event"})
	require.ErrorIs(t, err, errUnknownEvent)
}

func TestRouterMalformedBody(t *testing.T) {
	r := NewRouter()
	Register(r, "join_room", func(ctx context.Context, c *ConnContext, req JoinRoomBody) error {
		t.Fatal("handler must not run on a malformed body")
		return nil
	})

	env := Envelope{Event: "join_room", Body: json.RawMessage(`{"username":42}`)}
	require.Error(t, r.dispatch(context.Background(), &ConnContext{}, env))
}

func TestRegisterEmptyEventPanics(t *testing.T) {
	r := NewRouter()
	require.Panics(t, func() {
		Register(r, "", func(ctx context.Context, c *ConnContext, req struct{}) error { return nil })
	})
}
