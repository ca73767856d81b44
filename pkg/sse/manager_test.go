package sse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receiveEvent(t *testing.T, c *client) Event {
	t.Helper()
	select {
	case ev := <-c.send:
		return ev
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func TestSendToUserReachesAllSessions(t *testing.T) {
	m := NewManager()
	go m.Run()

	a := &client{userID: "u1", send: make(chan Event, 16)}
	b := &client{userID: "u1", send: make(chan Event, 16)}
	other := &client{userID: "u2", send: make(chan Event, 16)}
	m.register <- a
	m.register <- b
	m.register <- other

	m.SendToUser("u1", "application-updated", map[string]string{"id": "app-1"})

	for _, c := range []*client{a, b} {
		ev := receiveEvent(t, c)
		assert.Equal(t, "application-updated", ev.Type)
	}

	select {
	case ev := <-other.send:
		t.Fatalf("unexpected event for other user: %+v", ev)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestSendToUserWithoutSessionsIsDropped(t *testing.T) {
	m := NewManager()
	go m.Run()

	// Nobody is connected; the send must not block or panic.
	require.NotPanics(t, func() {
		m.SendToUser("ghost", "application-updated", nil)
	})
}

func TestUnregisterClosesSendChannel(t *testing.T) {
	m := NewManager()
	go m.Run()

	c := &client{userID: "u1", send: make(chan Event, 16)}
	m.register <- c
	m.unregister <- c

	select {
	case _, open := <-c.send:
		assert.False(t, open, "send channel must be closed on unregister")
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for channel close")
	}
}
