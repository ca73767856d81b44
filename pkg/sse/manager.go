package sse

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
)

// Event is one message pushed to a connected client.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

type client struct {
	userID string
	send   chan Event
}

type userEvent struct {
	userID string
	event  Event
}

// Manager fans events out to the live SSE sessions of individual users.
// Delivery is best-effort: users with no connected session miss the event and
// reconcile on their next full refresh.
type Manager struct {
	clients    map[string]map[*client]bool
	register   chan *client
	unregister chan *client
	events     chan userEvent
}

// NewManager creates a new SSE manager. Call Run in a goroutine before use.
func NewManager() *Manager {
	return &Manager{
		clients:    make(map[string]map[*client]bool),
		register:   make(chan *client),
		unregister: make(chan *client),
		events:     make(chan userEvent, 64),
	}
}

// Run owns the client registry; all map access happens on this goroutine.
func (m *Manager) Run() {
	for {
		select {
		case c := <-m.register:
			if m.clients[c.userID] == nil {
				m.clients[c.userID] = make(map[*client]bool)
			}
			m.clients[c.userID][c] = true
			log.Printf("[SSE] Client connected for user %s (%d active)", c.userID, len(m.clients[c.userID]))

		case c := <-m.unregister:
			if conns, ok := m.clients[c.userID]; ok {
				if conns[c] {
					delete(conns, c)
					close(c.send)
					if len(conns) == 0 {
						delete(m.clients, c.userID)
					}
				}
			}

		case ue := <-m.events:
			for c := range m.clients[ue.userID] {
				select {
				case c.send <- ue.event:
				default:
					// Slow consumer; drop rather than block the fan-out.
				}
			}
		}
	}
}

// SendToUser publishes an event to every live session of the given user.
func (m *Manager) SendToUser(userID string, eventType string, payload interface{}) {
	m.events <- userEvent{
		userID: userID,
		event:  Event{Type: eventType, Payload: payload},
	}
}

// ServeHTTP attaches the request as a live SSE session until the client
// disconnects.
func (m *Manager) ServeHTTP(c *gin.Context, userID string) {
	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	cl := &client{
		userID: userID,
		send:   make(chan Event, 16),
	}
	m.register <- cl
	defer func() { m.unregister <- cl }()

	flusher, ok := c.Writer.(interface{ Flush() })
	if !ok {
		return
	}

	// Initial comment so proxies open the stream immediately.
	fmt.Fprintf(c.Writer, ": connected\n\n")
	flusher.Flush()

	for {
		select {
		case ev, ok := <-cl.send:
			if !ok {
				return
			}
			data, err := json.Marshal(ev.Payload)
			if err != nil {
				continue
			}
			fmt.Fprintf(c.Writer, "event: %s\ndata: %s\n\n", ev.Type, data)
			flusher.Flush()
		case <-c.Request.Context().Done():
			return
		}
	}
}
