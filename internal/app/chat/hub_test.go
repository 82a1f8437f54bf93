package chat

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// newTestClient builds a Client with a buffered queue and no underlying
// connection; pumps are never started, the tests read the queue directly.
func newTestClient(hub *Hub, userID string) *Client {
	return &Client{
		hub:      hub,
		userID:   userID,
		connID:   uuid.New().String(),
		openedAt: time.Now(),
		send:     make(chan []byte, sendQueueSize),
		done:     make(chan struct{}),
		logger:   zerolog.Nop(),
	}
}

func decodeEvent(t *testing.T, payload []byte) (string, json.RawMessage) {
	t.Helper()

	var ev struct {
		Event string          `json:"event"`
		Data  json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(payload, &ev); err != nil {
		t.Fatalf("failed to decode event payload: %v", err)
	}
	return ev.Event, ev.Data
}

func receiveEvent(t *testing.T, c *Client) (string, json.RawMessage) {
	t.Helper()

	select {
	case payload := <-c.send:
		return decodeEvent(t, payload)
	default:
		t.Fatal("expected a queued event, queue was empty")
		return "", nil
	}
}

func TestAttachBroadcastsSnapshotToEveryone(t *testing.T) {
	hub := NewHub()

	alice := newTestClient(hub, "alice")
	hub.Attach(alice)

	name, data := receiveEvent(t, alice)
	if name != EventOnlineUsers {
		t.Fatalf("event = %q, want %q", name, EventOnlineUsers)
	}
	var online []string
	if err := json.Unmarshal(data, &online); err != nil {
		t.Fatalf("failed to decode online set: %v", err)
	}
	if !reflect.DeepEqual(online, []string{"alice"}) {
		t.Errorf("online = %v, want [alice]", online)
	}

	bob := newTestClient(hub, "bob")
	hub.Attach(bob)

	// Both the existing connection and the newcomer get the updated set.
	for _, c := range []*Client{alice, bob} {
		name, data := receiveEvent(t, c)
		if name != EventOnlineUsers {
			t.Fatalf("event = %q, want %q", name, EventOnlineUsers)
		}
		if err := json.Unmarshal(data, &online); err != nil {
			t.Fatalf("failed to decode online set: %v", err)
		}
		if !reflect.DeepEqual(online, []string{"alice", "bob"}) {
			t.Errorf("online = %v, want [alice bob]", online)
		}
	}
}

func TestDetachBroadcastsOnceAndOnlyOnRemoval(t *testing.T) {
	hub := NewHub()

	alice := newTestClient(hub, "alice")
	bob := newTestClient(hub, "bob")
	hub.Attach(alice)
	hub.Attach(bob)

	// Drain the attach broadcasts.
	for len(alice.send) > 0 {
		<-alice.send
	}
	for len(bob.send) > 0 {
		<-bob.send
	}

	hub.Detach(bob)

	name, data := receiveEvent(t, alice)
	if name != EventOnlineUsers {
		t.Fatalf("event = %q, want %q", name, EventOnlineUsers)
	}
	var online []string
	if err := json.Unmarshal(data, &online); err != nil {
		t.Fatalf("failed to decode online set: %v", err)
	}
	if !reflect.DeepEqual(online, []string{"alice"}) {
		t.Errorf("online = %v, want [alice]", online)
	}

	// A duplicate detach of the same connection must not broadcast again.
	hub.Detach(bob)
	if len(alice.send) != 0 {
		t.Error("expected no broadcast on duplicate detach")
	}
}

func TestDetachKeepsUserOnlineWithRemainingConnection(t *testing.T) {
	hub := NewHub()

	tab1 := newTestClient(hub, "alice")
	tab2 := newTestClient(hub, "alice")
	hub.Attach(tab1)
	hub.Attach(tab2)

	hub.Detach(tab1)

	if !hub.IsOnline("alice") {
		t.Error("expected alice to remain online while a connection is left")
	}

	hub.Detach(tab2)

	if hub.IsOnline("alice") {
		t.Error("expected alice offline after last connection detached")
	}
}

func TestDeliverReachesEveryReceiverConnection(t *testing.T) {
	hub := NewHub()

	tab1 := newTestClient(hub, "bob")
	tab2 := newTestClient(hub, "bob")
	sender := newTestClient(hub, "alice")
	hub.Attach(tab1)
	hub.Attach(tab2)
	hub.Attach(sender)

	for _, c := range []*Client{tab1, tab2, sender} {
		for len(c.send) > 0 {
			<-c.send
		}
	}

	msg := MessageEvent{
		ID:         "m1",
		SenderID:   "alice",
		ReceiverID: "bob",
		Text:       "hello",
		CreatedAt:  time.Now(),
	}
	hub.Deliver(msg)

	for _, c := range []*Client{tab1, tab2} {
		name, data := receiveEvent(t, c)
		if name != EventNewMessage {
			t.Fatalf("event = %q, want %q", name, EventNewMessage)
		}
		var got MessageEvent
		if err := json.Unmarshal(data, &got); err != nil {
			t.Fatalf("failed to decode message event: %v", err)
		}
		if got.ID != msg.ID || got.Text != msg.Text {
			t.Errorf("delivered message = %+v, want id=%s text=%s", got, msg.ID, msg.Text)
		}
	}

	// The sender's connections get nothing; their copy comes from the REST
	// response.
	if len(sender.send) != 0 {
		t.Error("expected no delivery to the sender's own connection")
	}
}

func TestDeliverToOfflineReceiverIsSilent(t *testing.T) {
	hub := NewHub()

	alice := newTestClient(hub, "alice")
	hub.Attach(alice)
	for len(alice.send) > 0 {
		<-alice.send
	}

	hub.Deliver(MessageEvent{ID: "m1", SenderID: "alice", ReceiverID: "ghost"})

	if len(alice.send) != 0 {
		t.Error("expected no events for a message to an offline receiver")
	}
}

func TestEnqueueDropsWhenQueueFull(t *testing.T) {
	c := &Client{
		send:   make(chan []byte, 2),
		done:   make(chan struct{}),
		logger: zerolog.Nop(),
	}

	c.enqueue([]byte("a"))
	c.enqueue([]byte("b"))

	// Queue is full; this must return immediately without blocking.
	finished := make(chan struct{})
	go func() {
		c.enqueue([]byte("c"))
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("enqueue blocked on a full queue")
	}

	if len(c.send) != 2 {
		t.Errorf("queue length = %d, want 2 (overflow dropped)", len(c.send))
	}
}

func TestClientCloseIdempotent(t *testing.T) {
	c := &Client{
		send:   make(chan []byte, 1),
		done:   make(chan struct{}),
		logger: zerolog.Nop(),
	}

	c.Close()
	c.Close()

	select {
	case <-c.done:
	default:
		t.Error("expected done channel to be closed")
	}
}
