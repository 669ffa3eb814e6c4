package ws

import (
	"encoding/json"
	"testing"
	"time"

	"go.uber.org/zap"
)

func newTestHub() *Hub {
	return NewHub(nil, zap.NewNop().Sugar())
}

func newTestClient(userID, socketID string) *Client {
	return &Client{UserID: userID, SocketID: socketID, Send: make(chan []byte, 4)}
}

func TestHubRegisterUnregister(t *testing.T) {
	h := newTestHub()
	c1 := newTestClient("u1", "s1")
	c2 := newTestClient("u1", "s2")

	h.Register(c1)
	h.Register(c2)
	if got := h.SocketsFor("u1"); len(got) != 2 {
		t.Fatalf("expected 2 sockets, got %v", got)
	}

	h.Unregister(c1)
	got := h.SocketsFor("u1")
	if len(got) != 1 || got[0] != "s2" {
		t.Fatalf("expected only s2, got %v", got)
	}

	h.Unregister(c2)
	if got := h.SocketsFor("u1"); got != nil {
		t.Fatalf("expected no sockets, got %v", got)
	}
}

func TestHubEmitTargetsOnlyListedUsers(t *testing.T) {
	h := newTestHub()
	target := newTestClient("u1", "s1")
	bystander := newTestClient("u2", "s2")
	h.Register(target)
	h.Register(bystander)

	h.Emit("REFETCH_CHATS", []string{"u1"}, map[string]string{"chat_id": "abc"})

	select {
	case raw := <-target.Send:
		var env Envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			t.Fatalf("unmarshal frame: %v", err)
		}
		if env.Event != "REFETCH_CHATS" {
			t.Errorf("event: got %q", env.Event)
		}
	default:
		t.Fatal("target received no frame")
	}

	select {
	case <-bystander.Send:
		t.Fatal("bystander must not receive the frame")
	default:
	}
}

func TestHubEmitReachesEverySocketOfAUser(t *testing.T) {
	h := newTestHub()
	c1 := newTestClient("u1", "s1")
	c2 := newTestClient("u1", "s2")
	h.Register(c1)
	h.Register(c2)

	h.Emit("NEW_REQUEST", []string{"u1"}, nil)

	for _, c := range []*Client{c1, c2} {
		select {
		case <-c.Send:
		default:
			t.Fatalf("socket %s received no frame", c.SocketID)
		}
	}
}

func TestHubEmitNeverBlocksOnSlowClient(t *testing.T) {
	h := newTestHub()
	slow := &Client{UserID: "u1", SocketID: "s1", Send: make(chan []byte)}
	h.Register(slow)

	done := make(chan struct{})
	go func() {
		h.Emit("NEW_REQUEST", []string{"u1"}, nil)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("emit blocked on a slow client")
	}
}

func TestHubEmitUnknownUserIsNoop(t *testing.T) {
	h := newTestHub()
	h.Emit("NEW_REQUEST", []string{"nobody"}, nil)
}
