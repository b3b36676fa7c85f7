package websocket

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub()
	go hub.Run()
	return hub
}

func registerClient(t *testing.T, hub *Hub, userID, role string) *Client {
	t.Helper()
	client := NewClient(userID, role, nil, hub)
	hub.register <- client
	require.Eventually(t, func() bool {
		return hub.IsUserConnected(userID)
	}, time.Second, 5*time.Millisecond)
	return client
}

func TestHub_BroadcastToUser(t *testing.T) {
	hub := startHub(t)
	citizen := registerClient(t, hub, "u1", "citizen")
	other := registerClient(t, hub, "u2", "citizen")

	hub.BroadcastToUser("u1", map[string]string{"type": "collection_update"})

	select {
	case msg := <-citizen.send:
		require.Contains(t, string(msg), "collection_update")
	case <-time.After(time.Second):
		t.Fatal("expected message for u1")
	}

	require.Empty(t, other.send)
}

func TestHub_BroadcastToRole(t *testing.T) {
	hub := startHub(t)
	worker := registerClient(t, hub, "w1", "worker")
	citizen := registerClient(t, hub, "c1", "citizen")

	hub.BroadcastToRole("worker", map[string]string{"type": "round_update"})

	select {
	case msg := <-worker.send:
		require.Contains(t, string(msg), "round_update")
	case <-time.After(time.Second):
		t.Fatal("expected message for worker")
	}

	require.Empty(t, citizen.send)
}

// A client that stops draining its buffer gets evicted instead of
// stalling delivery to everyone else.
func TestHub_EvictsClientWithFullBuffer(t *testing.T) {
	hub := startHub(t)
	fast := registerClient(t, hub, "fast", "citizen")
	slow := registerClient(t, hub, "slow", "citizen")

	for i := 0; i < cap(slow.send); i++ {
		slow.send <- []byte("backlog")
	}

	hub.BroadcastToAll(map[string]string{"type": "vehicle_location"})

	require.False(t, hub.IsUserConnected("slow"))
	require.True(t, hub.IsUserConnected("fast"))

	drained := 0
	for range slow.send {
		drained++
	}
	require.Equal(t, cap(slow.send), drained)

	require.Len(t, fast.send, 1)
}
