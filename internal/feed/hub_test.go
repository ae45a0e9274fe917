package feed

import (
	"bufio"
	"encoding/json"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBroadcast_DeliversEventToTCPClient(t *testing.T) {
	hub := NewHub()

	server, client := net.Pipe()
	t.Cleanup(func() { client.Close() })
	hub.Add(server)

	lines := make(chan string, 1)
	go func() {
		sc := bufio.NewScanner(client)
		if sc.Scan() {
			lines <- sc.Text()
		}
		close(lines)
	}()

	hub.Broadcast(Event{
		Type:      EventWatchlistUpdated,
		UserID:    "u1",
		Username:  "drama_fan",
		ShowID:    7,
		ShowTitle: "Night Market",
		Status:    "completed",
	})

	select {
	case line := <-lines:
		var ev Event
		require.NoError(t, json.Unmarshal([]byte(line), &ev))
		assert.Equal(t, EventWatchlistUpdated, ev.Type)
		assert.Equal(t, "drama_fan", ev.Username)
		assert.Equal(t, "Night Market", ev.ShowTitle)
		assert.False(t, ev.At.IsZero(), "broadcast should stamp the event time")
	case <-time.After(2 * time.Second):
		t.Fatal("no event received")
	}

	stats := hub.Stats()
	assert.Equal(t, 1, stats.TCPClients)
	assert.Equal(t, 1, stats.EventsSent)
}

func TestBroadcast_DropsDeadClients(t *testing.T) {
	hub := NewHub()

	server, client := net.Pipe()
	hub.Add(server)
	client.Close()

	hub.Broadcast(Event{Type: EventReviewCreated, UserID: "u1", ShowID: 1})

	assert.Equal(t, 0, hub.Stats().TCPClients)
}
