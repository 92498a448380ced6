package ws

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/sipcrew/partyround/internal/models"
)

func discardLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestHubRoomMembership(t *testing.T) {
	hub := NewHub(discardLogger())

	a := newClient(nil)
	b := newClient(nil)
	hub.join("AAAAA", a)
	hub.join("AAAAA", b)
	assert.Equal(t, 2, hub.RoomSize("AAAAA"))

	hub.leave("AAAAA", a)
	assert.Equal(t, 1, hub.RoomSize("AAAAA"))

	// Leaving twice is harmless
	hub.leave("AAAAA", a)
	assert.Equal(t, 1, hub.RoomSize("AAAAA"))

	hub.leave("AAAAA", b)
	assert.Zero(t, hub.RoomSize("AAAAA"))
}

func TestHubBroadcastReachesRoomOnly(t *testing.T) {
	hub := NewHub(discardLogger())

	in := newClient(nil)
	out := newClient(nil)
	hub.join("AAAAA", in)
	hub.join("BBBBB", out)

	hub.BroadcastSession(&models.Session{Code: "AAAAA", State: models.StateLobby})

	assert.Len(t, in.send, 1)
	assert.Empty(t, out.send)
}

func TestHubDropsSlowClient(t *testing.T) {
	hub := NewHub(discardLogger())

	slow := newClient(nil)
	hub.join("AAAAA", slow)

	// Fill the client's send buffer, then one more broadcast evicts it
	for i := 0; i <= cap(slow.send); i++ {
		hub.BroadcastSession(&models.Session{Code: "AAAAA", State: models.StateLobby})
	}
	assert.Zero(t, hub.RoomSize("AAAAA"))
}
