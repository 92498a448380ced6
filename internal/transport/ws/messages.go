package ws

import (
	"encoding/json"

	"github.com/sipcrew/partyround/internal/models"
)

// Inbound operation types
const (
	opJoin     = "join"
	opLeave    = "leave"
	opKick     = "kick"
	opStart    = "start"
	opAnswer   = "answer"
	opAdvance  = "advance"
	opEndRound = "end_round"
)

// Outbound message types
const (
	messageTypeSession = "session"
	messageTypeError   = "error"
)

// inbound is one operation sent by a connected player
type inbound struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// answerPayload carries a player's answer for the round in play
type answerPayload struct {
	QuestionID string   `json:"questionId"`
	Value      string   `json:"value,omitempty"`
	Ranking    []string `json:"ranking,omitempty"`
}

// kickPayload names the player to remove
type kickPayload struct {
	PlayerID string `json:"playerId"`
}

// outbound is the envelope for everything the server pushes
type outbound struct {
	Type    string          `json:"type"`
	Session *models.Session `json:"session,omitempty"`
	Message string          `json:"message,omitempty"`
}
