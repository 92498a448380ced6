package round

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/sipcrew/partyround/internal/services/round Service

import (
	"context"

	"github.com/sipcrew/partyround/internal/models"
)

// Service defines the interface for running party-game sessions
type Service interface {
	// CreateSession creates a new session in the lobby state
	CreateSession(ctx context.Context, input *CreateSessionInput) (*CreateSessionOutput, error)

	// JoinSession adds a player to a session still in the lobby
	JoinSession(ctx context.Context, input *JoinSessionInput) (*JoinSessionOutput, error)

	// LeaveSession removes a player from a session
	LeaveSession(ctx context.Context, input *LeaveSessionInput) (*LeaveSessionOutput, error)

	// KickPlayer lets the creator remove another player
	KickPlayer(ctx context.Context, input *KickPlayerInput) (*KickPlayerOutput, error)

	// StartGame prepares every round's public view and begins play
	StartGame(ctx context.Context, input *StartGameInput) (*StartGameOutput, error)

	// RecordAnswer records one player's answer for the round in play
	RecordAnswer(ctx context.Context, input *RecordAnswerInput) (*RecordAnswerOutput, error)

	// AdvanceRound moves the session from results into the next round
	AdvanceRound(ctx context.Context, input *AdvanceRoundInput) (*AdvanceRoundOutput, error)

	// EndRound force-resolves the round in play before its deadline
	EndRound(ctx context.Context, input *EndRoundInput) (*EndRoundOutput, error)

	// GetSession retrieves the current session document
	GetSession(ctx context.Context, input *GetSessionInput) (*GetSessionOutput, error)
}

// Broadcaster pushes the full session document to every connected player
// after a persisted state change.
type Broadcaster interface {
	BroadcastSession(session *models.Session)
}
