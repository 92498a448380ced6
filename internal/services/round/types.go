package round

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/sipcrew/partyround/internal/common/clock"
	"github.com/sipcrew/partyround/internal/common/uuid"
	"github.com/sipcrew/partyround/internal/models"
	"github.com/sipcrew/partyround/internal/random"
	questionbankRepo "github.com/sipcrew/partyround/internal/repositories/questionbank"
	sessionRepo "github.com/sipcrew/partyround/internal/repositories/session"
	"github.com/sipcrew/partyround/internal/scheduler"
)

// Config holds configuration and dependencies for the round service
type Config struct {
	// StartDelay is the pause between starting a game and the first
	// question appearing, so clients can render the transition
	StartDelay time.Duration

	// AnswerGrace is added on top of the round time limit before the
	// deadline, absorbing client-side submit latency
	AnswerGrace time.Duration

	// EarlyFire is how long before the deadline the expiry timer fires, so
	// scoring completes before client countdowns reach zero
	EarlyFire time.Duration

	// CodeLength is the length of generated join codes
	CodeLength int

	// Repository dependencies
	SessionRepo  sessionRepo.Repository
	QuestionBank questionbankRepo.Repository

	// Service dependencies
	Scheduler     *scheduler.Manager
	Broadcaster   Broadcaster
	Clock         clock.Clock
	UUIDGenerator uuid.UUID
	Sampler       *random.Sampler
	Logger        *logrus.Logger
}

// CreateSessionInput contains parameters for creating a new session
type CreateSessionInput struct {
	// CreatorID is the player creating the session
	CreatorID string

	// Settings is the requested game configuration; zero values fall back
	// to defaults
	Settings models.Settings
}

// CreateSessionOutput contains the result of creating a session
type CreateSessionOutput struct {
	// Success indicates if the session was created
	Success bool

	// Message provides human-readable details
	Message string

	// Session is the created session document
	Session *models.Session
}

// JoinSessionInput contains parameters for joining a session
type JoinSessionInput struct {
	// Code is the session join code
	Code string

	// PlayerID is the joining player
	PlayerID string
}

// JoinSessionOutput contains the result of joining
type JoinSessionOutput struct {
	// Success indicates if the player joined
	Success bool

	// Message provides human-readable details
	Message string

	// Session is the updated session document
	Session *models.Session
}

// LeaveSessionInput contains parameters for leaving a session
type LeaveSessionInput struct {
	// Code is the session join code
	Code string

	// PlayerID is the leaving player
	PlayerID string
}

// LeaveSessionOutput contains the result of leaving
type LeaveSessionOutput struct {
	// Success indicates if the player left
	Success bool

	// Message provides human-readable details
	Message string

	// Aborted indicates the session was torn down because nobody remained
	Aborted bool
}

// KickPlayerInput contains parameters for kicking a player
type KickPlayerInput struct {
	// Code is the session join code
	Code string

	// CreatorID is the caller, who must be the session creator
	CreatorID string

	// PlayerID is the player being removed
	PlayerID string
}

// KickPlayerOutput contains the result of kicking
type KickPlayerOutput struct {
	// Success indicates if the player was removed
	Success bool

	// Message provides human-readable details
	Message string
}

// StartGameInput contains parameters for starting a session
type StartGameInput struct {
	// Code is the session join code
	Code string

	// PlayerID is the caller, who must be the session creator
	PlayerID string
}

// StartGameOutput contains the result of starting
type StartGameOutput struct {
	// Success indicates if the game started
	Success bool

	// Message provides human-readable details
	Message string

	// Session is the updated session document
	Session *models.Session
}

// RecordAnswerInput contains one player's answer for the round in play
type RecordAnswerInput struct {
	// Code is the session join code
	Code string

	// PlayerID is the answering player
	PlayerID string

	// QuestionID is the bank ID of the round's question
	QuestionID string

	// Value is the chosen option identity (scalar archetypes)
	Value string

	// Ranking is the submitted ordering (ranking archetype)
	Ranking []string
}

// RecordAnswerOutput contains the result of recording an answer
type RecordAnswerOutput struct {
	// Success indicates if the answer was recorded
	Success bool

	// Message provides human-readable details
	Message string
}

// AdvanceRoundInput contains parameters for advancing past the results view
type AdvanceRoundInput struct {
	// Code is the session join code
	Code string

	// PlayerID is the caller, who must be the session creator
	PlayerID string
}

// AdvanceRoundOutput contains the result of advancing
type AdvanceRoundOutput struct {
	// Success indicates if the session advanced
	Success bool

	// Message provides human-readable details
	Message string

	// Finished indicates the session reached the final leaderboard
	Finished bool
}

// EndRoundInput contains parameters for force-ending the round in play
type EndRoundInput struct {
	// Code is the session join code
	Code string

	// PlayerID is the caller, who must be the session creator
	PlayerID string
}

// EndRoundOutput contains the result of force-ending
type EndRoundOutput struct {
	// Success indicates if a round was resolved
	Success bool

	// Message provides human-readable details
	Message string
}

// GetSessionInput contains parameters for reading a session
type GetSessionInput struct {
	// Code is the session join code
	Code string
}

// GetSessionOutput contains the session document
type GetSessionOutput struct {
	// Success indicates if the session was found
	Success bool

	// Message provides human-readable details
	Message string

	// Session is the current session document
	Session *models.Session
}
