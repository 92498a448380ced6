package models

import (
	"time"
)

// Settings holds the per-session game configuration chosen by the creator
type Settings struct {
	// RoundCount is the number of rounds to play
	RoundCount int

	// QuestionTypes are the archetypes allowed when sampling questions
	QuestionTypes []QuestionType

	// TimeLimitSeconds is how long each round accepts answers
	TimeLimitSeconds int

	// PunishmentMultiplier scales most give/take drink amounts
	PunishmentMultiplier int
}

// Session represents one running instance of the party game, identified by a
// shareable join code. The whole document is persisted as a unit.
type Session struct {
	// ID is the unique identifier for the session
	ID string

	// Code is the human-shareable join code
	Code string

	// CreatorID is the player who created the session
	CreatorID string

	// PlayerIDs contains the IDs of players currently in the session, in
	// join order
	PlayerIDs []string

	// Settings is the game configuration
	Settings Settings

	// QuestionIDs are the ordered question-bank IDs backing each round
	QuestionIDs []string

	// RoundQuestions are the sanitized per-round public views. Answer keys
	// are withheld until the round resolves.
	RoundQuestions []*RoundQuestion

	// Answers holds one answer list per round
	Answers [][]*Answer

	// Punishments holds one punishment list per round
	Punishments [][]*Punishment

	// Leaderboard has exactly one entry per current player
	Leaderboard []*LeaderboardEntry

	// CurrentRound indexes the round in play, 0-based
	CurrentRound int

	// State is the current phase of the session
	State SessionState

	// RoundDeadline is when the current round stops accepting answers
	RoundDeadline time.Time

	// AnsweredPlayerIDs tracks who has answered the current round
	AnsweredPlayerIDs []string

	// Active is false once the session reaches a terminal state
	Active bool

	// Version is the optimistic concurrency token checked on save
	Version int64

	// CreatedAt is when the session was created
	CreatedAt time.Time

	// UpdatedAt is when the session was last persisted
	UpdatedAt time.Time
}

// HasPlayer reports whether the given player is currently a member.
func (s *Session) HasPlayer(playerID string) bool {
	for _, id := range s.PlayerIDs {
		if id == playerID {
			return true
		}
	}
	return false
}

// HasAnswered reports whether the player already answered the current round.
func (s *Session) HasAnswered(playerID string) bool {
	for _, id := range s.AnsweredPlayerIDs {
		if id == playerID {
			return true
		}
	}
	return false
}

// CurrentQuestion returns the public view for the round in play, or nil when
// the index is out of range.
func (s *Session) CurrentQuestion() *RoundQuestion {
	if s.CurrentRound < 0 || s.CurrentRound >= len(s.RoundQuestions) {
		return nil
	}
	return s.RoundQuestions[s.CurrentRound]
}
