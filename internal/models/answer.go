package models

import (
	"time"
)

// AnswerNotAnswered is the sentinel value recorded for players who let the
// round timer run out without answering.
const AnswerNotAnswered = "NOT_ANSWERED"

// Answer records one player's submission for one round
type Answer struct {
	// PlayerID is the player who answered
	PlayerID string

	// QuestionID is the bank ID of the round's question
	QuestionID string

	// Value is the chosen option identity, or AnswerNotAnswered
	Value string

	// Ranking is the submitted ordering (ranking archetype only)
	Ranking []string

	// AnsweredAt is when the answer was recorded
	AnsweredAt time.Time

	// Correct is archetype-dependent (e.g. voted with the majority)
	Correct bool

	// Points is the signed score awarded during resolution
	Points int
}

// Missing reports whether this answer is the NOT_ANSWERED sentinel.
func (a *Answer) Missing() bool {
	return a.Value == AnswerNotAnswered
}
