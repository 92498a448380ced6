package models

// QuestionType represents the archetype of a question, which determines the
// scoring handler that applies
type QuestionType string

const (
	// QuestionTypeMultipleChoice is a classic quiz question with one correct option
	QuestionTypeMultipleChoice QuestionType = "multiple_choice"

	// QuestionTypeWouldRather is a two-option preference vote with no correct answer
	QuestionTypeWouldRather QuestionType = "would_rather"

	// QuestionTypeWhoWouldRather is a two-option vote where the options are players
	QuestionTypeWhoWouldRather QuestionType = "who_would_rather"

	// QuestionTypeRanking asks each player to order a set of players
	QuestionTypeRanking QuestionType = "ranking"
)

// Outcome flips the sign of identity-based rewards: a "good" question rewards
// the chosen player, a "bad" one punishes them.
type Outcome string

const (
	// OutcomeGood rewards the targeted players
	OutcomeGood Outcome = "good"

	// OutcomeBad punishes the targeted players
	OutcomeBad Outcome = "bad"
)

// Question is the authoritative question-bank record. It carries the answer
// key and must never be sent to clients before the round resolves.
type Question struct {
	// ID is the unique identifier for the question
	ID string

	// Type is the question archetype
	Type QuestionType

	// Prompt is the question text
	Prompt string

	// Options are the selectable answers (multiple choice and would-rather)
	Options []string

	// CorrectOption indexes the right answer within Options (multiple choice)
	CorrectOption int

	// Outcome controls whether identity archetypes reward or punish
	Outcome Outcome
}

// RoundQuestion is the sanitized per-round public view of a question. For
// identity archetypes the Options/Candidates are player IDs sampled at start.
type RoundQuestion struct {
	// ID is the bank ID of the underlying question
	ID string

	// Type is the question archetype
	Type QuestionType

	// Prompt is the question text
	Prompt string

	// Options are the presented choices (texts, or player IDs for
	// who-would-rather)
	Options []string

	// Candidates are the player IDs to order (ranking only)
	Candidates []string

	// FinalRanking is the crowd-sourced ground-truth ordering, written back
	// when the round resolves (ranking only)
	FinalRanking []string
}
