package scoring

// ScoringError is a custom error type for scoring-related errors
type ScoringError string

// Error implements the error interface
func (e ScoringError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrNilInput          ScoringError = "input cannot be nil"
	ErrNilQuestion       ScoringError = "question cannot be nil"
	ErrNilView           ScoringError = "round question view cannot be nil"
	ErrMalformedQuestion ScoringError = "question is malformed"
	ErrUnknownArchetype  ScoringError = "unknown question archetype"
)
