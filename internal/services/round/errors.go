package round

// RoundError is a custom error type for session round errors
type RoundError string

// Error implements the error interface
func (e RoundError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrSessionNotFound     RoundError = "session not found"
	ErrSessionInactive     RoundError = "session is no longer active"
	ErrPlayerAlreadyJoined RoundError = "player already joined this session"
	ErrPlayerNotInSession  RoundError = "player is not in this session"
	ErrNotCreator          RoundError = "only the session creator can do that"
	ErrCannotKickCreator   RoundError = "the session creator cannot be kicked"
	ErrInvalidSessionState RoundError = "session is not in a valid state for that"
	ErrIllegalTransition   RoundError = "illegal session state transition"
	ErrAlreadyAnswered     RoundError = "player already answered this round"
	ErrWrongQuestion       RoundError = "answer does not match the current round"
	ErrNotEnoughPlayers    RoundError = "not enough players to start"
	ErrNotEnoughQuestions  RoundError = "the question bank has too few questions"
	ErrNoRoundInProgress   RoundError = "no round is currently accepting answers"
	ErrNilConfig           RoundError = "config cannot be nil"
	ErrNilSessionRepo      RoundError = "session repository cannot be nil"
	ErrNilQuestionBank     RoundError = "question bank cannot be nil"
	ErrNilScheduler        RoundError = "scheduler cannot be nil"
	ErrNilBroadcaster      RoundError = "broadcaster cannot be nil"
	ErrNilClock            RoundError = "clock cannot be nil"
	ErrNilUUIDGenerator    RoundError = "UUID generator cannot be nil"
	ErrNilSampler          RoundError = "sampler cannot be nil"
)
