package models

// SessionState represents the current phase of a game session
type SessionState string

const (
	// StateLobby indicates a session is collecting players and has not started
	StateLobby SessionState = "lobby"

	// StateWaiting indicates a session is between rounds (either before the
	// first question appears or while scoring is in progress)
	StateWaiting SessionState = "waiting"

	// StateQuiz indicates a round is open and accepting answers
	StateQuiz SessionState = "quiz"

	// StateResults indicates a round has been scored and results are visible
	StateResults SessionState = "results"

	// StateLeaderboard indicates the session finished normally (terminal)
	StateLeaderboard SessionState = "leaderboard"

	// StateAborted indicates the session was torn down early (terminal)
	StateAborted SessionState = "aborted"
)

// legalTransitions enumerates the allowed forward moves between states.
// StateAborted is reachable from any state and is handled separately.
var legalTransitions = map[SessionState][]SessionState{
	StateLobby:       {StateWaiting},
	StateWaiting:     {StateQuiz, StateResults, StateLeaderboard},
	StateQuiz:        {StateWaiting},
	StateResults:     {StateQuiz, StateLeaderboard},
	StateLeaderboard: {},
	StateAborted:     {},
}

// CanTransitionTo reports whether moving from s to target is a legal
// state-machine transition.
func (s SessionState) CanTransitionTo(target SessionState) bool {
	if target == StateAborted {
		return true
	}
	for _, next := range legalTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// Terminal reports whether the state permanently deactivates a session.
func (s SessionState) Terminal() bool {
	return s == StateLeaderboard || s == StateAborted
}
