package models

// Punishment records the social penalty/reward for one player in one round.
// Multiple scoring rules may match the same player; their give/take amounts
// accumulate on a single record and every reason is kept.
type Punishment struct {
	// PlayerID is the player being punished or rewarded
	PlayerID string

	// Reasons are the human-readable rule descriptions, append-only
	Reasons []string

	// Give is the number of drinks the player may hand out
	Give int

	// Take is the number of drinks the player owes
	Take int
}
