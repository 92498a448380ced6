package models

// LeaderboardEntry tracks one player's running score across rounds. The total
// is only ever incremented by resolved rounds, never recomputed from scratch.
type LeaderboardEntry struct {
	// PlayerID is the player this entry belongs to
	PlayerID string

	// TotalPoints is the running sum of points awarded across rounds
	TotalPoints int
}
