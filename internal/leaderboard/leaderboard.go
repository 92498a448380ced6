// Package leaderboard folds resolved rounds into running per-player totals.
package leaderboard

import (
	"sort"

	"github.com/sipcrew/partyround/internal/models"
)

// Fold adds every answer's awarded points into the matching entry's running
// total. An entry is created at zero for any player without one, so a scored
// answer is never dropped. The returned slice is sorted descending by total;
// the sort is stable and applies no further tie-break.
func Fold(entries []*models.LeaderboardEntry, answers []*models.Answer) []*models.LeaderboardEntry {
	byPlayer := make(map[string]*models.LeaderboardEntry, len(entries))
	for _, entry := range entries {
		byPlayer[entry.PlayerID] = entry
	}

	for _, answer := range answers {
		entry, ok := byPlayer[answer.PlayerID]
		if !ok {
			entry = &models.LeaderboardEntry{PlayerID: answer.PlayerID}
			byPlayer[answer.PlayerID] = entry
			entries = append(entries, entry)
		}
		entry.TotalPoints += answer.Points
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].TotalPoints > entries[j].TotalPoints
	})
	return entries
}
