package leaderboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sipcrew/partyround/internal/models"
)

func TestFoldAddsPointsToExistingEntries(t *testing.T) {
	entries := []*models.LeaderboardEntry{
		{PlayerID: "p1", TotalPoints: 100},
		{PlayerID: "p2", TotalPoints: 50},
	}
	answers := []*models.Answer{
		{PlayerID: "p1", Points: -300},
		{PlayerID: "p2", Points: 150},
	}

	entries = Fold(entries, answers)
	require.Len(t, entries, 2)

	// p2 overtakes p1 after this round.
	assert.Equal(t, "p2", entries[0].PlayerID)
	assert.Equal(t, 200, entries[0].TotalPoints)
	assert.Equal(t, "p1", entries[1].PlayerID)
	assert.Equal(t, -200, entries[1].TotalPoints)
}

func TestFoldCreatesMissingEntries(t *testing.T) {
	entries := []*models.LeaderboardEntry{
		{PlayerID: "p1", TotalPoints: 10},
	}
	answers := []*models.Answer{
		{PlayerID: "p9", Points: 100},
	}

	entries = Fold(entries, answers)
	require.Len(t, entries, 2)
	assert.Equal(t, "p9", entries[0].PlayerID)
	assert.Equal(t, 100, entries[0].TotalPoints)
}

func TestFoldStableOnTies(t *testing.T) {
	entries := []*models.LeaderboardEntry{
		{PlayerID: "p1", TotalPoints: 0},
		{PlayerID: "p2", TotalPoints: 0},
		{PlayerID: "p3", TotalPoints: 0},
	}
	answers := []*models.Answer{
		{PlayerID: "p1", Points: 100},
		{PlayerID: "p2", Points: 100},
		{PlayerID: "p3", Points: 100},
	}

	entries = Fold(entries, answers)

	// All tied; original ordering is preserved.
	assert.Equal(t, "p1", entries[0].PlayerID)
	assert.Equal(t, "p2", entries[1].PlayerID)
	assert.Equal(t, "p3", entries[2].PlayerID)
}

func TestFoldAccumulatesAcrossRounds(t *testing.T) {
	var entries []*models.LeaderboardEntry

	rounds := [][]*models.Answer{
		{{PlayerID: "p1", Points: 150}, {PlayerID: "p2", Points: -100}},
		{{PlayerID: "p1", Points: -300}, {PlayerID: "p2", Points: 100}},
	}
	for _, round := range rounds {
		entries = Fold(entries, round)
	}

	totals := map[string]int{}
	for _, e := range entries {
		totals[e.PlayerID] = e.TotalPoints
	}
	assert.Equal(t, -150, totals["p1"])
	assert.Equal(t, 0, totals["p2"])
}
