package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sipcrew/partyround/internal/models"
)

func rankingInput(outcome models.Outcome, m int, candidates []string, answers ...*models.Answer) *Input {
	return &Input{
		Question: &models.Question{
			ID:      "q4",
			Type:    models.QuestionTypeRanking,
			Prompt:  "Rank the group...",
			Outcome: outcome,
		},
		View: &models.RoundQuestion{
			ID:         "q4",
			Type:       models.QuestionTypeRanking,
			Candidates: candidates,
		},
		Answers:    answers,
		Multiplier: m,
	}
}

func ranked(playerID string, order ...string) *models.Answer {
	return &models.Answer{PlayerID: playerID, QuestionID: "q4", Ranking: order}
}

func TestRankingGoodOutcome(t *testing.T) {
	out, err := Score(rankingInput(models.OutcomeGood, 1,
		[]string{"p1", "p2", "p3"},
		ranked("p1", "p1", "p2", "p3"),
		ranked("p2", "p1", "p3", "p2"),
		notAnswered("p3"),
	))
	require.NoError(t, err)

	// Position sums: p1=2, p2=5, p3=5; the 5-5 tie keeps candidate order.
	assert.Equal(t, []string{"p1", "p2", "p3"}, out.FinalRanking)

	points := map[string]int{}
	correct := map[string]bool{}
	for _, a := range out.Answers {
		points[a.PlayerID] = a.Points
		correct[a.PlayerID] = a.Correct
	}

	// p1 matched the crowd exactly: 500 plus the rank-0 swing of 200.
	assert.Equal(t, 700, points["p1"])
	assert.True(t, correct["p1"])

	// p2 deviated by 2 of a max 3: 500-500*2/3 = 167, plus the rank-1 swing.
	assert.Equal(t, 267, points["p2"])
	assert.False(t, correct["p2"])

	// p3 never answered: -300, rank-2 swing is zero.
	assert.Equal(t, -300, points["p3"])

	// Top-3 overrides replace the band reward in the same direction.
	p1 := punishmentFor(t, out.Punishments, "p1")
	require.NotNil(t, p1)
	assert.Equal(t, 3, p1.Give) // not 2+3
	assert.Zero(t, p1.Take)
	assert.Contains(t, p1.Reasons, "perfect ranking")
	assert.Contains(t, p1.Reasons, "ranked first by the crowd")

	// Opposite-direction amounts survive the override.
	p2 := punishmentFor(t, out.Punishments, "p2")
	require.NotNil(t, p2)
	assert.Equal(t, 2, p2.Give)
	assert.Equal(t, 2, p2.Take)

	p3 := punishmentFor(t, out.Punishments, "p3")
	require.NotNil(t, p3)
	assert.Equal(t, 1, p3.Give)
	assert.Equal(t, 2, p3.Take)
}

func TestRankingBadOutcomeFlipsTheWalk(t *testing.T) {
	out, err := Score(rankingInput(models.OutcomeBad, 1,
		[]string{"p1", "p2", "p3"},
		ranked("p1", "p1", "p2", "p3"),
		ranked("p2", "p1", "p2", "p3"),
		ranked("p3", "p1", "p2", "p3"),
	))
	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "p2", "p3"}, out.FinalRanking)

	points := map[string]int{}
	for _, a := range out.Answers {
		points[a.PlayerID] = a.Points
	}
	assert.Equal(t, 300, points["p1"]) // 500 minus the rank-0 swing
	assert.Equal(t, 400, points["p2"])
	assert.Equal(t, 500, points["p3"])

	// Perfect band gives 2, but the bad-outcome override replaces takes.
	p1 := punishmentFor(t, out.Punishments, "p1")
	require.NotNil(t, p1)
	assert.Equal(t, 2, p1.Give)
	assert.Equal(t, 3, p1.Take)
	assert.Contains(t, p1.Reasons, "ranked first by the crowd")
}

func TestRankingAbsorbsUnlistedIdentities(t *testing.T) {
	out, err := Score(rankingInput(models.OutcomeGood, 1,
		[]string{"p1", "p2"},
		ranked("p1", "p1", "p2", "p9"),
	))
	require.NoError(t, err)

	// p9 only appears in the submission, but the final ranking still
	// covers it.
	assert.Equal(t, []string{"p1", "p2", "p9"}, out.FinalRanking)
}

func TestRankingBands(t *testing.T) {
	// Two anchors pin the crowd ranking to candidate order; max deviation
	// for four candidates is 6.
	out, err := Score(rankingInput(models.OutcomeGood, 1,
		[]string{"p1", "p2", "p3", "p4"},
		ranked("p5", "p1", "p2", "p3", "p4"),
		ranked("p8", "p1", "p2", "p3", "p4"),
		ranked("p6", "p1", "p2", "p4", "p3"), // deviation 2 -> 334
		ranked("p7", "p4", "p3", "p2", "p1"), // full reversal, clamped to 0
	))
	require.NoError(t, err)
	require.Equal(t, []string{"p1", "p2", "p3", "p4"}, out.FinalRanking)

	p5 := punishmentFor(t, out.Punishments, "p5")
	require.NotNil(t, p5)
	assert.Equal(t, 2, p5.Give)
	assert.Contains(t, p5.Reasons, "perfect ranking")

	p6 := punishmentFor(t, out.Punishments, "p6")
	require.NotNil(t, p6)
	assert.Equal(t, 1, p6.Take)
	assert.Contains(t, p6.Reasons, "mediocre ranking")

	p7 := punishmentFor(t, out.Punishments, "p7")
	require.NotNil(t, p7)
	assert.Equal(t, 3, p7.Take)
	assert.Contains(t, p7.Reasons, "worst ranking")
}

func TestRankingGreatBand(t *testing.T) {
	// Six candidates, max deviation 15: a single adjacent swap lands in
	// the 400-499 band.
	out, err := Score(rankingInput(models.OutcomeGood, 1,
		[]string{"a", "b", "c", "d", "e", "f"},
		ranked("p5", "a", "b", "c", "d", "e", "f"),
		ranked("p6", "a", "b", "c", "d", "e", "f"),
		ranked("p7", "a", "b", "c", "d", "f", "e"),
	))
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b", "c", "d", "e", "f"}, out.FinalRanking)

	var p7Points int
	for _, a := range out.Answers {
		if a.PlayerID == "p7" {
			p7Points = a.Points
		}
	}
	assert.Equal(t, 434, p7Points)

	p7 := punishmentFor(t, out.Punishments, "p7")
	require.NotNil(t, p7)
	assert.Equal(t, 1, p7.Give)
	assert.Contains(t, p7.Reasons, "great ranking")
}

func TestRankingNoRespondentsKeepsCandidateOrder(t *testing.T) {
	out, err := Score(rankingInput(models.OutcomeGood, 1,
		[]string{"p1", "p2", "p3"},
		notAnswered("p4"),
		notAnswered("p5"),
	))
	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "p2", "p3"}, out.FinalRanking)
}

func TestRankingDeterministic(t *testing.T) {
	in := rankingInput(models.OutcomeBad, 2,
		[]string{"p1", "p2", "p3"},
		ranked("p1", "p2", "p1", "p3"),
		ranked("p2", "p3", "p2", "p1"),
		notAnswered("p3"),
	)
	first, err := Score(in)
	require.NoError(t, err)
	second, err := Score(in)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
