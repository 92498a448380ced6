package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sipcrew/partyround/internal/models"
)

func wrInput(m int, answers ...*models.Answer) *Input {
	return &Input{
		Question: &models.Question{
			ID:      "q2",
			Type:    models.QuestionTypeWouldRather,
			Prompt:  "Would you rather...",
			Options: []string{"fly", "teleport"},
		},
		View: &models.RoundQuestion{
			ID:      "q2",
			Type:    models.QuestionTypeWouldRather,
			Options: []string{"fly", "teleport"},
		},
		Answers:    answers,
		Multiplier: m,
	}
}

func vote(playerID, value string) *models.Answer {
	return &models.Answer{PlayerID: playerID, QuestionID: "q2", Value: value}
}

func TestWouldRatherMajorityWins(t *testing.T) {
	out, err := Score(wrInput(1,
		vote("p1", "fly"),
		vote("p2", "fly"),
		vote("p3", "teleport"),
	))
	require.NoError(t, err)

	points := map[string]int{}
	for _, a := range out.Answers {
		points[a.PlayerID] = a.Points
	}
	assert.Equal(t, 100, points["p1"])
	assert.Equal(t, 100, points["p2"])
	assert.Equal(t, 0, points["p3"])

	p3 := punishmentFor(t, out.Punishments, "p3")
	require.NotNil(t, p3)
	assert.Equal(t, 4, p3.Take) // minority 2 + lone minority 2
	assert.Contains(t, p3.Reasons, "lone minority vote")
	assert.Nil(t, punishmentFor(t, out.Punishments, "p1"))
}

func TestWouldRatherMultiplierScalesEverything(t *testing.T) {
	out, err := Score(wrInput(3,
		vote("p1", "fly"),
		vote("p2", "fly"),
		vote("p3", "teleport"),
		vote("p4", "teleport"),
		vote("p5", "teleport"),
	))
	require.NoError(t, err)

	points := map[string]int{}
	for _, a := range out.Answers {
		points[a.PlayerID] = a.Points
	}
	assert.Equal(t, 300, points["p3"])
	assert.Equal(t, 6, punishmentFor(t, out.Punishments, "p1").Take)
	assert.Equal(t, 6, punishmentFor(t, out.Punishments, "p2").Take)
}

func TestWouldRatherTieNeedsVotesOnBothSides(t *testing.T) {
	out, err := Score(wrInput(1,
		vote("p1", "fly"),
		vote("p2", "teleport"),
	))
	require.NoError(t, err)

	// 1-1 is a tie: nobody scores, everyone who voted drinks.
	for _, a := range out.Answers {
		assert.Zero(t, a.Points, a.PlayerID)
		assert.False(t, a.Correct, a.PlayerID)
	}
	assert.Equal(t, 1, punishmentFor(t, out.Punishments, "p1").Take)
	assert.Equal(t, 1, punishmentFor(t, out.Punishments, "p2").Take)
}

func TestWouldRatherZeroZeroIsNotATie(t *testing.T) {
	out, err := Score(wrInput(1,
		notAnswered("p1"),
		notAnswered("p2"),
		notAnswered("p3"),
	))
	require.NoError(t, err)

	// Nobody voted, so there is no tie round: just the missing penalties.
	for _, playerID := range []string{"p1", "p2", "p3"} {
		pun := punishmentFor(t, out.Punishments, playerID)
		require.NotNil(t, pun, playerID)
		assert.Equal(t, 2, pun.Take, playerID)
		assert.NotContains(t, pun.Reasons, "tied vote")
	}
}

func TestWouldRatherLoneMissingTakesExtra(t *testing.T) {
	out, err := Score(wrInput(1,
		vote("p1", "fly"),
		vote("p2", "fly"),
		notAnswered("p3"),
	))
	require.NoError(t, err)

	p3 := punishmentFor(t, out.Punishments, "p3")
	require.NotNil(t, p3)
	assert.Equal(t, 4, p3.Take) // missing 2 + only one missing 2
	assert.Contains(t, p3.Reasons, "only one missing")
}

func TestWouldRatherMalformedOptions(t *testing.T) {
	in := wrInput(1, vote("p1", "fly"))
	in.View.Options = []string{"fly"}
	_, err := Score(in)
	assert.ErrorIs(t, err, ErrMalformedQuestion)
}
