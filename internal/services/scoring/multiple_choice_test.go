package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sipcrew/partyround/internal/models"
)

func mcQuestion() *models.Question {
	return &models.Question{
		ID:            "q1",
		Type:          models.QuestionTypeMultipleChoice,
		Prompt:        "Which planet is closest to the sun?",
		Options:       []string{"A", "B", "C", "D"},
		CorrectOption: 1,
	}
}

func mcView() *models.RoundQuestion {
	return &models.RoundQuestion{
		ID:      "q1",
		Type:    models.QuestionTypeMultipleChoice,
		Options: []string{"A", "B", "C", "D"},
	}
}

func answerAt(playerID, value string, offset time.Duration) *models.Answer {
	base := time.Date(2025, 6, 1, 20, 0, 0, 0, time.UTC)
	return &models.Answer{
		PlayerID:   playerID,
		QuestionID: "q1",
		Value:      value,
		AnsweredAt: base.Add(offset),
	}
}

func notAnswered(playerID string) *models.Answer {
	return &models.Answer{
		PlayerID:   playerID,
		QuestionID: "q1",
		Value:      models.AnswerNotAnswered,
	}
}

func punishmentFor(t *testing.T, punishments []*models.Punishment, playerID string) *models.Punishment {
	t.Helper()
	for _, p := range punishments {
		if p.PlayerID == playerID {
			return p
		}
	}
	return nil
}

// Mirrors the one-correct, one-wrong, one-missing case with multiplier 1.
func TestMultipleChoiceMixedRound(t *testing.T) {
	out, err := Score(&Input{
		Question: mcQuestion(),
		View:     mcView(),
		Answers: []*models.Answer{
			answerAt("p1", "B", 0),
			answerAt("p2", "C", time.Second),
			notAnswered("p3"),
		},
		Multiplier: 1,
	})
	require.NoError(t, err)
	require.Len(t, out.Answers, 3)

	byPlayer := map[string]*models.Answer{}
	for _, a := range out.Answers {
		byPlayer[a.PlayerID] = a
	}

	p1 := byPlayer["p1"]
	assert.True(t, p1.Correct)
	assert.Equal(t, 150, p1.Points) // 100 + first-correct bonus

	p2 := byPlayer["p2"]
	assert.False(t, p2.Correct)
	assert.Equal(t, -100, p2.Points)

	p3 := byPlayer["p3"]
	assert.False(t, p3.Correct)
	assert.Equal(t, -300, p3.Points)

	pun1 := punishmentFor(t, out.Punishments, "p1")
	require.NotNil(t, pun1)
	assert.Equal(t, 2, pun1.Give)
	assert.Zero(t, pun1.Take)
	assert.Contains(t, pun1.Reasons, "only correct answer")

	pun2 := punishmentFor(t, out.Punishments, "p2")
	require.NotNil(t, pun2)
	assert.Equal(t, 1, pun2.Take) // no lone-wrong extra while someone is missing
	assert.Zero(t, pun2.Give)

	pun3 := punishmentFor(t, out.Punishments, "p3")
	require.NotNil(t, pun3)
	assert.Equal(t, 4, pun3.Take) // base 2 + only-one-missing 2
	assert.Contains(t, pun3.Reasons, "only one missing")
}

func TestMultipleChoiceSpeedBonuses(t *testing.T) {
	out, err := Score(&Input{
		Question: mcQuestion(),
		View:     mcView(),
		Answers: []*models.Answer{
			answerAt("p4", "B", 4*time.Second),
			answerAt("p1", "B", time.Second),
			answerAt("p2", "B", 2*time.Second),
			answerAt("p3", "B", 3*time.Second),
		},
		Multiplier: 1,
	})
	require.NoError(t, err)

	points := map[string]int{}
	for _, a := range out.Answers {
		points[a.PlayerID] = a.Points
	}
	assert.Equal(t, 150, points["p1"])
	assert.Equal(t, 125, points["p2"])
	assert.Equal(t, 110, points["p3"])
	assert.Equal(t, 100, points["p4"]) // only the top three get a bonus

	// Everyone answered correctly: the fastest hands out a drink.
	pun := punishmentFor(t, out.Punishments, "p1")
	require.NotNil(t, pun)
	assert.Equal(t, 1, pun.Give)
	assert.Contains(t, pun.Reasons, "fastest correct answer")
}

func TestMultipleChoiceNobodyCorrect(t *testing.T) {
	out, err := Score(&Input{
		Question: mcQuestion(),
		View:     mcView(),
		Answers: []*models.Answer{
			answerAt("p1", "A", 0),
			answerAt("p2", "C", time.Second),
			notAnswered("p3"),
			notAnswered("p4"),
		},
		Multiplier: 2,
	})
	require.NoError(t, err)

	// Collective failure: flat 3m for everyone, missing included; no base
	// wrong/missing drinks on top.
	for _, playerID := range []string{"p1", "p3", "p4"} {
		pun := punishmentFor(t, out.Punishments, playerID)
		require.NotNil(t, pun, playerID)
		assert.Equal(t, 6, pun.Take, playerID)
	}
	// p2 answered last of the wrong answers, but the slowest-wrong extra
	// only applies when nobody is missing.
	assert.Equal(t, 6, punishmentFor(t, out.Punishments, "p2").Take)
}

func TestMultipleChoiceAllWrongNoMissing(t *testing.T) {
	out, err := Score(&Input{
		Question: mcQuestion(),
		View:     mcView(),
		Answers: []*models.Answer{
			answerAt("p1", "A", 0),
			answerAt("p2", "C", 2*time.Second),
		},
		Multiplier: 1,
	})
	require.NoError(t, err)

	// Everyone takes 3, and the slowest wrong answer takes one more.
	assert.Equal(t, 3, punishmentFor(t, out.Punishments, "p1").Take)
	p2 := punishmentFor(t, out.Punishments, "p2")
	assert.Equal(t, 4, p2.Take)
	assert.Contains(t, p2.Reasons, "slowest wrong answer")
}

func TestMultipleChoiceLoneWrongNoMissing(t *testing.T) {
	out, err := Score(&Input{
		Question: mcQuestion(),
		View:     mcView(),
		Answers: []*models.Answer{
			answerAt("p1", "B", 0),
			answerAt("p2", "B", time.Second),
			answerAt("p3", "A", 2*time.Second),
		},
		Multiplier: 1,
	})
	require.NoError(t, err)

	p3 := punishmentFor(t, out.Punishments, "p3")
	require.NotNil(t, p3)
	assert.Equal(t, 2, p3.Take) // base 1 + only-wrong-answer 1
	assert.Contains(t, p3.Reasons, "only wrong answer")
}

func TestMultipleChoiceMalformedQuestion(t *testing.T) {
	q := mcQuestion()
	q.CorrectOption = 9
	_, err := Score(&Input{
		Question:   q,
		View:       mcView(),
		Answers:    []*models.Answer{answerAt("p1", "B", 0)},
		Multiplier: 1,
	})
	assert.ErrorIs(t, err, ErrMalformedQuestion)
}

func TestMultipleChoiceDeterministicAndPure(t *testing.T) {
	in := &Input{
		Question: mcQuestion(),
		View:     mcView(),
		Answers: []*models.Answer{
			answerAt("p1", "B", 0),
			answerAt("p2", "C", time.Second),
			notAnswered("p3"),
		},
		Multiplier: 3,
	}

	first, err := Score(in)
	require.NoError(t, err)
	second, err := Score(in)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// The caller's answers are untouched.
	assert.Zero(t, in.Answers[0].Points)
	assert.False(t, in.Answers[0].Correct)
}
