package scoring

import (
	"github.com/sipcrew/partyround/internal/models"
)

// scoreWouldRather settles a two-option preference vote. A tie means equal
// nonzero counts on both sides; 0-0 is not a tie here, unlike the
// who-would-rather archetype.
func scoreWouldRather(view *models.RoundQuestion, answers []*models.Answer, m int) ([]*models.Answer, []*models.Punishment, error) {
	if len(view.Options) != 2 {
		return nil, nil, ErrMalformedQuestion
	}
	optionA, optionB := view.Options[0], view.Options[1]

	answers = cloneAnswers(answers)

	var missing, votesA, votesB []*models.Answer
	for _, a := range answers {
		switch {
		case a.Missing():
			missing = append(missing, a)
		case a.Value == optionA:
			votesA = append(votesA, a)
		case a.Value == optionB:
			votesB = append(votesB, a)
		}
	}

	ps := newPunishmentSet()
	for _, a := range missing {
		a.Correct = false
		a.Points = 0
		ps.take(a.PlayerID, 2*m, "did not answer in time")
	}

	if len(votesA) > 0 && len(votesA) == len(votesB) {
		// No majority to reward, everyone drinks a little.
		for _, a := range votesA {
			ps.take(a.PlayerID, 1*m, "tied vote")
		}
		for _, a := range votesB {
			ps.take(a.PlayerID, 1*m, "tied vote")
		}
	} else {
		majority, minority := votesA, votesB
		if len(votesB) > len(votesA) {
			majority, minority = votesB, votesA
		}
		for _, a := range majority {
			a.Correct = true
			a.Points = 100 * m
		}
		for _, a := range minority {
			a.Correct = false
			ps.take(a.PlayerID, 2*m, "minority vote")
		}
		if len(minority) == 1 {
			ps.take(minority[0].PlayerID, 2*m, "lone minority vote")
		}
	}

	if len(missing) == 1 {
		ps.take(missing[0].PlayerID, 2*m, "only one missing")
	}

	return answers, ps.list(), nil
}
