package scoring

import (
	"sort"

	"github.com/sipcrew/partyround/internal/models"
)

// Input carries everything a scoring handler needs for one round
type Input struct {
	// Question is the authoritative bank record, including the answer key
	Question *models.Question

	// View is the round's public question view (sampled options/candidates)
	View *models.RoundQuestion

	// Answers is the full per-round answer list, already padded with the
	// NOT_ANSWERED sentinel for every player who missed the round
	Answers []*models.Answer

	// Multiplier is the session's punishment multiplier
	Multiplier int
}

// Output is the scoring contract consumed by the round state machine
type Output struct {
	// Answers is the updated answer list with Correct and Points set
	Answers []*models.Answer

	// Punishments holds one accumulated record per punished/rewarded player
	Punishments []*models.Punishment

	// FinalRanking is the crowd-sourced ground truth (ranking archetype only)
	FinalRanking []string
}

// punishmentSet accumulates give/take amounts per player while preserving the
// order in which players were first punished, so output is deterministic.
type punishmentSet struct {
	order    []string
	byPlayer map[string]*models.Punishment
}

func newPunishmentSet() *punishmentSet {
	return &punishmentSet{
		byPlayer: make(map[string]*models.Punishment),
	}
}

func (ps *punishmentSet) record(playerID string) *models.Punishment {
	if p, ok := ps.byPlayer[playerID]; ok {
		return p
	}
	p := &models.Punishment{PlayerID: playerID}
	ps.byPlayer[playerID] = p
	ps.order = append(ps.order, playerID)
	return p
}

// take adds drinks owed onto the player's record.
func (ps *punishmentSet) take(playerID string, amount int, reason string) {
	p := ps.record(playerID)
	p.Take += amount
	p.Reasons = append(p.Reasons, reason)
}

// give adds drinks to hand out onto the player's record.
func (ps *punishmentSet) give(playerID string, amount int, reason string) {
	p := ps.record(playerID)
	p.Give += amount
	p.Reasons = append(p.Reasons, reason)
}

// setTake replaces the owed amount outright, keeping any give and all reasons.
func (ps *punishmentSet) setTake(playerID string, amount int, reason string) {
	p := ps.record(playerID)
	p.Take = amount
	p.Reasons = append(p.Reasons, reason)
}

// setGive replaces the reward amount outright, keeping any take and all reasons.
func (ps *punishmentSet) setGive(playerID string, amount int, reason string) {
	p := ps.record(playerID)
	p.Give = amount
	p.Reasons = append(p.Reasons, reason)
}

func (ps *punishmentSet) list() []*models.Punishment {
	out := make([]*models.Punishment, 0, len(ps.order))
	for _, playerID := range ps.order {
		out = append(out, ps.byPlayer[playerID])
	}
	return out
}

// cloneAnswers deep-copies the answer list so handlers stay pure.
func cloneAnswers(in []*models.Answer) []*models.Answer {
	out := make([]*models.Answer, len(in))
	for i, a := range in {
		c := *a
		if a.Ranking != nil {
			c.Ranking = append([]string(nil), a.Ranking...)
		}
		out[i] = &c
	}
	return out
}

// sortByAnsweredAt orders answers fastest-first, with NOT_ANSWERED entries at
// the end. The sort is stable so equal timestamps keep submission order.
func sortByAnsweredAt(answers []*models.Answer) {
	sort.SliceStable(answers, func(i, j int) bool {
		ai, aj := answers[i], answers[j]
		if ai.Missing() != aj.Missing() {
			return aj.Missing()
		}
		if ai.Missing() {
			return false
		}
		return ai.AnsweredAt.Before(aj.AnsweredAt)
	})
}
