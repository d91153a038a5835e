package opponent

import (
	"math/rand"

	"github.com/timpalpant/go-qothello"
)

// RandomPolicy plays a uniformly random legal move.
type RandomPolicy struct {
	rules qlearn.Rules
	rng   *rand.Rand
}

// NewRandomPolicy returns a RandomPolicy drawing moves from rng.
func NewRandomPolicy(rules qlearn.Rules, rng *rand.Rand) *RandomPolicy {
	return &RandomPolicy{rules: rules, rng: rng}
}

func (p *RandomPolicy) Name() string {
	return Random.String()
}

// DecideMove implements qlearn.Policy.
func (p *RandomPolicy) DecideMove(b qlearn.Board, player qlearn.Player) (qlearn.Decision, error) {
	moves := p.rules.LegalMoves(b, player)
	if len(moves) == 0 {
		return qlearn.Pass(), nil
	}

	return qlearn.Play(moves[p.rng.Intn(len(moves))]), nil
}
