package opponent

import (
	"math"
	"math/rand"

	"github.com/pkg/errors"

	"github.com/timpalpant/go-qothello"
)

const (
	// Weight of the final disc difference at the end of the game.
	finalScoreWeight = 100
	// Weight of the difference in number of legal moves.
	mobilityWeight = 5
	// Bound of the uniform perturbation applied by SimpleVariantPolicy.
	maxPerturbation = 5

	// DefaultRandomFactor is the probability with which SimpleVariantPolicy
	// ignores its evaluation and plays a random legal move.
	DefaultRandomFactor = 0.1
)

// positionValues is the value of holding each cell of a 6x6 board.
var positionValues = [][]int{
	{30, -12, 0, 0, -12, 30},
	{-12, -15, -3, -3, -15, -12},
	{0, -3, 0, 0, -3, 0},
	{0, -3, 0, 0, -3, 0},
	{-12, -15, -3, -3, -15, -12},
	{30, -12, 0, 0, -12, 30},
}

// SimplePolicy greedily plays the move maximizing a fixed evaluation of
// the resulting position: the value of held cells, the final disc
// difference if the game is over, and otherwise the mobility difference.
type SimplePolicy struct {
	rules  qlearn.Rules
	rng    *rand.Rand
	name   string
	values [][]int
}

// NewSimplePolicy returns a SimplePolicy breaking ties with rng.
func NewSimplePolicy(rules qlearn.Rules, rng *rand.Rand) *SimplePolicy {
	return &SimplePolicy{
		rules:  rules,
		rng:    rng,
		name:   Simple.String(),
		values: positionValues,
	}
}

func (p *SimplePolicy) Name() string {
	return p.name
}

// DecideMove implements qlearn.Policy, breaking ties uniformly at random.
func (p *SimplePolicy) DecideMove(b qlearn.Board, player qlearn.Player) (qlearn.Decision, error) {
	moves := p.rules.LegalMoves(b, player)
	if len(moves) == 0 {
		return qlearn.Pass(), nil
	}

	maxEval := math.MinInt
	var bestMoves []qlearn.Move
	for _, m := range moves {
		next, err := p.rules.Apply(b, m, player)
		if err != nil {
			return qlearn.Pass(), errors.Wrapf(err, "error simulating move %v", m)
		}

		eval := p.evaluate(next, player)
		if eval > maxEval {
			maxEval = eval
			bestMoves = append(bestMoves[:0], m)
		} else if eval == maxEval {
			bestMoves = append(bestMoves, m)
		}
	}

	return qlearn.Play(bestMoves[p.rng.Intn(len(bestMoves))]), nil
}

func (p *SimplePolicy) evaluate(b qlearn.Board, player qlearn.Player) int {
	score := 0
	n := b.Size()
	for i := 0; i < n && i < len(p.values); i++ {
		for j := 0; j < n && j < len(p.values[i]); j++ {
			switch qlearn.Player(b.Cell(i, j)) {
			case player:
				score += p.values[i][j]
			case player.Opponent():
				score -= p.values[i][j]
			}
		}
	}

	if p.rules.IsTerminal(b) {
		return score + finalScoreWeight*p.rules.Score(b)*int(player)
	}

	own := len(p.rules.LegalMoves(b, player))
	opp := len(p.rules.LegalMoves(b, player.Opponent()))
	return score + mobilityWeight*(own-opp)
}

// SimpleVariantPolicy is a SimplePolicy with randomly perturbed position
// values, which also plays a random legal move with probability randomFactor.
type SimpleVariantPolicy struct {
	*SimplePolicy
	randomFactor float64
}

// NewSimpleVariantPolicy returns a SimpleVariantPolicy whose position
// values are each perturbed by a uniform integer in [-5, 5].
func NewSimpleVariantPolicy(rules qlearn.Rules, rng *rand.Rand, randomFactor float64) *SimpleVariantPolicy {
	values := make([][]int, len(positionValues))
	for i, row := range positionValues {
		values[i] = make([]int, len(row))
		for j, v := range row {
			values[i][j] = v + rng.Intn(2*maxPerturbation+1) - maxPerturbation
		}
	}

	return &SimpleVariantPolicy{
		SimplePolicy: &SimplePolicy{
			rules:  rules,
			rng:    rng,
			name:   SimpleVariant.String(),
			values: values,
		},
		randomFactor: randomFactor,
	}
}

// DecideMove implements qlearn.Policy.
func (p *SimpleVariantPolicy) DecideMove(b qlearn.Board, player qlearn.Player) (qlearn.Decision, error) {
	d, err := p.SimplePolicy.DecideMove(b, player)
	if err != nil || d.IsPass() {
		return d, err
	}

	if p.rng.Float64() < p.randomFactor {
		moves := p.rules.LegalMoves(b, player)
		return qlearn.Play(moves[p.rng.Intn(len(moves))]), nil
	}

	return d, nil
}
