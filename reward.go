package qlearn

// TerminalReward is the reward for winning a game. Losing is rewarded
// with -TerminalReward and a draw with 0.
const TerminalReward = 100.0

// RewardShaper computes the reward received by a player after moving.
// Non-terminal positions are rewarded with a heuristic estimate of the
// player's advantage, so that the agent gets a signal on every move.
type RewardShaper struct {
	rules           Rules
	scale           float64
	cornerWeight    float64
	legalMoveWeight float64
}

// NewRewardShaper returns a RewardShaper using the shaping weights of the given Params.
func NewRewardShaper(rules Rules, params Params) RewardShaper {
	return RewardShaper{
		rules:           rules,
		scale:           params.IntermediateRewardScale,
		cornerWeight:    params.CornerWeight,
		legalMoveWeight: params.LegalMoveWeight,
	}
}

// Reward returns the reward for the mover in the given position.
func (rs RewardShaper) Reward(b Board, mover Player) float64 {
	if rs.rules.IsTerminal(b) {
		switch Winner(rs.rules, b) {
		case mover:
			return TerminalReward
		case mover.Opponent():
			return -TerminalReward
		default:
			return 0.0
		}
	}

	opp := mover.Opponent()
	return (rs.heuristic(b, mover) - rs.heuristic(b, opp)) * rs.scale
}

// heuristic weighs corner ownership and mobility of the player relative to its opponent.
func (rs RewardShaper) heuristic(b Board, p Player) float64 {
	var score float64
	n := b.Size() - 1
	corners := [4][2]int{{0, 0}, {0, n}, {n, 0}, {n, n}}
	for _, c := range corners {
		switch Player(b.Cell(c[0], c[1])) {
		case p:
			score += rs.cornerWeight
		case p.Opponent():
			score -= rs.cornerWeight
		}
	}

	own := len(rs.rules.LegalMoves(b, p))
	opp := len(rs.rules.LegalMoves(b, p.Opponent()))
	score += float64(own-opp) * rs.legalMoveWeight
	return score
}
