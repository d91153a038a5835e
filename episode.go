package qlearn

// Episode records the transitions experienced by the learning agent over
// one game. Each transition links the position the agent last left the
// board in to the position it leaves the board in after its next move.
type Episode struct {
	started     bool
	last        StateKey
	transitions []Transition
}

// Record adds the agent's move from board before to board after,
// and the reward it received for it.
func (e *Episode) Record(before, after Board, reward float64, terminal bool) {
	if !e.started {
		e.last = Encode(before)
		e.started = true
	}

	next := Encode(after)
	e.transitions = append(e.transitions, Transition{
		State:     e.last,
		NextState: next,
		Reward:    reward,
		Terminal:  terminal,
	})
	e.last = next
}

// Finish closes the episode at the final board of the game. If the game
// ended on an opponent's move, a terminal transition carrying the given
// reward is added so that the outcome reaches the agent's last position.
func (e *Episode) Finish(final Board, reward float64) {
	if !e.started {
		return
	}

	if n := len(e.transitions); n > 0 && e.transitions[n-1].Terminal {
		return
	}

	e.transitions = append(e.transitions, Transition{
		State:     e.last,
		NextState: Encode(final),
		Reward:    reward,
		Terminal:  true,
	})
}

// Transitions returns the recorded transitions in the order they occurred.
func (e *Episode) Transitions() []Transition {
	return e.transitions
}

// Len returns the number of recorded transitions.
func (e *Episode) Len() int {
	return len(e.transitions)
}
