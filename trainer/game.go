package trainer

import (
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/timpalpant/go-qothello"
)

// TurnRecorder is called after every move, with the board before and
// after it was played. Passes are not recorded.
type TurnRecorder func(before, after qlearn.Board, mover qlearn.Player)

// GameResult summarizes one finished game.
type GameResult struct {
	ID         uuid.UUID
	Index      int
	Time       time.Time
	Black      string
	White      string
	AgentColor qlearn.Player
	Winner     qlearn.Player
	Score      int
	NumMoves   int
	Epsilon    float64
}

// WinnerName returns the name of the winning policy, or "Draw".
func (r GameResult) WinnerName() string {
	switch r.Winner {
	case qlearn.Black:
		return r.Black
	case qlearn.White:
		return r.White
	default:
		return "Draw"
	}
}

// PlayGame plays one game to completion, with black moving first.
// It returns the final board and the number of moves played.
//
// A policy that plays an illegal move, or passes while it has a legal
// move, aborts the game with an error wrapping qlearn.ErrIllegalMove.
func PlayGame(rules qlearn.Rules, black, white qlearn.Policy, record TurnRecorder, render io.Writer) (qlearn.Board, int, error) {
	b := rules.Initial()
	player := qlearn.Black
	numMoves := 0
	for !rules.IsTerminal(b) {
		policy := black
		if player == qlearn.White {
			policy = white
		}

		d, err := policy.DecideMove(b, player)
		if err != nil {
			return b, numMoves, errors.Wrapf(err, "%v failed to decide a move", policy.Name())
		}

		if render != nil {
			fmt.Fprintf(render, "%v\n%v (%v) plays %v\n", b, policy.Name(), player, d)
		}

		m, ok := d.Move()
		if !ok {
			if moves := rules.LegalMoves(b, player); len(moves) > 0 {
				return b, numMoves, errors.Wrapf(qlearn.ErrIllegalMove,
					"%v passed with %d legal moves", policy.Name(), len(moves))
			}

			player = player.Opponent()
			continue
		}

		next, err := rules.Apply(b, m, player)
		if err != nil {
			return b, numMoves, errors.Wrapf(err, "invalid move by %v", policy.Name())
		}

		if record != nil {
			record(b, next, player)
		}

		b = next
		numMoves++
		player = player.Opponent()
	}

	if render != nil {
		fmt.Fprintf(render, "%v\nGame over: %v wins (score %d)\n", b, qlearn.Winner(rules, b), rules.Score(b))
	}

	return b, numMoves, nil
}
