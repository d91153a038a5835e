package qlearn

import "fmt"

// Player identifies one side of the board. Board cells hold the value of
// the Player occupying them, or 0 if the cell is empty.
type Player int8

const (
	Black Player = 1
	White Player = -1
)

// Opponent returns the other side.
func (p Player) Opponent() Player {
	return -p
}

func (p Player) String() string {
	switch p {
	case Black:
		return "Black"
	case White:
		return "White"
	case 0:
		return "Draw"
	default:
		return fmt.Sprintf("Player(%d)", int8(p))
	}
}

// Move is the placement of a stone at (Row, Col).
type Move struct {
	Row, Col int
}

func (m Move) String() string {
	return fmt.Sprintf("(%d, %d)", m.Row, m.Col)
}

// Decision is the outcome of a Policy: either a Move to play or a pass.
// The zero Decision is a pass.
type Decision struct {
	move Move
	play bool
}

// Play returns a Decision to play the given move.
func Play(m Move) Decision {
	return Decision{move: m, play: true}
}

// Pass returns a Decision to pass the turn.
func Pass() Decision {
	return Decision{}
}

// IsPass reports whether the decision is a pass.
func (d Decision) IsPass() bool {
	return !d.play
}

// Move returns the chosen move, and false if the decision is a pass.
func (d Decision) Move() (Move, bool) {
	return d.move, d.play
}

func (d Decision) String() string {
	if !d.play {
		return "pass"
	}

	return d.move.String()
}

// Board is an immutable board position.
type Board interface {
	// Size is the number of rows (and columns) of the square board.
	Size() int
	// Cell returns the value of the given cell: the Player occupying it, or 0.
	Cell(row, col int) int
}

// Rules is the deterministic transition function of the game.
type Rules interface {
	// Initial returns the starting position.
	Initial() Board
	// LegalMoves returns all moves the player may make on the board.
	LegalMoves(b Board, p Player) []Move
	// Apply returns the board resulting from the player making the move.
	// It fails with an error wrapping ErrIllegalMove if the move is not legal.
	Apply(b Board, m Move, p Player) (Board, error)
	// IsTerminal reports whether the game is over.
	IsTerminal(b Board) bool
	// Score is positive when Black is ahead, negative when White is ahead.
	Score(b Board) int
}

// Policy chooses moves for one side of the board.
type Policy interface {
	Name() string
	// DecideMove returns the move to play, or a pass if the player has no legal move.
	DecideMove(b Board, p Player) (Decision, error)
}

// Winner returns the side that is ahead on the board according to
// rules.Score, or 0 if the position is even.
func Winner(rules Rules, b Board) Player {
	score := rules.Score(b)
	switch {
	case score > 0:
		return Black
	case score < 0:
		return White
	default:
		return 0
	}
}
