package othello

import (
	"github.com/pkg/errors"

	"github.com/timpalpant/go-qothello"
)

// Directions to scan for stones to flip, clockwise from up.
var directions = [8][2]int{
	{-1, 0}, {-1, 1}, {0, 1}, {1, 1},
	{1, 0}, {1, -1}, {0, -1}, {-1, -1},
}

// Rules implements qlearn.Rules for 6x6 Othello.
//
// A move must flip at least one opposing stone. The game is over when
// neither player can move, and is won by the player with more stones.
type Rules struct{}

// Initial implements qlearn.Rules.
func (Rules) Initial() qlearn.Board {
	return NewBoard()
}

// LegalMoves implements qlearn.Rules. Moves are returned in row-major order.
func (Rules) LegalMoves(b qlearn.Board, p qlearn.Player) []qlearn.Move {
	board := asBoard(b)
	var moves []qlearn.Move
	for i := 0; i < Size; i++ {
		for j := 0; j < Size; j++ {
			if board.isValidMove(i, j, p) {
				moves = append(moves, qlearn.Move{Row: i, Col: j})
			}
		}
	}

	return moves
}

// Apply implements qlearn.Rules.
func (Rules) Apply(b qlearn.Board, m qlearn.Move, p qlearn.Player) (qlearn.Board, error) {
	board := asBoard(b)
	if !board.isValidMove(m.Row, m.Col, p) {
		return nil, errors.Wrapf(qlearn.ErrIllegalMove, "%v cannot play %v", p, m)
	}

	board.cells[m.Row][m.Col] = int8(p)
	for _, d := range directions {
		if n := board.flips(m.Row, m.Col, p, d[0], d[1]); n > 0 {
			r, c := m.Row, m.Col
			for k := 0; k < n; k++ {
				r += d[0]
				c += d[1]
				board.cells[r][c] = int8(p)
			}
		}
	}

	return board, nil
}

// IsTerminal implements qlearn.Rules.
func (Rules) IsTerminal(b qlearn.Board) bool {
	board := asBoard(b)
	return !board.hasMove(qlearn.Black) && !board.hasMove(qlearn.White)
}

// Score implements qlearn.Rules as the difference in stone count.
func (Rules) Score(b qlearn.Board) int {
	board := asBoard(b)
	score := 0
	for i := range board.cells {
		for _, c := range board.cells[i] {
			score += int(c)
		}
	}

	return score
}

func (b *Board) isValidMove(row, col int, p qlearn.Player) bool {
	if !inBoard(row, col) || b.cells[row][col] != 0 {
		return false
	}

	for _, d := range directions {
		if b.flips(row, col, p, d[0], d[1]) > 0 {
			return true
		}
	}

	return false
}

func (b *Board) hasMove(p qlearn.Player) bool {
	for i := 0; i < Size; i++ {
		for j := 0; j < Size; j++ {
			if b.isValidMove(i, j, p) {
				return true
			}
		}
	}

	return false
}

// flips returns the number of opposing stones that the player placing
// a stone at (row, col) would flip in direction (dr, dc).
func (b *Board) flips(row, col int, p qlearn.Player, dr, dc int) int {
	opp := int8(p.Opponent())
	r, c := row+dr, col+dc
	n := 0
	for inBoard(r, c) && b.cells[r][c] == opp {
		n++
		r += dr
		c += dc
	}

	if n > 0 && inBoard(r, c) && b.cells[r][c] == int8(p) {
		return n
	}

	return 0
}
