// Package othello implements the rules of Othello on a 6x6 board.
package othello

import (
	"strings"

	"github.com/timpalpant/go-qothello"
)

// Size is the number of rows and columns of the board.
const Size = 6

// Board is a 6x6 Othello position. Cells hold 1 for Black, -1 for White
// and 0 if empty. Board implements qlearn.Board.
type Board struct {
	cells [Size][Size]int8
}

// NewBoard returns the starting position, with two stones of each
// color crossed in the center.
func NewBoard() Board {
	var b Board
	b.cells[2][2] = int8(qlearn.White)
	b.cells[2][3] = int8(qlearn.Black)
	b.cells[3][2] = int8(qlearn.Black)
	b.cells[3][3] = int8(qlearn.White)
	return b
}

// FromCells returns a Board with the given cells, in row-major order.
func FromCells(cells [Size][Size]int8) Board {
	return Board{cells: cells}
}

// Size implements qlearn.Board.
func (b Board) Size() int {
	return Size
}

// Cell implements qlearn.Board.
func (b Board) Cell(row, col int) int {
	return int(b.cells[row][col])
}

// Count returns the number of stones of the given player.
func (b Board) Count(p qlearn.Player) int {
	n := 0
	for i := range b.cells {
		for _, c := range b.cells[i] {
			if c == int8(p) {
				n++
			}
		}
	}

	return n
}

// String renders the board with ● for Black and ○ for White.
func (b Board) String() string {
	var sb strings.Builder
	sb.WriteString("  0 1 2 3 4 5\n")
	for i := range b.cells {
		sb.WriteByte(byte('0' + i))
		for _, c := range b.cells[i] {
			sb.WriteByte(' ')
			switch qlearn.Player(c) {
			case qlearn.Black:
				sb.WriteString("●")
			case qlearn.White:
				sb.WriteString("○")
			default:
				sb.WriteString("·")
			}
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}

func inBoard(row, col int) bool {
	return row >= 0 && row < Size && col >= 0 && col < Size
}

// asBoard converts any qlearn.Board of the right size to a Board.
func asBoard(b qlearn.Board) Board {
	if ob, ok := b.(Board); ok {
		return ob
	}

	var result Board
	for i := 0; i < Size; i++ {
		for j := 0; j < Size; j++ {
			result.cells[i][j] = int8(b.Cell(i, j))
		}
	}

	return result
}
