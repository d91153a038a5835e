package qlearn

import (
	"strconv"
	"strings"
)

// StateKey canonically identifies a board position. It is used to look up
// values in the ValueStore, and to link the states of a Transition.
//
// Keys are not meant to be human-readable: they are only guaranteed to be
// identical for boards with identical cells.
type StateKey string

const (
	cellSeparator = ','
	rowSeparator  = ';'
)

// Encode returns the StateKey of the given board. Cells are written in
// row-major order as signed integers.
func Encode(b Board) StateKey {
	n := b.Size()
	var sb strings.Builder
	sb.Grow(3 * n * n)
	var buf [4]byte
	for i := 0; i < n; i++ {
		if i > 0 {
			sb.WriteByte(rowSeparator)
		}

		for j := 0; j < n; j++ {
			if j > 0 {
				sb.WriteByte(cellSeparator)
			}

			sb.Write(strconv.AppendInt(buf[:0], int64(b.Cell(i, j)), 10))
		}
	}

	return StateKey(sb.String())
}
