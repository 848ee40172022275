package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-autoplay/internal/apperror"
)

const (
	PlayerX = "X"
	PlayerO = "O"

	EmptyCell = ""

	BoardSize = 9
	Center    = 4
)

var (
	Corners = []int{0, 2, 6, 8}
	Sides   = []int{1, 3, 5, 7}
)

// Board is the 3x3 grid stored row-major: 0,1,2 / 3,4,5 / 6,7,8.
type Board [BoardSize]string

func (that *Board) IsEmpty(cell int) bool {
	return inRange(cell) && that[cell] == EmptyCell
}

// Has reports whether cell holds mark.
func (that *Board) Has(cell int, mark string) bool {
	return inRange(cell) && mark != EmptyCell && that[cell] == mark
}

// Place puts mark on an empty cell. The board is left untouched on error.
func (that *Board) Place(cell int, mark string) error {
	if !inRange(cell) {
		return fmt.Errorf("%w: %w: cell %d", apperror.ErrInvalidMove, apperror.ErrInvalidCell, cell)
	}

	if that[cell] != EmptyCell {
		return fmt.Errorf("%w: %w: cell %d", apperror.ErrInvalidMove, apperror.ErrCellOccupied, cell)
	}

	that[cell] = mark

	return nil
}

func (that *Board) TurnCount() int {
	count := 0
	for _, cell := range that {
		if cell != EmptyCell {
			count++
		}
	}

	return count
}

func (that *Board) IsFull() bool {
	return that.TurnCount() == BoardSize
}

func (that *Board) Reset() {
	for i := range that {
		that[i] = EmptyCell
	}
}

// EmptyCells returns the indices of unoccupied cells in ascending order.
func (that *Board) EmptyCells() []int {
	cells := make([]int, 0, BoardSize)
	for i, cell := range that {
		if cell == EmptyCell {
			cells = append(cells, i)
		}
	}

	return cells
}

// EmptyOf filters candidates down to the unoccupied ones, keeping their order.
func (that *Board) EmptyOf(candidates []int) []int {
	cells := make([]int, 0, len(candidates))
	for _, cell := range candidates {
		if that.IsEmpty(cell) {
			cells = append(cells, cell)
		}
	}

	return cells
}

func inRange(cell int) bool {
	return cell >= 0 && cell < BoardSize
}
