package bot

import "github.com/rocketscienceinc/tictactoe-autoplay/internal/entity"

// Rudiments returns the cell that completes a line for mark, or failing that
// the cell that blocks a line for opponent. The whole win pass runs before
// the block pass so a winning move always beats a block.
func Rudiments(board entity.Board, mark, opponent string) (int, bool) {
	if cell, ok := completing(board, mark); ok {
		return cell, true
	}

	return completing(board, opponent)
}

// completing finds the first line holding two of mark and one empty cell.
func completing(board entity.Board, mark string) (int, bool) {
	if mark == entity.EmptyCell {
		return 0, false
	}

	for _, line := range entity.WinCombos {
		held, empty := 0, -1
		for _, cell := range line {
			switch board[cell] {
			case mark:
				held++
			case entity.EmptyCell:
				empty = cell
			}
		}

		if held == 2 && empty >= 0 {
			return empty, true
		}
	}

	return 0, false
}
