package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tieBoards are every full board, with X moving first, that has no line.
var tieBoards = []string{
	"OOXXOOOXX", "OOXXXOOOX", "OOXXXOOXO", "OOXXXOOXX", "OXOOOXXOX", "OXOOXOXOX",
	"OXOOXXXOO", "OXOOXXXOX", "OXOXOOXOX", "OXOXOXXOX", "OXOXXOOOX", "OXOXXOXOX",
	"OXXXOOOOX", "OXXXOOOXX", "OXXXOOXOX", "OXXXXOOOX", "XOOOOXXXO", "XOOOXXOXO",
	"XOOOXXXOO", "XOOOXXXXO", "XOXOOXOXO", "XOXOOXXXO", "XOXOXOOXO", "XOXOXXOXO",
	"XOXXOOOXO", "XOXXOOOXX", "XOXXOXOXO", "XOXXXOOXO", "XXOOOXXOO", "XXOOOXXOX",
	"XXOOOXXXO", "XXOOXXXOO",
}

func boardOf(t *testing.T, layout string) Board {
	t.Helper()
	require.Len(t, layout, BoardSize)

	var board Board
	for i, r := range layout {
		if r != '.' {
			board[i] = string(r)
		}
	}

	return board
}

func TestEvaluate_EveryWinningLine(t *testing.T) {
	for _, mark := range []string{PlayerX, PlayerO, "@"} {
		for _, line := range WinCombos {
			// Given: a board where only this line is held by mark
			var board Board
			for _, cell := range line {
				board[cell] = mark
			}

			// When: evaluating for mark
			outcome := Evaluate(board, mark)

			// Then: mark wins through that line
			require.True(t, outcome.IsWin(), "line %v", line)
			assert.Equal(t, mark, outcome.Winner)
			require.NotNil(t, outcome.Line)
			assert.Equal(t, line, *outcome.Line)
		}
	}
}

func TestEvaluate_TopRowScenario(t *testing.T) {
	// Given: side A plays 0, 1 and 2 with no replies
	var board Board
	for _, cell := range []int{0, 1, 2} {
		require.NoError(t, board.Place(cell, PlayerX))
	}

	// When: evaluating after the third placement
	outcome := Evaluate(board, PlayerX)

	// Then: X wins through the top row
	assert.Equal(t, Win(PlayerX, WinningLine{0, 1, 2}), outcome)
}

func TestEvaluate_Tie(t *testing.T) {
	t.Run("Full board without a line", func(t *testing.T) {
		board := boardOf(t, "XOXOXOOXO")

		assert.Equal(t, Tie(), Evaluate(board, PlayerX))
		assert.Equal(t, Tie(), Evaluate(board, PlayerO))
	})

	t.Run("Every known tie configuration", func(t *testing.T) {
		for _, layout := range tieBoards {
			board := boardOf(t, layout)

			assert.True(t, Evaluate(board, PlayerX).IsTie(), layout)
			assert.True(t, Evaluate(board, PlayerO).IsTie(), layout)
		}
	})

	t.Run("A win on the ninth turn is a win, not a tie", func(t *testing.T) {
		board := boardOf(t, "XOXOXOOXX")

		outcome := Evaluate(board, PlayerX)

		assert.True(t, outcome.IsWin())
		assert.Equal(t, WinningLine{0, 4, 8}, *outcome.Line)
	})
}

func TestEvaluate_InProgress(t *testing.T) {
	t.Run("Fewer than five turns is always in progress", func(t *testing.T) {
		for _, layout := range []string{".........", "XO.......", "XX.O.....", "XXO.O....", "X.X.O.O.."} {
			board := boardOf(t, layout)
			require.Less(t, board.TurnCount(), MinTurnsToWin)

			assert.Equal(t, InProgress(), Evaluate(board, PlayerX))
			assert.Equal(t, InProgress(), Evaluate(board, PlayerO))
		}
	})

	t.Run("The other mark's line does not count", func(t *testing.T) {
		board := boardOf(t, "XXXOO....")

		assert.Equal(t, InProgress(), Evaluate(board, PlayerO))
		assert.False(t, Evaluate(board, PlayerO).IsOver())
	})
}
