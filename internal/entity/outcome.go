package entity

// MinTurnsToWin is the earliest turn count at which a line can be complete.
const MinTurnsToWin = 5

// WinningLine is one of the 8 index triples that wins when held by one mark.
type WinningLine [3]int

// WinCombos lists rows, then columns, then diagonals.
var WinCombos = []WinningLine{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

type OutcomeStatus string

const (
	OutcomeOngoing OutcomeStatus = "in_progress"
	OutcomeWin     OutcomeStatus = "win"
	OutcomeTie     OutcomeStatus = "tie"
)

type Outcome struct {
	Status OutcomeStatus `json:"status"`
	Winner string        `json:"winner,omitempty"`
	Line   *WinningLine  `json:"line,omitempty"`
}

func InProgress() Outcome {
	return Outcome{Status: OutcomeOngoing}
}

func Win(mark string, line WinningLine) Outcome {
	return Outcome{Status: OutcomeWin, Winner: mark, Line: &line}
}

func Tie() Outcome {
	return Outcome{Status: OutcomeTie}
}

func (that Outcome) IsOver() bool {
	return that.Status == OutcomeWin || that.Status == OutcomeTie
}

func (that Outcome) IsWin() bool {
	return that.Status == OutcomeWin
}

func (that Outcome) IsTie() bool {
	return that.Status == OutcomeTie
}

// Evaluate checks whether mark holds a whole line, or the board is full.
// Lines are scanned in WinCombos order, so the reported line is the first match.
func Evaluate(board Board, mark string) Outcome {
	if mark != EmptyCell {
		for _, line := range WinCombos {
			if board[line[0]] == mark && board[line[1]] == mark && board[line[2]] == mark {
				return Win(mark, line)
			}
		}
	}

	if board.IsFull() {
		return Tie()
	}

	return InProgress()
}
