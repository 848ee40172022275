package entity

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-autoplay/internal/apperror"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"
	StatusWaiting  = "waiting"

	PlayerTie = "-"
)

var ErrUnknownGameStatus = errors.New("unknown game status")

type Game struct {
	ID      string       `json:"id"`
	Board   Board        `json:"board"`
	Winner  string       `json:"winner"`
	Line    *WinningLine `json:"line,omitempty"`
	Status  string       `json:"status"`
	Turn    string       `json:"player_turn"`
	Starter Side         `json:"starter"`
}

// NewGame returns a game in the waiting state; Start moves it to ongoing.
func NewGame(id string) *Game {
	return &Game{
		ID:     id,
		Status: StatusWaiting,
	}
}

// Start clears the board and hands the first turn to the starter's mark.
func (that *Game) Start(starter Side, starterMark string) {
	that.Board.Reset()
	that.Winner = ""
	that.Line = nil
	that.Starter = starter
	that.Turn = starterMark
	that.Status = StatusOngoing
}

// MakeTurn places playerMark and passes the turn to nextMark. The outcome is
// evaluated once enough turns have been played for a line to be complete.
func (that *Game) MakeTurn(playerMark, nextMark string, cell int) (Outcome, error) {
	if err := that.ConfirmOngoingState(); err != nil {
		return InProgress(), err
	}

	if that.Turn != playerMark {
		return InProgress(), apperror.ErrNotYourTurn
	}

	if err := that.Board.Place(cell, playerMark); err != nil {
		return InProgress(), err
	}

	outcome := InProgress()
	if that.Board.TurnCount() >= MinTurnsToWin {
		outcome = Evaluate(that.Board, playerMark)
	}

	that.UpdateGameState(outcome, nextMark)

	return outcome, nil
}

func (that *Game) UpdateGameState(outcome Outcome, nextMark string) {
	switch outcome.Status {
	// one player wins
	case OutcomeWin:
		that.Winner = outcome.Winner
		that.Line = outcome.Line
		that.Status = StatusFinished
		that.Turn = ""
	// tie
	case OutcomeTie:
		that.Winner = PlayerTie
		that.Status = StatusFinished
		that.Turn = ""
	// game continue
	default:
		that.Status = StatusOngoing
		that.Turn = nextMark
	}
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) IsWaiting() bool {
	return that.Status == StatusWaiting
}

func (that *Game) ConfirmOngoingState() error {
	switch {
	case that.IsWaiting():
		return apperror.ErrGameIsNotStarted
	case that.IsFinished():
		return apperror.ErrGameFinished
	case that.IsOngoing():
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownGameStatus, that.Status)
	}
}
