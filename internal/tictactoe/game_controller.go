package tictactoe

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-autoplay/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-autoplay/internal/entity"
)

const (
	DefaultPlayer1 = "Player 1"
	DefaultPlayer2 = "Player 2"
)

type moveSelector interface {
	Select(board entity.Board, mark, opponent string) (int, error)
}

// Scores is the cumulative series tally.
type Scores struct {
	PointsA     float64
	PointsB     float64
	Ties        int
	GamesPlayed int
}

type Option func(*GameController)

func WithPlayerNames(player1, player2 string) Option {
	return func(that *GameController) {
		that.names = [2]string{player1, player2}
	}
}

func WithIDGenerator(generate func() string) Option {
	return func(that *GameController) {
		that.newID = generate
	}
}

// GameController is the only writer of the board and the series tally.
// It is not safe for concurrent use.
type GameController struct {
	marks [2]string
	names [2]string
	newID func() string

	game   *entity.Game
	series *entity.Series
}

func NewGameController(p1Mark, p2Mark string, policy entity.StarterPolicy, opts ...Option) (*GameController, error) {
	if p1Mark == entity.EmptyCell || p2Mark == entity.EmptyCell || p1Mark == p2Mark {
		return nil, fmt.Errorf("%w: %q and %q", apperror.ErrInvalidMarks, p1Mark, p2Mark)
	}

	if _, err := entity.ParseStarterPolicy(string(policy)); err != nil {
		return nil, err
	}

	controller := &GameController{
		marks:  [2]string{p1Mark, p2Mark},
		names:  [2]string{DefaultPlayer1, DefaultPlayer2},
		newID:  uuid.NewString,
		game:   entity.NewGame(""),
		series: entity.NewSeries(policy),
	}

	for _, opt := range opts {
		opt(controller)
	}

	return controller, nil
}

// NewGame clears the board and lets the starter policy pick who opens.
// An unfinished game is dropped without being scored.
func (that *GameController) NewGame() entity.Side {
	starter := that.series.NextStarter()

	that.game = entity.NewGame(that.newID())
	that.game.Start(starter, that.MarkOf(starter))

	return starter
}

// PlaceMove plays cell for whichever side is expected to move.
func (that *GameController) PlaceMove(cell int) (entity.Outcome, error) {
	if err := that.game.ConfirmOngoingState(); err != nil {
		return entity.InProgress(), err
	}

	return that.place(that.NextSide(), cell)
}

// PlaceMoveAs plays cell for side, rejecting a move out of turn.
func (that *GameController) PlaceMoveAs(side entity.Side, cell int) (entity.Outcome, error) {
	if err := that.game.ConfirmOngoingState(); err != nil {
		return entity.InProgress(), err
	}

	if side != that.NextSide() {
		return entity.InProgress(), apperror.ErrNotYourTurn
	}

	return that.place(side, cell)
}

// ComputerMove asks selector for the expected side's cell and applies it.
func (that *GameController) ComputerMove(selector moveSelector) (int, entity.Outcome, error) {
	if err := that.game.ConfirmOngoingState(); err != nil {
		return 0, entity.InProgress(), err
	}

	side := that.NextSide()

	cell, err := selector.Select(that.game.Board, that.MarkOf(side), that.MarkOf(side.Other()))
	if err != nil {
		return 0, entity.InProgress(), fmt.Errorf("failed to select cell: %w", err)
	}

	outcome, err := that.place(side, cell)
	if err != nil {
		return cell, outcome, fmt.Errorf("selected cell rejected: %w", err)
	}

	return cell, outcome, nil
}

func (that *GameController) place(side entity.Side, cell int) (entity.Outcome, error) {
	outcome, err := that.game.MakeTurn(that.MarkOf(side), that.MarkOf(side.Other()), cell)
	if err != nil {
		return outcome, fmt.Errorf("invalid turn: %w", err)
	}

	if outcome.IsOver() {
		that.series.Record(outcome, side)
	}

	return outcome, nil
}

// NextSide derives the side to move from the turn count parity and the
// side that opened the current game.
func (that *GameController) NextSide() entity.Side {
	if that.game.Board.TurnCount()%2 == 0 {
		return that.game.Starter
	}

	return that.game.Starter.Other()
}

func (that *GameController) MarkOf(side entity.Side) string {
	return that.marks[side]
}

func (that *GameController) NameOf(side entity.Side) string {
	return that.names[side]
}

func (that *GameController) SideOf(mark string) (entity.Side, bool) {
	switch mark {
	case that.marks[entity.SideA]:
		return entity.SideA, true
	case that.marks[entity.SideB]:
		return entity.SideB, true
	default:
		return entity.SideA, false
	}
}

// Game returns a copy of the current game.
func (that *GameController) Game() entity.Game {
	return *that.game
}

func (that *GameController) Board() entity.Board {
	return that.game.Board
}

func (that *GameController) Series() entity.Series {
	return *that.series
}

func (that *GameController) CurrentScores() Scores {
	return Scores{
		PointsA:     that.series.PointsA,
		PointsB:     that.series.PointsB,
		Ties:        that.series.Ties,
		GamesPlayed: that.series.GamesPlayed,
	}
}
