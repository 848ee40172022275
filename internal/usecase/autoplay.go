package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-autoplay/internal/bot"
	"github.com/rocketscienceinc/tictactoe-autoplay/internal/entity"
	"github.com/rocketscienceinc/tictactoe-autoplay/internal/tictactoe"
)

// DefaultMaxTurns is 500 turns for each mark, interleaved.
const DefaultMaxTurns = 1000

var (
	ErrInvalidTurnBudget = errors.New("turn budget must be positive")
	ErrMissingStrategy   = errors.New("a strategy is required for both sides")
	ErrAutoplayExhausted = errors.New("autoplay turn budget is exhausted")
)

type seriesArchive interface {
	CreateOrUpdate(ctx context.Context, summary *entity.SeriesSummary) error
}

type AutoplayConfig struct {
	StrategyA bot.Strategy
	StrategyB bot.Strategy
	MaxTurns  int
	Starter   entity.StarterPolicy
	P1Mark    string
	P2Mark    string
	// Delay paces turns for a human watching; zero runs them back to back.
	Delay time.Duration
}

// TurnReport describes one applied autoplay turn.
type TurnReport struct {
	Turn      int
	Game      int
	Side      entity.Side
	Mark      string
	Cell      int
	Board     entity.Board
	Outcome   entity.Outcome
	TurnsLeft int
}

type AutoplayOption func(*Autoplay)

func WithArchive(archive seriesArchive) AutoplayOption {
	return func(that *Autoplay) {
		that.archive = archive
	}
}

func WithTurnListener(listener func(TurnReport)) AutoplayOption {
	return func(that *Autoplay) {
		that.onTurn = listener
	}
}

func WithGameEndListener(listener func(TurnReport, tictactoe.Scores)) AutoplayOption {
	return func(that *Autoplay) {
		that.onGameEnd = listener
	}
}

// Autoplay plays computer against computer for a fixed turn budget. Each
// Step applies exactly one turn; a finished game is scored and the next one
// starts at once. It is not safe for concurrent use.
type Autoplay struct {
	logger *slog.Logger

	controller *tictactoe.GameController
	strategies [2]bot.Strategy
	archive    seriesArchive
	delay      time.Duration
	turnsLeft  int
	started    bool

	onTurn    func(TurnReport)
	onGameEnd func(TurnReport, tictactoe.Scores)

	summary entity.SeriesSummary
}

func NewAutoplay(logger *slog.Logger, conf AutoplayConfig, opts ...AutoplayOption) (*Autoplay, error) {
	if conf.MaxTurns <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidTurnBudget, conf.MaxTurns)
	}

	if conf.StrategyA == nil || conf.StrategyB == nil {
		return nil, ErrMissingStrategy
	}

	if conf.P1Mark == "" && conf.P2Mark == "" {
		conf.P1Mark, conf.P2Mark = entity.PlayerX, entity.PlayerO
	}

	if conf.Starter == "" {
		conf.Starter = entity.StarterFixed
	}

	controller, err := tictactoe.NewGameController(conf.P1Mark, conf.P2Mark, conf.Starter)
	if err != nil {
		return nil, fmt.Errorf("failed to create game controller: %w", err)
	}

	autoplay := &Autoplay{
		logger:     logger.With("component", "autoplay"),
		controller: controller,
		strategies: [2]bot.Strategy{conf.StrategyA, conf.StrategyB},
		delay:      conf.Delay,
		turnsLeft:  conf.MaxTurns,
		summary: entity.SeriesSummary{
			ID:        uuid.NewString(),
			StrategyA: conf.StrategyA.Name(),
			StrategyB: conf.StrategyB.Name(),
			MarkA:     conf.P1Mark,
			MarkB:     conf.P2Mark,
			Starter:   conf.Starter,
			MaxTurns:  conf.MaxTurns,
		},
	}

	for _, opt := range opts {
		opt(autoplay)
	}

	return autoplay, nil
}

func (that *Autoplay) ID() string {
	return that.summary.ID
}

func (that *Autoplay) Done() bool {
	return that.turnsLeft == 0
}

func (that *Autoplay) TurnsLeft() int {
	return that.turnsLeft
}

// Step plays one turn for the side the controller expects.
func (that *Autoplay) Step(ctx context.Context) (TurnReport, error) {
	if err := ctx.Err(); err != nil {
		return TurnReport{}, err
	}

	if that.Done() {
		return TurnReport{}, ErrAutoplayExhausted
	}

	if !that.started {
		that.started = true
		that.summary.StartedAt = time.Now()
		that.controller.NewGame()
	}

	side := that.controller.NextSide()

	cell, outcome, err := that.controller.ComputerMove(that.strategies[side])
	if err != nil {
		return TurnReport{}, fmt.Errorf("autoplay turn %d: %w", that.summary.TurnsPlayed+1, err)
	}

	that.turnsLeft--
	that.summary.TurnsPlayed++

	report := TurnReport{
		Turn:      that.summary.TurnsPlayed,
		Game:      that.controller.CurrentScores().GamesPlayed,
		Side:      side,
		Mark:      that.controller.MarkOf(side),
		Cell:      cell,
		Board:     that.controller.Board(),
		Outcome:   outcome,
		TurnsLeft: that.turnsLeft,
	}
	if !outcome.IsOver() {
		report.Game++
	}

	if that.onTurn != nil {
		that.onTurn(report)
	}

	if outcome.IsOver() {
		that.endGame(report)
	}

	return report, nil
}

func (that *Autoplay) endGame(report TurnReport) {
	scores := that.controller.CurrentScores()

	that.logger.Debug("game finished",
		"series", that.summary.ID,
		"game", scores.GamesPlayed,
		"result", report.Outcome.Status,
		"winner", report.Outcome.Winner,
		"last_side", report.Side.String(),
	)

	if that.onGameEnd != nil {
		that.onGameEnd(report, scores)
	}

	if !that.Done() {
		that.controller.NewGame()
	}
}

// Run steps until the budget is spent or ctx is canceled. A canceled run
// drops the game in progress and reports what was completed.
func (that *Autoplay) Run(ctx context.Context) (*entity.SeriesSummary, error) {
	var tick <-chan time.Time
	if that.delay > 0 {
		ticker := time.NewTicker(that.delay)
		defer ticker.Stop()

		tick = ticker.C
	}

	for !that.Done() {
		if tick != nil {
			select {
			case <-ctx.Done():
				return that.finish(ctx, true)
			case <-tick:
			}
		}

		if ctx.Err() != nil {
			return that.finish(ctx, true)
		}

		if _, err := that.Step(ctx); err != nil {
			return that.abort(err)
		}
	}

	return that.finish(ctx, false)
}

// Summary returns the tally so far.
func (that *Autoplay) Summary() entity.SeriesSummary {
	summary := that.summary
	series := that.controller.Series()

	summary.GamesPlayed = series.GamesPlayed
	summary.PointsA = series.PointsA
	summary.PointsB = series.PointsB
	summary.WinsA = series.WinsA
	summary.WinsB = series.WinsB
	summary.Ties = series.Ties

	return summary
}

// seal stamps the end of the run and returns the final tally.
func (that *Autoplay) seal(canceled bool) entity.SeriesSummary {
	game := that.controller.Game()
	that.summary.Canceled = canceled
	that.summary.Abandoned = game.IsOngoing() && game.Board.TurnCount() > 0
	that.summary.FinishedAt = time.Now()
	if that.summary.StartedAt.IsZero() {
		that.summary.StartedAt = that.summary.FinishedAt
	}

	return that.Summary()
}

// abort ends a run stopped by a failed turn. The partial series is not archived.
func (that *Autoplay) abort(cause error) (*entity.SeriesSummary, error) {
	summary := that.seal(false)

	that.logger.With("method", "abort", "series", summary.ID).Error("autoplay aborted",
		"turns", summary.TurnsPlayed,
		"games", summary.GamesPlayed,
		"abandoned", summary.Abandoned,
		"error", cause,
	)

	return &summary, cause
}

func (that *Autoplay) finish(ctx context.Context, canceled bool) (*entity.SeriesSummary, error) {
	log := that.logger.With("method", "finish", "series", that.summary.ID)

	summary := that.seal(canceled)

	log.Info("autoplay finished",
		"turns", summary.TurnsPlayed,
		"games", summary.GamesPlayed,
		"points_a", summary.PointsA,
		"points_b", summary.PointsB,
		"ties", summary.Ties,
		"canceled", summary.Canceled,
	)

	if that.archive == nil {
		return &summary, nil
	}

	// the series is archived even when the run itself was canceled
	if err := that.archive.CreateOrUpdate(context.WithoutCancel(ctx), &summary); err != nil {
		log.Error("failed to archive series", "error", err)
		return &summary, fmt.Errorf("failed to archive series: %w", err)
	}

	return &summary, nil
}
