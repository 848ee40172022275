package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rocketscienceinc/tictactoe-autoplay/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-autoplay/internal/bot"
	"github.com/rocketscienceinc/tictactoe-autoplay/internal/entity"
	"github.com/rocketscienceinc/tictactoe-autoplay/internal/tictactoe"
)

const computerName = "Computer"

type playFlags struct {
	vsComputer bool
	strategy   string
	index      bool
	delay      time.Duration
}

func newPlayCommand(deps Deps) *cobra.Command {
	conf := deps.Config
	flags := playFlags{}

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a person at the same keyboard, or the computer",
		Long: `Play games until "quit" or end of input. Pick a square with the keypad
digits (7 8 9 on top), the letters q w e / a s d / z x c, or with --index
the cell numbers 0 to 8.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, err := newPlaySession(deps, flags, cmd.OutOrStdout())
			if err != nil {
				return err
			}

			return session.run(cmd.Context(), cmd.InOrStdin())
		},
	}

	cmd.Flags().BoolVar(&flags.vsComputer, "vs-computer", false, "play against the computer")
	cmd.Flags().StringVar(&flags.strategy, "strategy", conf.Computer.Strategy,
		"computer strategy: "+strings.Join(bot.Names(), ", "))
	cmd.Flags().BoolVar(&flags.index, "index", false, "select squares with cell numbers 0-8")
	cmd.Flags().DurationVar(&flags.delay, "delay", conf.Computer.Delay, "pause before each computer move")

	return cmd
}

type playSession struct {
	logger *slog.Logger
	out    io.Writer

	controller *tictactoe.GameController
	keys       KeyMap
	renderer   *Renderer

	computer     bot.Strategy
	computerSide entity.Side
	delay        time.Duration

	lines <-chan string
}

func newPlaySession(deps Deps, flags playFlags, out io.Writer) (*playSession, error) {
	conf := deps.Config

	policy, err := conf.Game.StarterPolicy()
	if err != nil {
		return nil, err
	}

	keys := KeypadKeyMap()
	if flags.index {
		keys = IndexKeyMap()
	}

	session := &playSession{
		logger:       deps.Logger.With("component", "play"),
		out:          out,
		keys:         keys,
		renderer:     NewRenderer(colorProfile(deps, out), conf.Game.P1Mark, conf.Game.P2Mark, WithKeyHints(keys)),
		computerSide: entity.SideB,
		delay:        flags.delay,
	}

	player2 := conf.Game.Player2
	if flags.vsComputer {
		session.computer, err = bot.New(flags.strategy, nil)
		if err != nil {
			return nil, err
		}

		player2 = computerName
	}

	session.controller, err = tictactoe.NewGameController(conf.Game.P1Mark, conf.Game.P2Mark, policy,
		tictactoe.WithPlayerNames(conf.Game.Player1, player2))
	if err != nil {
		return nil, fmt.Errorf("failed to create game controller: %w", err)
	}

	return session, nil
}

func (that *playSession) run(ctx context.Context, in io.Reader) error {
	// stops the reader once the session ends
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	that.lines = readLines(ctx, in)

	that.startGame()

	for {
		side := that.controller.NextSide()

		var (
			outcome entity.Outcome
			err     error
		)

		if that.computer != nil && side == that.computerSide {
			outcome, err = that.computerTurn(ctx, side)
			if errors.Is(err, context.Canceled) {
				that.printScores()
				return nil
			}
		} else {
			var ok bool

			outcome, ok, err = that.humanTurn(ctx, side)
			if !ok {
				that.printScores()
				return nil
			}

			if errors.Is(err, errRetry) {
				continue
			}
		}

		if err != nil {
			return err
		}

		game := that.controller.Game()
		fmt.Fprint(that.out, that.renderer.Board(game.Board, outcome.Line))

		if outcome.IsOver() {
			that.printResult(outcome)
			that.printScores()
			that.startGame()
		}
	}
}

var errRetry = errors.New("retry turn")

// humanTurn prompts for a key and applies it. ok is false once input ends.
func (that *playSession) humanTurn(ctx context.Context, side entity.Side) (entity.Outcome, bool, error) {
	fmt.Fprintf(that.out, "%s (%s)> ", that.controller.NameOf(side), that.controller.MarkOf(side))

	var line string
	select {
	case <-ctx.Done():
		fmt.Fprintln(that.out)
		return entity.Outcome{}, false, nil
	case next, ok := <-that.lines:
		if !ok {
			fmt.Fprintln(that.out)
			return entity.Outcome{}, false, nil
		}

		line = next
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "quit", "exit":
		return entity.Outcome{}, false, nil
	case "", "?", "help":
		fmt.Fprintf(that.out, "Keys:\n%s\nor q w e / a s d / z x c, \"quit\" to stop\n", that.keys.Legend())
		return entity.Outcome{}, true, errRetry
	}

	cell, err := that.keys.Cell(line)
	if err != nil {
		fmt.Fprintf(that.out, "%q is not a square, type ? for the keys\n", strings.TrimSpace(line))
		return entity.Outcome{}, true, errRetry
	}

	outcome, err := that.controller.PlaceMoveAs(side, cell)
	if errors.Is(err, apperror.ErrCellOccupied) {
		fmt.Fprintln(that.out, "That square is taken, pick another")
		return entity.Outcome{}, true, errRetry
	}

	if err != nil {
		return entity.Outcome{}, true, err
	}

	return outcome, true, nil
}

func (that *playSession) computerTurn(ctx context.Context, side entity.Side) (entity.Outcome, error) {
	if that.delay > 0 {
		timer := time.NewTimer(that.delay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return entity.Outcome{}, ctx.Err()
		case <-timer.C:
		}
	}

	cell, outcome, err := that.controller.ComputerMove(that.computer)
	if err != nil {
		that.logger.Error("computer move failed", "strategy", that.computer.Name(), "error", err)
		return entity.Outcome{}, err
	}

	fmt.Fprintf(that.out, "%s (%s) plays %s\n", that.controller.NameOf(side), that.controller.MarkOf(side), that.keys.Key(cell))

	return outcome, nil
}

func (that *playSession) startGame() {
	starter := that.controller.NewGame()
	game := that.controller.CurrentScores().GamesPlayed + 1

	fmt.Fprintf(that.out, "\nGame %d: %s (%s) goes first\n", game, that.controller.NameOf(starter), that.controller.MarkOf(starter))
	fmt.Fprint(that.out, that.renderer.Board(that.controller.Board(), nil))
}

func (that *playSession) printResult(outcome entity.Outcome) {
	if outcome.IsTie() {
		fmt.Fprintln(that.out, "It's a tie")
		return
	}

	side, _ := that.controller.SideOf(outcome.Winner)
	fmt.Fprintf(that.out, "%s (%s) wins\n", that.controller.NameOf(side), outcome.Winner)
}

func (that *playSession) printScores() {
	scores := that.controller.CurrentScores()

	fmt.Fprintf(that.out, "Score: %s %s, %s %s, ties %d, games %d\n",
		that.controller.NameOf(entity.SideA), formatPoints(scores.PointsA),
		that.controller.NameOf(entity.SideB), formatPoints(scores.PointsB),
		scores.Ties, scores.GamesPlayed,
	)
}

// readLines feeds lines from in until it ends or ctx is done. A line
// scanned after ctx is done is dropped.
func readLines(ctx context.Context, in io.Reader) <-chan string {
	lines := make(chan string)

	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			if ctx.Err() != nil {
				return
			}

			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	return lines
}

func formatPoints(points float64) string {
	return strings.TrimSuffix(fmt.Sprintf("%.1f", points), ".0")
}
