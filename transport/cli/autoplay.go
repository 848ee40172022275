package cli

import (
	"fmt"
	"io"
	"math/rand"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rocketscienceinc/tictactoe-autoplay/internal/bot"
	"github.com/rocketscienceinc/tictactoe-autoplay/internal/entity"
	"github.com/rocketscienceinc/tictactoe-autoplay/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-autoplay/internal/usecase"
)

type autoplayFlags struct {
	turns     int
	strategy  string
	strategyA string
	strategyB string
	alternate bool
	delay     time.Duration
	quiet     bool
	archive   bool
	seed      int64
}

func newAutoplayCommand(deps Deps) *cobra.Command {
	conf := deps.Config
	flags := autoplayFlags{}

	policy, _ := conf.Game.StarterPolicy()

	cmd := &cobra.Command{
		Use:   "autoplay",
		Short: "Let two computer strategies play each other",
		Long: `Play computer against computer until the turn budget is spent, keeping
score across games. A tie is worth half a point to each side. Ctrl-C stops
the run and drops the unfinished game.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAutoplay(cmd, deps, flags)
		},
	}

	names := strings.Join(bot.Names(), ", ")

	cmd.Flags().IntVar(&flags.turns, "turns", conf.Autoplay.MaxTurns, "number of turns to play")
	cmd.Flags().StringVar(&flags.strategy, "strategy", "", "strategy for both sides: "+names)
	cmd.Flags().StringVar(&flags.strategyA, "strategy-a", conf.Autoplay.StrategyA, "strategy for side A")
	cmd.Flags().StringVar(&flags.strategyB, "strategy-b", conf.Autoplay.StrategyB, "strategy for side B")
	cmd.Flags().BoolVar(&flags.alternate, "alternate", policy == entity.StarterAlternate, "alternate which side opens each game")
	cmd.Flags().DurationVar(&flags.delay, "delay", conf.Autoplay.Delay, "pause between turns")
	cmd.Flags().BoolVar(&flags.quiet, "quiet", false, "print only the final summary")
	cmd.Flags().BoolVar(&flags.archive, "archive", false, "save the summary to the series archive")
	cmd.Flags().Int64Var(&flags.seed, "seed", 0, "random seed, 0 picks one from the clock")

	return cmd
}

func runAutoplay(cmd *cobra.Command, deps Deps, flags autoplayFlags) error {
	conf := deps.Config
	out := cmd.OutOrStdout()

	if flags.strategy != "" {
		flags.strategyA, flags.strategyB = flags.strategy, flags.strategy
	}

	rngA, rngB := seededRands(flags.seed)

	strategyA, err := bot.New(flags.strategyA, rngA)
	if err != nil {
		return err
	}

	strategyB, err := bot.New(flags.strategyB, rngB)
	if err != nil {
		return err
	}

	starter := entity.StarterFixed
	if flags.alternate {
		starter = entity.StarterAlternate
	}

	renderer := NewRenderer(colorProfile(deps, out), conf.Game.P1Mark, conf.Game.P2Mark)
	labels := [2]string{
		entity.SideA.String() + ":" + strategyA.Name(),
		entity.SideB.String() + ":" + strategyB.Name(),
	}

	var opts []usecase.AutoplayOption
	if flags.archive {
		if deps.Archive == nil {
			return ErrArchiveUnavailable
		}

		opts = append(opts, usecase.WithArchive(deps.Archive))
	}

	if !flags.quiet {
		opts = append(opts,
			usecase.WithTurnListener(func(report usecase.TurnReport) {
				fmt.Fprintf(out, "turn %d  game %d  %s %s -> %d\n",
					report.Turn, report.Game, labels[report.Side], report.Mark, report.Cell)
			}),
			usecase.WithGameEndListener(func(report usecase.TurnReport, scores tictactoe.Scores) {
				fmt.Fprint(out, renderer.Board(report.Board, report.Outcome.Line))
				printGameEnd(out, report, labels, scores)
			}),
		)
	}

	autoplay, err := usecase.NewAutoplay(deps.Logger, usecase.AutoplayConfig{
		StrategyA: strategyA,
		StrategyB: strategyB,
		MaxTurns:  flags.turns,
		Starter:   starter,
		P1Mark:    conf.Game.P1Mark,
		P2Mark:    conf.Game.P2Mark,
		Delay:     flags.delay,
	}, opts...)
	if err != nil {
		return err
	}

	summary, err := autoplay.Run(cmd.Context())
	if summary != nil {
		printSummary(out, summary)
	}

	return err
}

func seededRands(seed int64) (*rand.Rand, *rand.Rand) {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return bot.NewRand(seed), bot.NewRand(seed + 1)
}

func printGameEnd(out io.Writer, report usecase.TurnReport, labels [2]string, scores tictactoe.Scores) {
	result := "tie"
	if report.Outcome.IsWin() {
		result = fmt.Sprintf("%s %s wins", labels[report.Side], report.Outcome.Winner)
	}

	fmt.Fprintf(out, "game %d: %s  (A %s, B %s, ties %d)\n\n",
		scores.GamesPlayed, result, formatPoints(scores.PointsA), formatPoints(scores.PointsB), scores.Ties)
}

func printSummary(out io.Writer, summary *entity.SeriesSummary) {
	fmt.Fprintf(out, "series %s\n", summary.ID)
	fmt.Fprintf(out, "  A %-8s %s  points %s  wins %d\n", summary.StrategyA, summary.MarkA, formatPoints(summary.PointsA), summary.WinsA)
	fmt.Fprintf(out, "  B %-8s %s  points %s  wins %d\n", summary.StrategyB, summary.MarkB, formatPoints(summary.PointsB), summary.WinsB)
	fmt.Fprintf(out, "  ties %d  games %d  turns %d/%d\n", summary.Ties, summary.GamesPlayed, summary.TurnsPlayed, summary.MaxTurns)

	if summary.Canceled {
		fmt.Fprintln(out, "  stopped early")
	}

	if summary.Abandoned {
		fmt.Fprintln(out, "  last game unfinished, not scored")
	}
}
