// Package cli is the terminal front end: a cobra command tree for playing
// against a person or the computer, running autoplay series and serving HTTP.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/rocketscienceinc/tictactoe-autoplay/internal/config"
	"github.com/rocketscienceinc/tictactoe-autoplay/internal/entity"
)

const (
	Version = "0.1.0"

	about = `tictactoe plays tic-tac-toe in the terminal.

Play another person, play the computer, or let two computer strategies
play hundreds of games against each other while the score is kept.
Computer strategies: random, center, corner and tactics.

Version: %s
License: MIT
`
)

var (
	ErrServeUnavailable   = errors.New("http server is not configured")
	ErrArchiveUnavailable = errors.New("series archive needs redis to be enabled")
)

type seriesArchive interface {
	CreateOrUpdate(ctx context.Context, summary *entity.SeriesSummary) error
}

// Deps is what the command tree needs from the application.
type Deps struct {
	Logger *slog.Logger
	Config *config.Config
	// Archive is nil when Redis is disabled.
	Archive seriesArchive
	Serve   func(ctx context.Context) error
	// Profile forces a colour profile; nil detects it from the output.
	Profile *termenv.Profile
}

func NewRootCommand(deps Deps) *cobra.Command {
	var showAbout bool

	root := &cobra.Command{
		Use:           "tictactoe",
		Short:         "Tic-tac-toe against a person or the computer, or computer against computer",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if showAbout {
				_, err := fmt.Fprintf(cmd.OutOrStdout(), about, Version)
				return err
			}

			return cmd.Help()
		},
	}

	root.Flags().BoolVar(&showAbout, "about", false, "print program information")

	root.AddCommand(
		newPlayCommand(deps),
		newAutoplayCommand(deps),
		newServeCommand(deps),
	)

	return root
}

func newServeCommand(deps Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if deps.Serve == nil {
				return ErrServeUnavailable
			}

			return deps.Serve(cmd.Context())
		},
	}
}

func colorProfile(deps Deps, out io.Writer) termenv.Profile {
	if deps.Profile != nil {
		return *deps.Profile
	}

	return termenv.NewOutput(out).Profile
}
