package application

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-autoplay/internal/config"
	"github.com/rocketscienceinc/tictactoe-autoplay/internal/repository"
	"github.com/rocketscienceinc/tictactoe-autoplay/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-autoplay/transport/cli"
	"github.com/rocketscienceinc/tictactoe-autoplay/transport/rest"
)

// RunApp - runs the command line given by args until it finishes or the process is signaled.
func RunApp(logger *slog.Logger, conf *config.Config, args []string) error {
	log := logger.With("component", "app")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	deps := cli.Deps{
		Logger: logger,
		Config: conf,
	}

	// stays nil when redis is disabled
	var seriesRepo repository.SeriesRepository

	if conf.Redis.Enabled {
		redisStorage, err := storage.NewRedisStorage(ctx, conf.Redis.GetRedisAddr())
		if err != nil {
			return fmt.Errorf("could not connect to redis storage: %w", err)
		}

		defer func() {
			if err = redisStorage.Close(); err != nil {
				log.Error("could not close redis storage", "error", err)
			}
		}()

		seriesRepo = repository.NewSeriesRepository(redisStorage.Connection)
		deps.Archive = seriesRepo
	}

	deps.Serve = func(ctx context.Context) error {
		policy, err := conf.Game.StarterPolicy()
		if err != nil {
			return err
		}

		handler := rest.NewSeriesHandler(logger, seriesRepo, rest.AutoplayDefaults{
			StrategyA: conf.Autoplay.StrategyA,
			StrategyB: conf.Autoplay.StrategyB,
			MaxTurns:  conf.Autoplay.MaxTurns,
			Starter:   policy,
			P1Mark:    conf.Game.P1Mark,
			P2Mark:    conf.Game.P2Mark,
		})

		log.Info("Starting HTTP server", "port", conf.HTTPPort)

		if err = rest.Start(ctx, conf.HTTPPort, rest.NewRouter(logger, handler)); err != nil {
			return fmt.Errorf("HTTP server error: %w", err)
		}

		log.Info("HTTP server stopped")

		return nil
	}

	root := cli.NewRootCommand(deps)
	root.SetArgs(args)

	if err := root.ExecuteContext(ctx); err != nil {
		return fmt.Errorf("command failed: %w", err)
	}

	return nil
}
