package main

import (
	"context"
	"io"
	"os"

	"github.com/kiryu-dev/battleship-tournament/internal/adapters/boardfile"
	"github.com/kiryu-dev/battleship-tournament/internal/adapters/report"
	"github.com/kiryu-dev/battleship-tournament/internal/adapters/strategy"
	"github.com/kiryu-dev/battleship-tournament/internal/adapters/webapi"
	"github.com/kiryu-dev/battleship-tournament/internal/config"
	"github.com/kiryu-dev/battleship-tournament/internal/domain"
	"github.com/kiryu-dev/battleship-tournament/internal/transport/ws"
	"github.com/kiryu-dev/battleship-tournament/internal/usecase/match"
	"github.com/kiryu-dev/battleship-tournament/internal/usecase/pool"
	"github.com/kiryu-dev/battleship-tournament/internal/usecase/scheduler"
	"github.com/kiryu-dev/battleship-tournament/internal/usecase/scoreboard"
	"github.com/kiryu-dev/battleship-tournament/internal/usecase/session"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		cfgPath  string
		threads  int
		maxTurns int
		output   string
		verbose  bool
	)
	cmd := &cobra.Command{
		Use:   "tournament",
		Short: "Run a round-robin battleship tournament",
		Long: `tournament plays every ordered pairing of the configured players on every
configured board, using a pool of worker goroutines, and prints standings
as soon as each round completes.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := newLogger(verbose)
			if err != nil {
				return err
			}
			defer func() {
				_ = logger.Sync()
			}()
			cfg, err := config.New(cfgPath)
			if err != nil {
				logger.Error("failed to load config", zap.Error(err))
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("threads") {
				cfg.Threads = threads
			}
			if flags.Changed("max-turns") {
				cfg.MaxTurns = maxTurns
			}
			if flags.Changed("output") {
				cfg.Output = output
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return run(cmd.Context(), cfg, cmd.OutOrStdout(), logger)
		},
	}
	cmd.Flags().StringVarP(&cfgPath, "config", "c", "./tournament.yml", "path to config")
	cmd.Flags().IntVarP(&threads, "threads", "t", 0, "number of worker goroutines")
	cmd.Flags().IntVar(&maxTurns, "max-turns", 0, "turn cap per match, 0 for none")
	cmd.Flags().StringVarP(&output, "output", "o", report.FormatText, "output format: text, json")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
	return cmd
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func run(ctx context.Context, cfg config.Config, out io.Writer, logger *zap.Logger) error {
	reporter, err := report.New(cfg.Output, out)
	if err != nil {
		return err
	}
	boards := boardfile.NewFactory(cfg.BoardPaths(), logger)
	if err := boards.Preload(); err != nil {
		logger.Warn("board failed to load, its matches will be tied", zap.Error(err))
	}
	probeRemotes(ctx, cfg, logger)
	provider := strategy.NewCatalog(cfg.StrategyEntries(), ws.Dial, logger)
	var (
		board   = scoreboard.New(cfg.PlayerNames(), logger)
		game    = session.New(cfg.MaxTurns, logger)
		matches = match.New(game, board, logger)
		sched   = scheduler.New(matches, board, reporter, func() domain.ResourcePool {
			return pool.New(provider, boards, logger)
		}, cfg.Threads, logger)
	)
	if _, err := sched.Run(ctx, scheduler.BuildQueue(cfg.BoardNames(), cfg.PlayerNames())); err != nil {
		return errors.WithMessage(err, "run tournament")
	}
	return nil
}

// probeRemotes checks the hosts of remote players up front. A failing host is
// only reported: its player forfeits the matches it cannot play.
func probeRemotes(ctx context.Context, cfg config.Config, logger *zap.Logger) {
	api := webapi.New()
	for _, p := range cfg.Players {
		if p.Kind != strategy.KindRemote {
			continue
		}
		if err := api.HealthCheck(ctx, p.Target); err != nil {
			logger.Warn("remote strategy host is not healthy",
				zap.String("player", p.Name),
				zap.String("target", p.Target),
				zap.Error(err),
			)
		}
	}
}
