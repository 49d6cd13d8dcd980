package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kiryu-dev/battleship-tournament/internal/adapters/strategy"
	"github.com/kiryu-dev/battleship-tournament/internal/transport/ws"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

var errCapturedSignal = errors.New("captured signal")

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "strategyd",
		Short: "Serve built-in strategies to remote tournaments over websocket",
		Long: `strategyd exposes every built-in strategy at ws://<addr>/strategy/<name>.
Each connection gets its own strategy instance.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := zap.NewProduction()
			if err != nil {
				return err
			}
			defer func() {
				_ = logger.Sync()
			}()
			logger.Info("serving strategies", zap.Strings("strategies", strategy.BuiltinNames()))
			return serve(addr, logger)
		},
	}
	cmd.Flags().StringVarP(&addr, "addr", "a", ":9000", "listen address")
	return cmd
}

func serve(addr string, logger *zap.Logger) error {
	server := ws.New(addr, strategy.Builtin, logger)
	sigChan := make(chan os.Signal, 2)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	errGroup, ctx := errgroup.WithContext(context.Background())
	errGroup.Go(func() error {
		select {
		case s := <-sigChan:
			return errors.WithMessagef(errCapturedSignal, "%v", s)
		case <-ctx.Done():
			return nil
		}
	})
	errGroup.Go(server.ListenAndServe)
	errGroup.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Info("failed to shutdown http server: " + err.Error())
		}
		return nil
	})
	err := errGroup.Wait()
	if errors.Is(err, errCapturedSignal) {
		logger.Info("gracefully shutting down the server: " + err.Error())
		return nil
	}
	return err
}
