package scheduler

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/kiryu-dev/battleship-tournament/internal/domain"
	"github.com/pkg/errors"
	"go.uber.org/atomic"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// PoolFactory creates the private resource pool of one worker.
type PoolFactory func() domain.ResourcePool

type closer interface {
	Close()
}

type Summary struct {
	RunID     string
	Workers   int
	Matches   int64
	Decisive  int64
	Ties      int64
	Duration  time.Duration
	Standings []domain.PlayerStatistics
}

type useCase struct {
	match      domain.MatchUseCase
	scoreboard domain.ScoreboardUseCase
	reporter   domain.Reporter
	newPool    PoolFactory
	threads    int
	logger     *zap.Logger
}

func New(match domain.MatchUseCase, scoreboard domain.ScoreboardUseCase, reporter domain.Reporter,
	newPool PoolFactory, threads int, logger *zap.Logger) *useCase {
	return &useCase{
		match:      match,
		scoreboard: scoreboard,
		reporter:   reporter,
		newPool:    newPool,
		threads:    threads,
		logger:     logger,
	}
}

// Run plays every task and reports rounds as they complete. It does not
// return before the queue is empty and every worker has exited.
func (u *useCase) Run(ctx context.Context, tasks []domain.Task) (Summary, error) {
	var (
		start    = time.Now()
		q        = newQueue(tasks)
		workers  = max(min(u.threads, q.len()), 1)
		runID    = uuid.NewString()
		logger   = u.logger.With(zap.String("run", runID))
		finished = atomic.NewInt64(0)
		ties     = atomic.NewInt64(0)
	)
	logger.Info("starting tournament", zap.Int("matches", len(tasks)), zap.Int("workers", workers))
	group := new(errgroup.Group)
	for i := 0; i < workers; i++ {
		worker := i
		group.Go(func() error {
			pool := u.newPool()
			if c, ok := pool.(closer); ok {
				defer c.Close()
			}
			logger.Debug("worker started", zap.Int("worker", worker))
			for {
				task, ok := q.pop()
				if !ok {
					logger.Debug("worker exited", zap.Int("worker", worker))
					return nil
				}
				result := u.match.Run(ctx, pool, task)
				if result.Winner == domain.NoPlayer {
					ties.Inc()
				}
				logger.Debug("match done",
					zap.String("match", task.ID),
					zap.Int64("finished", finished.Inc()),
					zap.Int("total", len(tasks)),
				)
			}
		})
	}
	waitErr := make(chan error, 1)
	go func() {
		err := group.Wait()
		u.scoreboard.Close()
		waitErr <- err
	}()
	for u.scoreboard.AwaitCompletedRound() {
		u.report(logger, u.scoreboard.DrainCompleted())
	}
	if err := <-waitErr; err != nil {
		return Summary{}, errors.WithMessage(err, "run workers")
	}
	u.report(logger, u.scoreboard.DrainCompleted())

	summary := Summary{
		RunID:     runID,
		Workers:   workers,
		Matches:   finished.Load(),
		Decisive:  finished.Load() - ties.Load(),
		Ties:      ties.Load(),
		Duration:  time.Since(start),
		Standings: u.scoreboard.Standings(),
	}
	if err := u.reporter.Summary(summary.Standings); err != nil {
		logger.Warn("failed to report standings", zap.Error(err))
	}
	logger.Info("tournament finished",
		zap.Int64("matches", summary.Matches),
		zap.Int64("ties", summary.Ties),
		zap.Duration("duration", summary.Duration),
	)
	return summary, nil
}

func (u *useCase) report(logger *zap.Logger, rounds []domain.RoundResults) {
	if len(rounds) == 0 {
		return
	}
	if err := u.reporter.Report(rounds); err != nil {
		logger.Warn("failed to report rounds", zap.Error(err))
	}
}
