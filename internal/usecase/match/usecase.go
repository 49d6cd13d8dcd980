package match

import (
	"context"

	"github.com/kiryu-dev/battleship-tournament/internal/domain"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var errResourcePanic = errors.New("panic while resolving match resources")

type useCase struct {
	game       domain.GameUseCase
	scoreboard domain.ResultPoster
	logger     *zap.Logger
}

func New(game domain.GameUseCase, scoreboard domain.ResultPoster, logger *zap.Logger) useCase {
	return useCase{
		game:       game,
		scoreboard: scoreboard,
		logger:     logger,
	}
}

// Run plays the task with resources from the worker's pool and posts the
// outcome. It always posts exactly one result.
func (u useCase) Run(ctx context.Context, pool domain.ResourcePool, task domain.Task) domain.GameResult {
	logger := u.logger.With(
		zap.String("match", task.ID),
		zap.String("player a", task.StrategyA),
		zap.String("player b", task.StrategyB),
		zap.String("board", task.Board),
	)
	result, err := u.play(ctx, pool, task)
	if err != nil {
		logger.Warn("match could not be played, scored as a tie", zap.Error(err))
		result = domain.TieResult()
	}
	logger.Debug("match finished",
		zap.Stringer("winner", result.Winner),
		zap.Int("points a", result.PointsA),
		zap.Int("points b", result.PointsB),
	)
	u.scoreboard.PostResult(result, task.StrategyA, task.StrategyB)
	return result
}

func (u useCase) play(ctx context.Context, pool domain.ResourcePool, task domain.Task) (result domain.GameResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			result, err = domain.GameResult{}, errors.WithMessagef(errResourcePanic, "%v", r)
		}
	}()
	strategyA, err := pool.Strategy(task.StrategyA)
	if err != nil {
		return domain.GameResult{}, err
	}
	strategyB, err := pool.Strategy(task.StrategyB)
	if err != nil {
		return domain.GameResult{}, err
	}
	board, err := pool.Board(task.Board)
	if err != nil {
		return domain.GameResult{}, err
	}
	views := [2]domain.BoardView{
		domain.NewBoardView(board, domain.PlayerA),
		domain.NewBoardView(board, domain.PlayerB),
	}
	result = u.game.Play(ctx, board, [2]domain.Strategy{strategyA, strategyB}, views)
	pool.Retain(task.StrategyA, views[domain.PlayerA])
	pool.Retain(task.StrategyB, views[domain.PlayerB])
	return result, nil
}
