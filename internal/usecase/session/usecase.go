package session

import (
	"context"
	"fmt"

	"github.com/kiryu-dev/battleship-tournament/internal/domain"
	"go.uber.org/zap"
)

type useCase struct {
	maxTurns int
	logger   *zap.Logger
}

// New returns the game-session engine. maxTurns <= 0 disables the turn cap.
func New(maxTurns int, logger *zap.Logger) useCase {
	return useCase{
		maxTurns: maxTurns,
		logger:   logger,
	}
}

// Play drives one match on board to completion. A panic raised by either
// strategy ends the match as a 0-0 tie.
func (u useCase) Play(_ context.Context, board *domain.Board, strategies [2]domain.Strategy,
	views [2]domain.BoardView) (result domain.GameResult) {
	defer func() {
		if r := recover(); r != nil {
			u.logger.Error("strategy fault, match scored as a tie", zap.String("panic", fmt.Sprint(r)))
			result = domain.TieResult()
		}
	}()
	for i, strategy := range strategies {
		strategy.SetPlayerID(domain.Player(i))
		strategy.SetBoardView(views[i])
	}
	s := newSession(board, strategies)
	for s.status() == active {
		if u.maxTurns > 0 && s.turns >= u.maxTurns {
			u.logger.Warn("turn limit reached, both players forfeit", zap.Int("turns", s.turns))
			s.forfeitAll()
			break
		}
		s.step()
	}
	return s.result()
}
