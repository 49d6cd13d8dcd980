package domain

import (
	"context"
)

// Task is one scheduled match: StrategyA plays as PlayerA and moves first.
type Task struct {
	ID        string
	StrategyA string
	StrategyB string
	Board     string
}

type MatchUseCase interface {
	Run(ctx context.Context, pool ResourcePool, task Task) GameResult
}
