package domain

import (
	"context"
)

type GameResult struct {
	Winner  Player
	PointsA int
	PointsB int
}

// TieResult is the fallback outcome of a match that could not be played.
func TieResult() GameResult {
	return GameResult{Winner: NoPlayer}
}

func (r GameResult) Points(p Player) int {
	switch p {
	case PlayerA:
		return r.PointsA
	case PlayerB:
		return r.PointsB
	default:
		return 0
	}
}

// Strategy is a pluggable player. Attack returns a 1-based coordinate, or
// false once the strategy has no further moves. An instance is only ever
// driven by one goroutine.
type Strategy interface {
	SetPlayerID(p Player)
	SetBoardView(view BoardView)
	Attack() (Coordinate, bool)
	NotifyAttackResult(attacker Player, target Coordinate, result AttackResult)
}

type StrategyProvider interface {
	New(id string) (Strategy, error)
}

// BoardFactory returns a fresh, independently mutable board per call.
type BoardFactory interface {
	Board(id string) (*Board, error)
}

type GameUseCase interface {
	Play(ctx context.Context, board *Board, strategies [2]Strategy, views [2]BoardView) GameResult
}

type ResultPoster interface {
	PostResult(result GameResult, playerA, playerB string)
}

type ScoreboardUseCase interface {
	ResultPoster
	// AwaitCompletedRound blocks until a completed round is pending. It
	// returns false once the scoreboard is closed and nothing is pending.
	AwaitCompletedRound() bool
	DrainCompleted() []RoundResults
	Standings() []PlayerStatistics
	Close()
}

// ResourcePool resolves match resources for a single worker goroutine.
type ResourcePool interface {
	Strategy(id string) (Strategy, error)
	Board(id string) (*Board, error)
	Retain(id string, view BoardView)
}
