package scheduler

import (
	"context"
	"testing"

	"github.com/kiryu-dev/battleship-tournament/internal/adapters/boardfile"
	"github.com/kiryu-dev/battleship-tournament/internal/adapters/strategy"
	"github.com/kiryu-dev/battleship-tournament/internal/domain"
	"github.com/kiryu-dev/battleship-tournament/internal/usecase/match"
	"github.com/kiryu-dev/battleship-tournament/internal/usecase/pool"
	"github.com/kiryu-dev/battleship-tournament/internal/usecase/scoreboard"
	"github.com/kiryu-dev/battleship-tournament/internal/usecase/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type collector struct {
	rounds    []domain.RoundResults
	standings []domain.PlayerStatistics
}

func (c *collector) Report(rounds []domain.RoundResults) error {
	c.rounds = append(c.rounds, rounds...)
	return nil
}

func (c *collector) Summary(standings []domain.PlayerStatistics) error {
	c.standings = standings
	return nil
}

func testBoard() *domain.Board {
	board := domain.NewBoard(4, 4, 1)
	board.Place(domain.NewGamePiece(domain.PlayerA, domain.Patrol, domain.NewCoordinate(0, 0, 0), domain.Horizontal))
	board.Place(domain.NewGamePiece(domain.PlayerA, domain.Boat, domain.NewCoordinate(3, 3, 0), domain.Horizontal))
	board.Place(domain.NewGamePiece(domain.PlayerB, domain.Patrol, domain.NewCoordinate(2, 0, 0), domain.Horizontal))
	board.Place(domain.NewGamePiece(domain.PlayerB, domain.Boat, domain.NewCoordinate(0, 3, 0), domain.Horizontal))
	return board
}

func runTournament(t *testing.T, threads int, entries map[string]strategy.Entry, players []string) (Summary, *collector) {
	logger := zaptest.NewLogger(t)
	boards := boardfile.NewFactory(nil, logger)
	boards.Register("square", testBoard())
	boards.Register("wide", func() *domain.Board {
		board := domain.NewBoard(6, 2, 1)
		board.Place(domain.NewGamePiece(domain.PlayerA, domain.Missile, domain.NewCoordinate(0, 0, 0), domain.Horizontal))
		board.Place(domain.NewGamePiece(domain.PlayerB, domain.Missile, domain.NewCoordinate(1, 3, 0), domain.Horizontal))
		return board
	}())
	provider := strategy.NewCatalog(entries, nil, logger)
	board := scoreboard.New(players, logger)
	reporter := &collector{}
	u := New(
		match.New(session.New(0, logger), board, logger),
		board,
		reporter,
		func() domain.ResourcePool { return pool.New(provider, boards, logger) },
		threads,
		logger,
	)
	summary, err := u.Run(context.Background(), BuildQueue([]string{"square", "wide"}, players))
	require.NoError(t, err)
	return summary, reporter
}

func TestBuildQueue(t *testing.T) {
	tasks := BuildQueue([]string{"classic"}, []string{"alice", "bob", "carol"})
	require.Len(t, tasks, 6)

	pairs := make(map[[2]string]struct{})
	ids := make(map[string]struct{})
	for _, task := range tasks {
		assert.NotEqual(t, task.StrategyA, task.StrategyB)
		assert.Equal(t, "classic", task.Board)
		pairs[[2]string{task.StrategyA, task.StrategyB}] = struct{}{}
		ids[task.ID] = struct{}{}
	}
	assert.Len(t, pairs, 6)
	assert.Len(t, ids, 6)

	// every rotation layer gives each player one game on each side
	for layer := 0; layer < 2; layer++ {
		as := make(map[string]int)
		bs := make(map[string]int)
		for _, task := range tasks[layer*3 : layer*3+3] {
			as[task.StrategyA]++
			bs[task.StrategyB]++
		}
		assert.Equal(t, map[string]int{"alice": 1, "bob": 1, "carol": 1}, as)
		assert.Equal(t, map[string]int{"alice": 1, "bob": 1, "carol": 1}, bs)
	}
}

func TestBuildQueueTooFewPlayers(t *testing.T) {
	assert.Empty(t, BuildQueue([]string{"classic"}, []string{"solo"}))
	assert.Len(t, BuildQueue([]string{"a", "b"}, []string{"x", "y"}), 4)
}

func TestQueuePop(t *testing.T) {
	q := newQueue([]domain.Task{{ID: "1"}, {ID: "2"}})
	first, ok := q.pop()
	require.True(t, ok)
	assert.Equal(t, "1", first.ID)
	second, ok := q.pop()
	require.True(t, ok)
	assert.Equal(t, "2", second.ID)
	_, ok = q.pop()
	assert.False(t, ok)
	assert.Equal(t, 0, q.len())
}

var deterministic = map[string]strategy.Entry{
	"alice": {Kind: strategy.KindBuiltin, Target: strategy.Sequential},
	"bob":   {Kind: strategy.KindBuiltin, Target: strategy.Hunter},
	"carol": {Kind: strategy.KindBuiltin, Target: strategy.Forfeit},
}

func totals(standings []domain.PlayerStatistics) map[string]domain.PlayerStatistics {
	byName := make(map[string]domain.PlayerStatistics, len(standings))
	for _, s := range standings {
		byName[s.Name] = s
	}
	return byName
}

func TestRunIsIndependentOfThreadCount(t *testing.T) {
	players := []string{"alice", "bob", "carol"}
	single, singleReport := runTournament(t, 1, deterministic, players)
	multi, multiReport := runTournament(t, 5, deterministic, players)

	assert.Equal(t, 1, single.Workers)
	assert.Equal(t, 5, multi.Workers)
	assert.EqualValues(t, 12, single.Matches)
	assert.EqualValues(t, 12, multi.Matches)
	assert.Equal(t, totals(single.Standings), totals(multi.Standings))
	assert.Equal(t, single.Standings, singleReport.standings)
	assert.Equal(t, multi.Standings, multiReport.standings)

	for _, s := range single.Standings {
		assert.Equal(t, 8, s.Games(), s.Name)
	}
	assert.Equal(t, 0, totals(single.Standings)["carol"].Wins, "a forfeiting player never wins")
}

func TestRunReportsEveryRoundOnce(t *testing.T) {
	players := []string{"alice", "bob", "carol"}
	_, report := runTournament(t, 4, deterministic, players)

	require.Len(t, report.rounds, 8)
	for i, round := range report.rounds {
		assert.Equal(t, i, round.Index)
		assert.Len(t, round.Players, len(players))
		for _, p := range round.Players {
			assert.Equal(t, i+1, p.Games())
		}
	}
}

func TestRunSurvivesUnloadableStrategy(t *testing.T) {
	entries := map[string]strategy.Entry{
		"alice": {Kind: strategy.KindBuiltin, Target: strategy.Sequential},
		"ghost": {Kind: strategy.KindPlugin, Target: "/nonexistent/ghost.so"},
	}
	summary, report := runTournament(t, 2, entries, []string{"alice", "ghost"})

	assert.EqualValues(t, 4, summary.Matches)
	assert.EqualValues(t, 4, summary.Ties)
	assert.Len(t, report.rounds, 4)
	for _, s := range summary.Standings {
		assert.Equal(t, 4, s.Ties)
		assert.Equal(t, 0, s.PointsFor)
	}
}

func TestRunMoreThreadsThanTasks(t *testing.T) {
	summary, _ := runTournament(t, 64, deterministic, []string{"alice", "bob"})
	assert.Equal(t, 4, summary.Workers)
	assert.EqualValues(t, 4, summary.Matches)
}
