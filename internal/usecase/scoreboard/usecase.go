package scoreboard

import (
	"sort"
	"sync"

	"github.com/kiryu-dev/battleship-tournament/internal/domain"
	"go.uber.org/zap"
)

type useCase struct {
	mu      *sync.Mutex
	players int
	current map[string]domain.PlayerStatistics
	rounds  map[int]map[string]domain.PlayerStatistics

	completedMu *sync.Mutex
	ready       *sync.Cond
	completed   []domain.RoundResults
	closed      bool

	logger *zap.Logger
}

// New enrolls players; a round completes once each of them has an entry.
func New(players []string, logger *zap.Logger) *useCase {
	current := make(map[string]domain.PlayerStatistics, len(players))
	for _, name := range players {
		current[name] = domain.NewPlayerStatistics(name)
	}
	completedMu := &sync.Mutex{}
	return &useCase{
		mu:          &sync.Mutex{},
		players:     len(current),
		current:     current,
		rounds:      make(map[int]map[string]domain.PlayerStatistics),
		completedMu: completedMu,
		ready:       sync.NewCond(completedMu),
		logger:      logger,
	}
}

func (u *useCase) PostResult(result domain.GameResult, playerA, playerB string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.record(playerA, domain.PlayerA, result)
	if playerB != playerA {
		u.record(playerB, domain.PlayerB, result)
	}
}

// record must be called with u.mu held. Only enrolled players are recorded,
// so a round holds at most one entry per enrolled player.
func (u *useCase) record(name string, side domain.Player, result domain.GameResult) {
	stats, ok := u.current[name]
	if !ok {
		u.logger.Warn("result for unenrolled player dropped", zap.String("player", name))
		return
	}
	index := stats.Games()
	round, ok := u.rounds[index]
	if !ok {
		round = make(map[string]domain.PlayerStatistics, u.players)
		u.rounds[index] = round
	}
	next := stats.Apply(result, side)
	round[name] = next
	u.current[name] = next
	if len(round) < u.players {
		return
	}
	delete(u.rounds, index)
	u.complete(domain.NewRoundResults(index, round))
}

func (u *useCase) complete(round domain.RoundResults) {
	u.completedMu.Lock()
	u.completed = append(u.completed, round)
	u.completedMu.Unlock()
	u.ready.Broadcast()
	u.logger.Info("round completed", zap.Int("round", round.Index))
}

func (u *useCase) AwaitCompletedRound() bool {
	u.completedMu.Lock()
	defer u.completedMu.Unlock()
	for len(u.completed) == 0 && !u.closed {
		u.ready.Wait()
	}
	return len(u.completed) > 0
}

// DrainCompleted removes and returns every completed round, oldest first.
func (u *useCase) DrainCompleted() []domain.RoundResults {
	u.completedMu.Lock()
	rounds := u.completed
	u.completed = nil
	u.completedMu.Unlock()
	sort.Slice(rounds, func(i, j int) bool {
		return rounds[i].Index < rounds[j].Index
	})
	return rounds
}

// Standings returns the latest statistics of every player, best first.
func (u *useCase) Standings() []domain.PlayerStatistics {
	u.mu.Lock()
	standings := make([]domain.PlayerStatistics, 0, len(u.current))
	for _, stats := range u.current {
		standings = append(standings, stats)
	}
	u.mu.Unlock()
	domain.SortStandings(standings)
	return standings
}

// Close wakes a blocked AwaitCompletedRound for good.
func (u *useCase) Close() {
	u.completedMu.Lock()
	u.closed = true
	u.completedMu.Unlock()
	u.ready.Broadcast()
}
