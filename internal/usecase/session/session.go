package session

import (
	"github.com/kiryu-dev/battleship-tournament/internal/domain"
)

type status byte

const (
	active = status(iota)
	over
)

type session struct {
	board      *domain.Board
	strategies [2]domain.Strategy
	current    domain.Player
	forfeited  [2]bool
	points     [2]int
	resolved   map[domain.Coordinate]struct{}
	turns      int
}

func newSession(board *domain.Board, strategies [2]domain.Strategy) *session {
	return &session{
		board:      board,
		strategies: strategies,
		current:    domain.PlayerA,
		resolved:   make(map[domain.Coordinate]struct{}),
	}
}

func (s *session) status() status {
	if s.forfeited[domain.PlayerA] && s.forfeited[domain.PlayerB] {
		return over
	}
	if s.board.LiveShipCount(domain.PlayerA) == 0 || s.board.LiveShipCount(domain.PlayerB) == 0 {
		return over
	}
	return active
}

// step plays one turn of the current player.
func (s *session) step() {
	mover := s.current
	if s.forfeited[mover] {
		s.current = mover.Opponent()
		return
	}
	s.turns++
	target, ok := s.strategies[mover].Attack()
	if !ok {
		s.forfeited[mover] = true
		s.current = mover.Opponent()
		return
	}
	internal := target.ToInternal()
	if _, done := s.resolved[internal]; done || !s.board.InBounds(internal) {
		s.current = mover.Opponent()
		return
	}
	s.resolved[internal] = struct{}{}
	result, piece := s.board.Attack(internal)
	for _, strategy := range s.strategies {
		strategy.NotifyAttackResult(mover, target, result)
	}
	if result == domain.Sink {
		s.points[piece.Owner.Opponent()] += piece.Type.Points
	}
	/* hitting your own ship keeps the turn */
	if piece == nil || piece.Owner != mover {
		s.current = mover.Opponent()
	}
}

func (s *session) forfeitAll() {
	s.forfeited = [2]bool{true, true}
}

func (s *session) result() domain.GameResult {
	result := domain.GameResult{
		Winner:  domain.NoPlayer,
		PointsA: s.points[domain.PlayerA],
		PointsB: s.points[domain.PlayerB],
	}
	liveA := s.board.LiveShipCount(domain.PlayerA)
	liveB := s.board.LiveShipCount(domain.PlayerB)
	switch {
	case liveA == 0 && liveB == 0:
	case liveA == 0:
		result.Winner = domain.PlayerB
	case liveB == 0:
		result.Winner = domain.PlayerA
	}
	return result
}
