package strategy

import (
	"github.com/kiryu-dev/battleship-tournament/internal/domain"
)

// sweep fires at every cell that is neither its own nor already resolved, in
// the order of its target list.
type sweep struct {
	id       domain.Player
	view     domain.BoardView
	targets  []domain.Coordinate
	next     int
	resolved map[domain.Coordinate]struct{}
	order    func(targets []domain.Coordinate)
}

func newSweep(order func(targets []domain.Coordinate)) *sweep {
	return &sweep{
		resolved: make(map[domain.Coordinate]struct{}),
		order:    order,
	}
}

func NewSequential() domain.Strategy {
	return newSweep(nil)
}

func (s *sweep) SetPlayerID(p domain.Player) {
	s.id = p
}

func (s *sweep) SetBoardView(view domain.BoardView) {
	s.view = view
	s.next = 0
	s.resolved = make(map[domain.Coordinate]struct{})
	s.targets = s.targets[:0]
	for depth := 1; depth <= view.Depth(); depth++ {
		for row := 1; row <= view.Height(); row++ {
			for col := 1; col <= view.Width(); col++ {
				c := domain.NewCoordinate(row, col, depth)
				if view.At(c) == domain.EmptyCell {
					s.targets = append(s.targets, c)
				}
			}
		}
	}
	if s.order != nil {
		s.order(s.targets)
	}
}

func (s *sweep) Attack() (domain.Coordinate, bool) {
	for s.next < len(s.targets) {
		c := s.targets[s.next]
		s.next++
		if s.open(c) {
			return c, true
		}
	}
	return domain.Coordinate{}, false
}

func (s *sweep) NotifyAttackResult(_ domain.Player, target domain.Coordinate, _ domain.AttackResult) {
	s.resolved[target] = struct{}{}
}

// open reports whether c is on the board, not ours and not yet fired at.
func (s *sweep) open(c domain.Coordinate) bool {
	if c.Row < 1 || c.Row > s.view.Height() || c.Col < 1 || c.Col > s.view.Width() ||
		c.Depth < 1 || c.Depth > s.view.Depth() {
		return false
	}
	if s.view.At(c) != domain.EmptyCell {
		return false
	}
	_, done := s.resolved[c]
	return !done
}
