package strategy

import (
	"testing"

	"github.com/kiryu-dev/battleship-tournament/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smallView() domain.BoardView {
	board := domain.NewBoard(3, 2, 1)
	board.Place(domain.NewGamePiece(domain.PlayerA, domain.Patrol, domain.NewCoordinate(0, 0, 0), domain.Horizontal))
	board.Place(domain.NewGamePiece(domain.PlayerB, domain.Boat, domain.NewCoordinate(1, 2, 0), domain.Horizontal))
	return domain.NewBoardView(board, domain.PlayerA)
}

func drain(s domain.Strategy) []domain.Coordinate {
	var shots []domain.Coordinate
	for {
		c, ok := s.Attack()
		if !ok {
			return shots
		}
		shots = append(shots, c)
		s.NotifyAttackResult(domain.PlayerA, c, domain.Miss)
	}
}

func TestSequentialSkipsOwnCells(t *testing.T) {
	s := NewSequential()
	s.SetPlayerID(domain.PlayerA)
	s.SetBoardView(smallView())

	assert.Equal(t, []domain.Coordinate{
		domain.NewCoordinate(1, 3, 1),
		domain.NewCoordinate(2, 1, 1),
		domain.NewCoordinate(2, 2, 1),
		domain.NewCoordinate(2, 3, 1),
	}, drain(s))

	_, ok := s.Attack()
	assert.False(t, ok)
}

func TestSequentialSkipsResolvedCells(t *testing.T) {
	s := NewSequential()
	s.SetPlayerID(domain.PlayerA)
	s.SetBoardView(smallView())
	s.NotifyAttackResult(domain.PlayerB, domain.NewCoordinate(1, 3, 1), domain.Miss)

	c, ok := s.Attack()
	require.True(t, ok)
	assert.Equal(t, domain.NewCoordinate(2, 1, 1), c)
}

func TestSequentialResetsPerMatch(t *testing.T) {
	s := NewSequential()
	s.SetBoardView(smallView())
	first := drain(s)
	s.SetBoardView(smallView())
	assert.Equal(t, first, drain(s))
}

func TestRandomCoversEveryOpenCell(t *testing.T) {
	s := NewRandom(42)
	s.SetPlayerID(domain.PlayerA)
	s.SetBoardView(smallView())
	shots := drain(s)
	assert.ElementsMatch(t, []domain.Coordinate{
		domain.NewCoordinate(1, 3, 1),
		domain.NewCoordinate(2, 1, 1),
		domain.NewCoordinate(2, 2, 1),
		domain.NewCoordinate(2, 3, 1),
	}, shots)

	again := NewRandom(42)
	again.SetBoardView(smallView())
	assert.Equal(t, shots, drain(again), "same seed, same order")
}

func TestHunterProbesAroundHits(t *testing.T) {
	board := domain.NewBoard(4, 4, 1)
	view := domain.NewBoardView(board, domain.PlayerA)
	h := NewHunter()
	h.SetPlayerID(domain.PlayerA)
	h.SetBoardView(view)

	hit := domain.NewCoordinate(2, 2, 1)
	h.NotifyAttackResult(domain.PlayerA, hit, domain.Hit)

	next, ok := h.Attack()
	require.True(t, ok)
	assert.Equal(t, domain.NewCoordinate(2, 3, 1), next)
	next, ok = h.Attack()
	require.True(t, ok)
	assert.Equal(t, domain.NewCoordinate(2, 1, 1), next)

	h.NotifyAttackResult(domain.PlayerB, domain.NewCoordinate(4, 4, 1), domain.Hit)
	next, ok = h.Attack()
	require.True(t, ok)
	assert.Equal(t, domain.NewCoordinate(3, 2, 1), next, "opponent hits are not probed")
}

func TestForfeit(t *testing.T) {
	s, err := Builtin(Forfeit)
	require.NoError(t, err)
	s.SetBoardView(smallView())
	_, ok := s.Attack()
	assert.False(t, ok)
}

func TestBuiltinUnknown(t *testing.T) {
	_, err := Builtin("telepath")
	assert.ErrorIs(t, err, ErrUnknownStrategy)
	assert.Equal(t, []string{Forfeit, Hunter, Random, Sequential}, BuiltinNames())
}
