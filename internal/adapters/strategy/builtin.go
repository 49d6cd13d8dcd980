package strategy

import (
	"math/rand/v2"
	"sort"

	"github.com/kiryu-dev/battleship-tournament/internal/domain"
	"github.com/pkg/errors"
)

const (
	Sequential = "sequential"
	Random     = "random"
	Hunter     = "hunter"
	Forfeit    = "forfeit"
)

var builtins = map[string]func() domain.Strategy{
	Sequential: NewSequential,
	Random:     func() domain.Strategy { return NewRandom(rand.Uint64()) },
	Hunter:     NewHunter,
	Forfeit:    NewForfeit,
}

// Builtin creates a fresh instance of an in-process strategy.
func Builtin(name string) (domain.Strategy, error) {
	ctor, ok := builtins[name]
	if !ok {
		return nil, errors.WithMessagef(ErrUnknownStrategy, "builtin '%s'", name)
	}
	return ctor(), nil
}

func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewRandom sweeps the board in an order shuffled from seed.
func NewRandom(seed uint64) domain.Strategy {
	rnd := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	return newSweep(func(targets []domain.Coordinate) {
		rnd.Shuffle(len(targets), func(i, j int) {
			targets[i], targets[j] = targets[j], targets[i]
		})
	})
}

type forfeit struct{}

func NewForfeit() domain.Strategy {
	return forfeit{}
}

func (forfeit) SetPlayerID(domain.Player)                                               {}
func (forfeit) SetBoardView(domain.BoardView)                                           {}
func (forfeit) Attack() (domain.Coordinate, bool)                                       { return domain.Coordinate{}, false }
func (forfeit) NotifyAttackResult(domain.Player, domain.Coordinate, domain.AttackResult) {}

// hunter sweeps like sequential but probes the neighbours of its own hits
// before moving on.
type hunter struct {
	*sweep
	probes []domain.Coordinate
}

func NewHunter() domain.Strategy {
	return &hunter{sweep: newSweep(nil)}
}

func (h *hunter) SetBoardView(view domain.BoardView) {
	h.sweep.SetBoardView(view)
	h.probes = h.probes[:0]
}

func (h *hunter) Attack() (domain.Coordinate, bool) {
	for len(h.probes) > 0 {
		c := h.probes[len(h.probes)-1]
		h.probes = h.probes[:len(h.probes)-1]
		if h.open(c) {
			return c, true
		}
	}
	return h.sweep.Attack()
}

func (h *hunter) NotifyAttackResult(attacker domain.Player, target domain.Coordinate, result domain.AttackResult) {
	h.sweep.NotifyAttackResult(attacker, target, result)
	if attacker != h.id || result != domain.Hit {
		return
	}
	for _, axis := range []domain.Orientation{domain.Deep, domain.Vertical, domain.Horizontal} {
		h.probes = append(h.probes, target.Step(axis, -1), target.Step(axis, 1))
	}
}
