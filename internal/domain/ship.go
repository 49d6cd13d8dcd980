package domain

import (
	"unicode"
)

// ShipType is a shared read-only descriptor; pieces only hold a pointer to one.
type ShipType struct {
	Symbol byte
	Size   int
	Points int
}

var (
	Boat      = &ShipType{Symbol: 'B', Size: 1, Points: 2}
	Patrol    = &ShipType{Symbol: 'P', Size: 2, Points: 3}
	Missile   = &ShipType{Symbol: 'M', Size: 3, Points: 7}
	Destroyer = &ShipType{Symbol: 'D', Size: 4, Points: 8}
)

var shipTypes = []*ShipType{Boat, Patrol, Missile, Destroyer}

// ShipTypeBySymbol looks a ship type up by its symbol, case-insensitively.
func ShipTypeBySymbol(symbol byte) (*ShipType, bool) {
	upper := byte(unicode.ToUpper(rune(symbol)))
	for _, t := range shipTypes {
		if t.Symbol == upper {
			return t, true
		}
	}
	return nil, false
}

// SymbolFor renders the type for a player: uppercase for A, lowercase for B.
func (t *ShipType) SymbolFor(owner Player) byte {
	if owner == PlayerB {
		return byte(unicode.ToLower(rune(t.Symbol)))
	}
	return t.Symbol
}

type GamePiece struct {
	Owner       Player
	Type        *ShipType
	Anchor      Coordinate
	Orientation Orientation
	Life        int
	damaged     map[Coordinate]struct{}
}

func NewGamePiece(owner Player, shipType *ShipType, anchor Coordinate, orientation Orientation) *GamePiece {
	return &GamePiece{
		Owner:       owner,
		Type:        shipType,
		Anchor:      anchor,
		Orientation: orientation,
		Life:        shipType.Size,
		damaged:     make(map[Coordinate]struct{}, shipType.Size),
	}
}

// Cells returns every coordinate the piece occupies, anchor first.
func (p *GamePiece) Cells() []Coordinate {
	cells := make([]Coordinate, 0, p.Type.Size)
	for i := 0; i < p.Type.Size; i++ {
		cells = append(cells, p.Anchor.Step(p.Orientation, i))
	}
	return cells
}

func (p *GamePiece) IsDamaged(c Coordinate) bool {
	_, ok := p.damaged[c]
	return ok
}

func (p *GamePiece) IsSunk() bool {
	return p.Life <= 0
}

// damage registers a hit on c and reports whether it was the first one there.
func (p *GamePiece) damage(c Coordinate) bool {
	if _, ok := p.damaged[c]; ok {
		return false
	}
	p.damaged[c] = struct{}{}
	p.Life--
	return true
}

func (p *GamePiece) clone() *GamePiece {
	cp := *p
	cp.damaged = make(map[Coordinate]struct{}, len(p.damaged))
	for c := range p.damaged {
		cp.damaged[c] = struct{}{}
	}
	return &cp
}
