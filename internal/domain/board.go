package domain

type AttackResult byte

const (
	Miss = AttackResult(iota)
	Hit
	Sink
)

func (r AttackResult) String() string {
	switch r {
	case Miss:
		return "miss"
	case Hit:
		return "hit"
	case Sink:
		return "sink"
	default:
		return "unknown"
	}
}

// Board maps every occupied coordinate of a ship to the same *GamePiece.
// A Board is not safe for concurrent use; every match plays on its own clone.
type Board struct {
	width  int
	height int
	depth  int
	cells  map[Coordinate]*GamePiece
	live   [2]int
}

func NewBoard(width, height, depth int) *Board {
	if depth < 1 {
		depth = 1
	}
	return &Board{
		width:  width,
		height: height,
		depth:  depth,
		cells:  make(map[Coordinate]*GamePiece),
	}
}

func (b *Board) Width() int  { return b.width }
func (b *Board) Height() int { return b.height }
func (b *Board) Depth() int  { return b.depth }

// InBounds reports whether the 0-based coordinate lies on the board.
func (b *Board) InBounds(c Coordinate) bool {
	return c.Row >= 0 && c.Row < b.height &&
		c.Col >= 0 && c.Col < b.width &&
		c.Depth >= 0 && c.Depth < b.depth
}

// Place puts the piece on every cell it occupies. Legality is the caller's job.
func (b *Board) Place(piece *GamePiece) {
	for _, c := range piece.Cells() {
		b.cells[c] = piece
	}
	if piece.Owner == PlayerA || piece.Owner == PlayerB {
		b.live[piece.Owner]++
	}
}

// Attack resolves a shot at c. The returned piece is nil on a miss.
func (b *Board) Attack(c Coordinate) (AttackResult, *GamePiece) {
	piece, ok := b.cells[c]
	if !ok {
		return Miss, nil
	}
	piece.damage(c)
	if !piece.IsSunk() {
		return Hit, piece
	}
	for _, cell := range piece.Cells() {
		if b.cells[cell] == piece {
			delete(b.cells, cell)
		}
	}
	if piece.Owner == PlayerA || piece.Owner == PlayerB {
		b.live[piece.Owner]--
	}
	return Sink, piece
}

func (b *Board) PieceAt(c Coordinate) *GamePiece {
	return b.cells[c]
}

// OwnerAt returns NoPlayer for an empty cell.
func (b *Board) OwnerAt(c Coordinate) Player {
	if piece, ok := b.cells[c]; ok {
		return piece.Owner
	}
	return NoPlayer
}

func (b *Board) LiveShipCount(p Player) int {
	if p != PlayerA && p != PlayerB {
		return 0
	}
	return b.live[p]
}

// Pieces returns each distinct piece on the board once.
func (b *Board) Pieces() []*GamePiece {
	seen := make(map[*GamePiece]struct{})
	pieces := make([]*GamePiece, 0)
	for _, piece := range b.cells {
		if _, ok := seen[piece]; ok {
			continue
		}
		seen[piece] = struct{}{}
		pieces = append(pieces, piece)
	}
	return pieces
}

// Clone deep-copies the board. Each distinct piece is copied once, keyed by
// its anchor, and all of its cells in the copy point at that single copy.
func (b *Board) Clone() *Board {
	cp := &Board{
		width:  b.width,
		height: b.height,
		depth:  b.depth,
		cells:  make(map[Coordinate]*GamePiece, len(b.cells)),
		live:   b.live,
	}
	copies := make(map[Coordinate]*GamePiece)
	for c, piece := range b.cells {
		dup, ok := copies[piece.Anchor]
		if !ok {
			dup = piece.clone()
			copies[piece.Anchor] = dup
		}
		cp.cells[c] = dup
	}
	return cp
}
