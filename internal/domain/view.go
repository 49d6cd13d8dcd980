package domain

const EmptyCell = byte(' ')

// BoardView is the read-only character grid handed to a strategy. Only the
// owner's ship cells are drawn; everything else is EmptyCell.
type BoardView struct {
	width  int
	height int
	depth  int
	cells  []byte
}

func NewBoardView(board *Board, owner Player) BoardView {
	v := BoardView{
		width:  board.Width(),
		height: board.Height(),
		depth:  board.Depth(),
		cells:  make([]byte, board.Width()*board.Height()*board.Depth()),
	}
	for i := range v.cells {
		v.cells[i] = EmptyCell
	}
	for c, piece := range board.cells {
		if piece.Owner == owner {
			v.cells[v.index(c)] = piece.Type.SymbolFor(owner)
		}
	}
	return v
}

// NewBoardViewFromCells rebuilds a view from its serialized form.
func NewBoardViewFromCells(width, height, depth int, cells []byte) BoardView {
	cp := make([]byte, len(cells))
	copy(cp, cells)
	return BoardView{width: width, height: height, depth: depth, cells: cp}
}

func (v BoardView) Width() int  { return v.width }
func (v BoardView) Height() int { return v.height }
func (v BoardView) Depth() int  { return v.depth }

// At returns the cell at a 1-based coordinate, EmptyCell when out of range.
func (v BoardView) At(c Coordinate) byte {
	in := c.ToInternal()
	if in.Row < 0 || in.Row >= v.height || in.Col < 0 || in.Col >= v.width ||
		in.Depth < 0 || in.Depth >= v.depth {
		return EmptyCell
	}
	return v.cells[v.index(in)]
}

// Cells returns a copy of the raw grid, depth-major then row-major.
func (v BoardView) Cells() []byte {
	cp := make([]byte, len(v.cells))
	copy(cp, v.cells)
	return cp
}

func (v BoardView) index(c Coordinate) int {
	return (c.Depth*v.height+c.Row)*v.width + c.Col
}
