package domain

import (
	"fmt"
)

// Coordinate addresses one cell of a board. Inside the engine and the board
// model every component is 0-based; strategies and board files speak 1-based.
type Coordinate struct {
	Row   int
	Col   int
	Depth int
}

func NewCoordinate(row, col, depth int) Coordinate {
	return Coordinate{Row: row, Col: col, Depth: depth}
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%d,%d,%d)", c.Row, c.Col, c.Depth)
}

// Less orders coordinates by row, then column, then depth.
func (c Coordinate) Less(o Coordinate) bool {
	if c.Row != o.Row {
		return c.Row < o.Row
	}
	if c.Col != o.Col {
		return c.Col < o.Col
	}
	return c.Depth < o.Depth
}

// Step moves the coordinate n cells along the axis.
func (c Coordinate) Step(axis Orientation, n int) Coordinate {
	switch axis {
	case Horizontal:
		c.Col += n
	case Vertical:
		c.Row += n
	case Deep:
		c.Depth += n
	}
	return c
}

// ToInternal converts a 1-based coordinate to its 0-based form.
func (c Coordinate) ToInternal() Coordinate {
	return Coordinate{Row: c.Row - 1, Col: c.Col - 1, Depth: c.Depth - 1}
}

// ToExternal converts a 0-based coordinate to its 1-based form.
func (c Coordinate) ToExternal() Coordinate {
	return Coordinate{Row: c.Row + 1, Col: c.Col + 1, Depth: c.Depth + 1}
}

type Orientation byte

const (
	Horizontal = Orientation(iota)
	Vertical
	Deep
)

func (o Orientation) String() string {
	switch o {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	case Deep:
		return "depth"
	default:
		return "unknown"
	}
}
