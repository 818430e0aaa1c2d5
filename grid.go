package brailleimg

import "fmt"

// Each braille cell is 2 dots wide and 4 dots tall.
const (
	cellWidth  = 2
	cellHeight = 4
)

// Grid is a bitmap of braille dots packed one byte per character cell. Cells
// are stored left-right, top-bottom. Eg, a 4x8 dot grid is 2x2 cells:
//
//	+----------+----------+
//	|(0,0)(1,0)|(2,0)(3,0)|
//	|(0,1)(1,1)|(2,1)(3,1)|
//	|(0,2)(1,2)|(2,2)(3,2)|
//	|(0,3)(1,3)|(2,3)(3,3)|
//	+----------+----------+
//	|(0,4)(1,4)|(2,4)(3,4)|
//	|   ...    |   ...    |
//	+----------+----------+
type Grid struct {
	cells  []byte
	width  int // dots
	height int // dots
	cols   int // cells
	rows   int // cells
}

// New returns a grid of width by height dots with every dot lowered. The
// grid is ceil(width/2) cells wide and ceil(height/4) cells tall. New panics
// if either dimension is not positive.
func New(width, height int) *Grid {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("brailleimg: grid dimensions must be greater than 0, got %dx%d", width, height))
	}
	cols := (width + cellWidth - 1) / cellWidth
	rows := (height + cellHeight - 1) / cellHeight
	return &Grid{
		cells:  make([]byte, cols*rows),
		width:  width,
		height: height,
		cols:   cols,
		rows:   rows,
	}
}

// Width returns the width of the grid in dots.
func (g *Grid) Width() int { return g.width }

// Height returns the height of the grid in dots.
func (g *Grid) Height() int { return g.height }

// Cols returns the number of character cells per row.
func (g *Grid) Cols() int { return g.cols }

// Rows returns the number of character rows.
func (g *Grid) Rows() int { return g.rows }

// Cell returns the packed value of the cell at col, row. It panics if the
// cell is out of range, like a slice index would.
func (g *Grid) Cell(col, row int) byte {
	if col < 0 || col >= g.cols || row < 0 || row >= g.rows {
		panic(fmt.Sprintf("brailleimg: cell (%d, %d) out of range", col, row))
	}
	return g.cells[col+row*g.cols]
}

// OutOfBoundsError is returned when a dot outside of the grid is set.
type OutOfBoundsError struct {
	X, Y       int // dot coordinates
	Cols, Rows int // grid size in cells
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("the coordinates (x: %d, y: %d) were outside the bounds of the grid (width: %d, height: %d)", e.X, e.Y, e.Cols, e.Rows)
}

func (g *Grid) inBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// Set raises or lowers the dot at x, y.
func (g *Grid) Set(x, y int, raised bool) error {
	if !g.inBounds(x, y) {
		return &OutOfBoundsError{X: x, Y: y, Cols: g.cols, Rows: g.rows}
	}
	i := x/cellWidth + (y/cellHeight)*g.cols
	if raised {
		g.cells[i] |= bitMask(x, y)
	} else {
		g.cells[i] &^= bitMask(x, y)
	}
	return nil
}

// Dot reports whether the dot at x, y is raised. ok is false if x, y is
// outside of the grid.
func (g *Grid) Dot(x, y int) (raised, ok bool) {
	if !g.inBounds(x, y) {
		return false, false
	}
	return g.cells[x/cellWidth+(y/cellHeight)*g.cols]&bitMask(x, y) != 0, true
}

// bitMask maps a dot to its bit within the cell. The bottom row is not
// contiguous with the three above it:
//
//	+------+
//	|(1)(4)|
//	|(2)(5)|
//	|(3)(6)|
//	|(7)(8)|
//	+------+
//
// where dot n is bit n-1.
func bitMask(x, y int) byte {
	if x%cellWidth == 0 {
		switch y % cellHeight {
		case 0:
			return 1 << 0
		case 1:
			return 1 << 1
		case 2:
			return 1 << 2
		default:
			return 1 << 6
		}
	}
	switch y % cellHeight {
	case 0:
		return 1 << 3
	case 1:
		return 1 << 4
	case 2:
		return 1 << 5
	default:
		return 1 << 7
	}
}
