package model

// Walls is the static wall layout of a maze.
type Walls struct {
	Width  int
	Height int
	Cells  []bool // row-major: Cells[y*Width + x]
}

// NewWalls returns an open board of the given size.
func NewWalls(width, height int) *Walls {
	return &Walls{Width: width, Height: height, Cells: make([]bool, width*height)}
}

// At reports whether (x, y) is a wall. Out-of-bounds cells count as walls.
func (w *Walls) At(x, y int) bool {
	if x < 0 || x >= w.Width || y < 0 || y >= w.Height {
		return true
	}
	return w.Cells[y*w.Width+x]
}

// Set marks (x, y) as wall or open. Out-of-bounds writes are ignored.
func (w *Walls) Set(x, y int, wall bool) {
	if x < 0 || x >= w.Width || y < 0 || y >= w.Height {
		return
	}
	w.Cells[y*w.Width+x] = wall
}

// Open reports whether p is an in-bounds, non-wall cell.
func (w *Walls) Open(p Position) bool {
	return !w.At(p.X, p.Y)
}

// OpenCells returns every non-wall cell, column by column from the bottom-left.
func (w *Walls) OpenCells() []Position {
	var out []Position
	for x := 0; x < w.Width; x++ {
		for y := 0; y < w.Height; y++ {
			if !w.At(x, y) {
				out = append(out, Position{X: x, Y: y})
			}
		}
	}
	return out
}

// BoundaryColumn returns the x of the last home column for side on a board
// of the given width: the red side ends at width/2-1, the blue side starts at width/2.
func BoundaryColumn(width int, side Side) int {
	if side == Red {
		return width/2 - 1
	}
	return width / 2
}

// HomeSide returns the side whose territory contains column x.
func HomeSide(width, x int) Side {
	if x < width/2 {
		return Red
	}
	return Blue
}
