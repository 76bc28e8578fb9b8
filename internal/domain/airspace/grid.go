package airspace

import "errors"

var ErrInvalidGrid = errors.New("invalid grid dimensions")

// Grid is a toroidal plane: leaving one edge re-enters from the opposite one.
type Grid struct {
	Width  int
	Height int
}

func (g Grid) Validate() error {
	if g.Width <= 0 || g.Height <= 0 {
		return ErrInvalidGrid
	}
	return nil
}

func (g Grid) Contains(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// Step moves one cell along dir and wraps at the edges. It never clamps.
func Step(g Grid, x, y int, dir Direction) (int, int) {
	dx, dy := dir.Delta()
	return wrap(x+dx, g.Width), wrap(y+dy, g.Height)
}

func wrap(v, size int) int {
	if v < 0 {
		return size - 1
	}
	if v >= size {
		return 0
	}
	return v
}
