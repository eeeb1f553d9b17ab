package agent

import (
	"errors"
	"math"

	"github.com/nstehr/vimy/reflex-core/model"
)

// ErrEmptyFrontier is returned when no open cell exists on or behind the
// home boundary.
var ErrEmptyFrontier = errors.New("no open frontier cell")

// Frontier returns the open cells of the column depth steps behind side's
// home boundary, bottom to top. If that column is fully walled, columns
// closer to the boundary are tried.
func Frontier(walls *model.Walls, side model.Side, depth int) ([]model.Position, error) {
	boundary := model.BoundaryColumn(walls.Width, side)
	for d := depth; d >= 0; d-- {
		x := boundary - d
		if side == model.Blue {
			x = boundary + d
		}
		if x < 0 || x >= walls.Width {
			continue
		}
		var line []model.Position
		for y := 0; y < walls.Height; y++ {
			if !walls.At(x, y) {
				line = append(line, model.Position{X: x, Y: y})
			}
		}
		if len(line) > 0 {
			return line, nil
		}
	}
	return nil, ErrEmptyFrontier
}

// frontierPoint picks the cell at fraction f along line.
func frontierPoint(line []model.Position, f float64) model.Position {
	i := int(math.Floor(f*float64(len(line)) + 1e-9))
	if i >= len(line) {
		i = len(line) - 1
	}
	if i < 0 {
		i = 0
	}
	return line[i]
}

// nearest returns the smallest maze distance from p to any of targets.
func nearest(dist model.Distancer, p model.Position, targets []model.Position) (int, bool) {
	best, found := 0, false
	for _, t := range targets {
		d := dist.Distance(p, t)
		if !found || d < best {
			best, found = d, true
		}
	}
	return best, found
}
