package agent

import (
	"log/slog"

	"github.com/nstehr/vimy/reflex-core/model"
)

// Guard tracks the cell a defender moves toward. The target is the only
// state carried between turns; everything else is recomputed from sightings.
type Guard struct {
	Line   []model.Position // patrol line behind the home boundary
	Target model.Position

	recenter        model.Position
	interceptRadius int
}

// NewGuard places the target at fraction startAt along line.
func NewGuard(line []model.Position, startAt, recenterAt float64, interceptRadius int) *Guard {
	return &Guard{
		Line:            line,
		Target:          frontierPoint(line, startAt),
		recenter:        frontierPoint(line, recenterAt),
		interceptRadius: interceptRadius,
	}
}

// Sighting is what the defender knows this turn.
type Sighting struct {
	Self     model.Position
	Invaders []model.Position
}

// Next computes the guard target for this turn without mutating g.
//
//   - no invader: hold the target; once reached, move to the recenter
//     point of the patrol line and hold there
//   - invader within interceptRadius: pursue it
//   - farther invader: wait on the patrol line at the cell nearest the
//     invader that is closer to it than we are, keeping the current target
//     if it is already at least as good
func (g *Guard) Next(dist model.Distancer, s Sighting) model.Position {
	if len(s.Invaders) == 0 {
		if s.Self != g.Target {
			return g.Target
		}
		return g.recenter
	}

	invader, reach := s.Invaders[0], dist.Distance(s.Self, s.Invaders[0])
	for _, p := range s.Invaders[1:] {
		if d := dist.Distance(s.Self, p); d < reach {
			invader, reach = p, d
		}
	}
	if reach <= g.interceptRadius {
		return invader
	}

	ambush, ambushDist, found := model.Position{}, 0, false
	for _, p := range g.Line {
		d := dist.Distance(p, invader)
		if d < reach && (!found || d < ambushDist) {
			ambush, ambushDist, found = p, d, true
		}
	}
	if !found {
		return invader
	}
	if g.onLine(g.Target) {
		if d := dist.Distance(g.Target, invader); d < reach && d <= ambushDist {
			return g.Target
		}
	}
	return ambush
}

// Update advances the target and reports whether it moved.
func (g *Guard) Update(dist model.Distancer, s Sighting) bool {
	next := g.Next(dist, s)
	if next == g.Target {
		return false
	}
	slog.Debug("guard target moved", "from", g.Target, "to", next, "invaders", len(s.Invaders))
	g.Target = next
	return true
}

func (g *Guard) onLine(p model.Position) bool {
	for _, q := range g.Line {
		if q == p {
			return true
		}
	}
	return false
}
