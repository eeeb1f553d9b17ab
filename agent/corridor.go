package agent

import "github.com/nstehr/vimy/reflex-core/model"

// Corridor detects dead ends when fleeing from a nearby threat.
type Corridor struct {
	Radius int // scan only when a threat is strictly closer than this
	Depth  int // steps followed past the first cell
}

// Trapped reports whether taking action leads into a dead end. A cell with
// fewer than three legal actions (Stop included) is a dead end; a cell with
// more than three is open ground. With exactly three the walk follows the
// corridor, never stopping or doubling back, for at most Depth steps.
func (c Corridor) Trapped(w model.World, agent int, action model.Direction, threat float64) bool {
	if c.Radius <= 0 || threat >= float64(c.Radius) {
		return false
	}

	state := Project(w, agent, action)
	last := action
	for step := 0; ; step++ {
		legal := state.LegalActions(agent)
		switch {
		case len(legal) < 3:
			return true
		case len(legal) > 3:
			return false
		}
		if step == c.Depth {
			return false
		}

		next, ok := corridorStep(legal, last)
		if !ok {
			return true
		}
		state = Project(state, agent, next)
		last = next
	}
}

// corridorStep picks the first legal action that neither stops nor
// reverses last.
func corridorStep(legal []model.Direction, last model.Direction) (model.Direction, bool) {
	back := last.Reverse()
	for _, d := range legal {
		if d != model.Stop && d != back {
			return d, true
		}
	}
	return model.Stop, false
}
