package agent

import "github.com/nstehr/vimy/reflex-core/model"

// Project returns the state reached when agent takes action. If the engine
// leaves the agent between lattice points, the same action is applied once
// more so the result always sits on a cell. action must be legal.
func Project(w model.World, agent int, action model.Direction) model.World {
	next := w.Successor(agent, action)
	if !next.Agent(agent).Pos.OnLattice() {
		return next.Successor(agent, action)
	}
	return next
}
