package arena

import (
	"fmt"
	"slices"

	"github.com/nstehr/vimy/reflex-core/model"
)

const (
	// ScaredTime is how many moves opponents stay scared after a capsule.
	ScaredTime = 40
	// SightRange is the Manhattan radius within which opponents are seen.
	SightRange = 5
	// MinFood is the food count at which a side is considered cleared.
	MinFood = 2
	// DefaultTime is the episode length in moves, shared by all agents.
	DefaultTime = 1200
)

// State is a snapshot of an episode. Successor copies; nothing mutates a
// State once it is handed out.
type State struct {
	layout   *Layout
	agents   []model.AgentState
	carried  [][]model.Position // food each agent carries, restored on capture
	food     []bool             // row-major food grid
	capsules []model.Position
	score    int // red minus blue
	timeLeft int
	observer int    // agent whose team's view Agent reports, -1 for all-seeing
	hidden   []bool // opponents outside the observer team's sight
}

// NewState starts an episode on layout with every agent at its spawn.
func NewState(layout *Layout, timeLeft int) *State {
	s := &State{
		layout:   layout,
		agents:   make([]model.AgentState, len(layout.Spawns)),
		carried:  make([][]model.Position, len(layout.Spawns)),
		food:     make([]bool, layout.Walls.Width*layout.Walls.Height),
		capsules: slices.Clone(layout.Capsules),
		timeLeft: timeLeft,
		observer: -1,
	}
	for i, p := range layout.Spawns {
		s.agents[i] = model.AgentState{
			Pos:     model.VecOf(p),
			Known:   true,
			Heading: model.Stop,
			Start:   p,
		}
	}
	for _, p := range layout.Food {
		s.food[p.Y*layout.Walls.Width+p.X] = true
	}
	return s
}

// Observe returns the view of agent's team: opponents beyond SightRange of
// every teammate are unknown and take no part in successor physics.
func (s *State) Observe(agent int) *State {
	view := s.clone()
	view.observer = agent
	view.hidden = make([]bool, len(s.agents))
	team := s.Side(agent)
	for i, a := range s.agents {
		if s.Side(i) == team {
			continue
		}
		pos := a.Pos.Nearest()
		seen := false
		for j, mate := range s.agents {
			if s.Side(j) == team && manhattan(pos, mate.Pos.Nearest()) <= SightRange {
				seen = true
				break
			}
		}
		view.hidden[i] = !seen
	}
	return view
}

func (s *State) clone() *State {
	c := *s
	c.agents = slices.Clone(s.agents)
	c.carried = make([][]model.Position, len(s.carried))
	for i, ps := range s.carried {
		c.carried[i] = slices.Clone(ps)
	}
	c.food = slices.Clone(s.food)
	c.capsules = slices.Clone(s.capsules)
	c.hidden = slices.Clone(s.hidden)
	return &c
}

func (s *State) NumAgents() int { return len(s.agents) }

// Side assigns even agents to red and odd agents to blue.
func (s *State) Side(agent int) model.Side {
	if agent%2 == 0 {
		return model.Red
	}
	return model.Blue
}

func (s *State) Agent(agent int) model.AgentState {
	a := s.agents[agent]
	if s.isHidden(agent) {
		a.Pos = model.Vec{}
		a.Known = false
	}
	return a
}

func (s *State) isHidden(agent int) bool {
	return s.hidden != nil && s.hidden[agent]
}

func (s *State) LegalActions(agent int) []model.Direction {
	pos := s.agents[agent].Pos.Nearest()
	actions := make([]model.Direction, 0, len(model.Directions))
	for _, d := range model.Directions {
		if d == model.Stop || s.layout.Walls.Open(pos.Add(d)) {
			actions = append(actions, d)
		}
	}
	return actions
}

// Successor moves agent one cell. It panics on an illegal action, which is
// a caller bug rather than a game condition.
func (s *State) Successor(agent int, action model.Direction) model.World {
	if !slices.Contains(s.LegalActions(agent), action) {
		panic(fmt.Sprintf("arena: illegal action %s for agent %d", action, agent))
	}

	next := s.clone()
	a := &next.agents[agent]
	pos := a.Pos.Nearest().Add(action)
	a.Pos = model.VecOf(pos)
	if action != model.Stop {
		a.Heading = action
	}
	if a.Scared > 0 {
		a.Scared--
	}
	side := next.Side(agent)
	a.Pacman = model.HomeSide(next.layout.Walls.Width, pos.X) != side

	if a.Pacman {
		next.eat(agent, pos)
	} else if a.Carrying > 0 {
		next.addScore(side, a.Carrying)
		a.Carrying = 0
		next.carried[agent] = nil
	}
	next.resolveCollisions(agent)

	if next.timeLeft > 0 {
		next.timeLeft--
	}
	return next
}

func (s *State) eat(agent int, pos model.Position) {
	i := pos.Y*s.layout.Walls.Width + pos.X
	if s.food[i] {
		s.food[i] = false
		s.agents[agent].Carrying++
		s.carried[agent] = append(s.carried[agent], pos)
	}
	if k := slices.Index(s.capsules, pos); k >= 0 {
		s.capsules = slices.Delete(s.capsules, k, k+1)
		for _, j := range model.Opponents(s, agent) {
			s.agents[j].Scared = ScaredTime
		}
	}
}

// resolveCollisions settles captures between agent and any visible
// opponent sharing its cell.
func (s *State) resolveCollisions(agent int) {
	pos := s.agents[agent].Pos.Nearest()
	for _, j := range model.Opponents(s, agent) {
		if s.isHidden(j) || s.agents[j].Pos.Nearest() != pos {
			continue
		}
		me, them := s.agents[agent], s.agents[j]
		switch {
		case me.Pacman && !them.Pacman:
			if them.Scared > 0 {
				s.respawn(j)
			} else {
				s.respawn(agent)
				return
			}
		case !me.Pacman && them.Pacman:
			if me.Scared > 0 {
				s.respawn(agent)
				return
			}
			s.respawn(j)
		}
	}
}

// respawn sends agent back to its spawn and returns carried food to the board.
func (s *State) respawn(agent int) {
	for _, p := range s.carried[agent] {
		s.food[p.Y*s.layout.Walls.Width+p.X] = true
	}
	s.carried[agent] = nil
	a := &s.agents[agent]
	a.Pos = model.VecOf(a.Start)
	a.Heading = model.Stop
	a.Pacman = false
	a.Carrying = 0
	a.Scared = 0
}

func (s *State) addScore(side model.Side, n int) {
	if side == model.Red {
		s.score += n
	} else {
		s.score -= n
	}
}

// Food lists remaining food on side's territory, column by column.
func (s *State) Food(side model.Side) []model.Position {
	w := s.layout.Walls
	var out []model.Position
	for x := 0; x < w.Width; x++ {
		if model.HomeSide(w.Width, x) != side {
			continue
		}
		for y := 0; y < w.Height; y++ {
			if s.food[y*w.Width+x] {
				out = append(out, model.Position{X: x, Y: y})
			}
		}
	}
	return out
}

func (s *State) Capsules(side model.Side) []model.Position {
	var out []model.Position
	for _, p := range s.capsules {
		if model.HomeSide(s.layout.Walls.Width, p.X) == side {
			out = append(out, p)
		}
	}
	return out
}

func (s *State) Score(side model.Side) int {
	if side == model.Red {
		return s.score
	}
	return -s.score
}

func (s *State) Walls() *model.Walls { return s.layout.Walls }

func (s *State) TimeLeft() int { return s.timeLeft }

// Over reports whether time ran out or a side's food is cleared with
// nothing left in transit.
func (s *State) Over() bool {
	if s.timeLeft <= 0 {
		return true
	}
	for _, side := range []model.Side{model.Red, model.Blue} {
		if len(s.Food(side)) > MinFood {
			continue
		}
		inTransit := 0
		for i, a := range s.agents {
			if s.Side(i) != side {
				inTransit += a.Carrying
			}
		}
		if inTransit == 0 {
			return true
		}
	}
	return false
}
