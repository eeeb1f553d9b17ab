package model

// Side identifies a team and, with it, the half of the board it defends.
// Red defends the left half, Blue the right.
type Side byte

const (
	Red Side = iota
	Blue
)

func (s Side) String() string {
	if s == Red {
		return "red"
	}
	return "blue"
}

// Opponent returns the other side.
func (s Side) Opponent() Side {
	if s == Red {
		return Blue
	}
	return Red
}

// AgentState is the engine's view of one agent. The decision core only reads it.
type AgentState struct {
	Pos      Vec
	Known    bool      // false when the agent is outside every teammate's sight
	Heading  Direction // direction of the last move
	Pacman   bool      // true while on enemy territory (offensive form)
	Carrying int       // resource items held, not yet deposited
	Scared   int       // moves left during which this agent cannot capture
	Start    Position  // spawn cell
}

// Position returns the agent's lattice cell and whether it is known.
func (a AgentState) Position() (Position, bool) {
	if !a.Known {
		return Position{}, false
	}
	return a.Pos.Nearest(), true
}

// Threatens reports whether a is an observed opponent able to capture
// an agent in offensive form.
func (a AgentState) Threatens() bool {
	return a.Known && !a.Pacman && a.Scared == 0
}

// Invading reports whether a is an observed opponent on our territory.
func (a AgentState) Invading() bool {
	return a.Known && a.Pacman
}

// World is the snapshot interface the decision core consumes. The game engine
// owns the implementation; nothing here mutates a World.
type World interface {
	// NumAgents is the number of agents in the game, indices 0..NumAgents-1.
	NumAgents() int
	// Side is the team of agent i.
	Side(agent int) Side
	// Agent returns the state of agent i from the current observer's view.
	Agent(agent int) AgentState
	// LegalActions always contains Stop.
	LegalActions(agent int) []Direction
	// Successor applies action for agent. The action must be legal.
	Successor(agent int, action Direction) World
	// Food lists the resource items lying on side's territory.
	Food(side Side) []Position
	// Capsules lists the power capsules lying on side's territory.
	Capsules(side Side) []Position
	// Score is the score differential from side's point of view.
	Score(side Side) int
	// Walls is the static maze layout.
	Walls() *Walls
	// TimeLeft is the number of moves remaining in the episode.
	TimeLeft() int
}

// Distancer answers true maze distances between open cells.
type Distancer interface {
	Distance(a, b Position) int
}

// Opponents returns the indices of agents not on agent's team.
func Opponents(w World, agent int) []int {
	mine := w.Side(agent)
	var out []int
	for i := 0; i < w.NumAgents(); i++ {
		if w.Side(i) != mine {
			out = append(out, i)
		}
	}
	return out
}
