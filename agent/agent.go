package agent

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"

	"github.com/nstehr/vimy/reflex-core/model"
	"github.com/nstehr/vimy/reflex-core/rules"
)

var (
	// ErrNoLegalActions means the engine offered no move, not even Stop.
	ErrNoLegalActions = errors.New("no legal actions")
	// ErrNotRegistered means Choose ran before RegisterInitialState.
	ErrNotRegistered = errors.New("agent not registered for an episode")
)

// Agent owns the decision-making for a single game agent during one episode.
type Agent struct {
	Index  int
	Policy *rules.Policy // replace the doctrine through Swap, not Policy.Swap

	dist     model.Distancer
	rng      *rand.Rand
	corridor Corridor

	side     model.Side
	start    model.Position
	walls    *model.Walls
	home     []model.Position // home boundary column
	guard    *Guard           // nil unless the doctrine guards
	episodes int
}

// New compiles d for the agent at index. Ties between equally scored actions
// are broken with a generator seeded from seed.
func New(index int, d rules.Doctrine, dist model.Distancer, seed int64) (*Agent, error) {
	policy, err := rules.CompileDoctrine(d)
	if err != nil {
		return nil, fmt.Errorf("agent %d: %w", index, err)
	}
	return &Agent{
		Index:    index,
		Policy:   policy,
		dist:     dist,
		rng:      newRand(seed),
		corridor: corridorOf(policy.Doctrine()),
	}, nil
}

// RegisterInitialState records the spawn cell and computes the frontier
// lines for the episode starting in w.
func (a *Agent) RegisterInitialState(w model.World) error {
	me := w.Agent(a.Index)
	start, ok := me.Position()
	if !ok {
		start = me.Start
	}
	a.side = w.Side(a.Index)
	a.start = start
	a.walls = w.Walls()

	if err := a.configure(); err != nil {
		return err
	}
	a.episodes++

	d := a.Policy.Doctrine()
	slog.Info("agent registered",
		"agent", a.Index,
		"doctrine", d.Name,
		"role", d.Role,
		"side", a.side,
		"start", a.start,
		"frontier", len(a.home),
	)
	return nil
}

// Swap replaces the agent's doctrine mid-episode. The corridor scan, home
// frontier and guard are rebuilt from the new doctrine; if compilation or
// the rebuild fails the agent keeps playing the old one.
func (a *Agent) Swap(d rules.Doctrine) error {
	prev := *a.Policy
	if err := a.Policy.Swap(d); err != nil {
		return fmt.Errorf("agent %d: %w", a.Index, err)
	}
	if a.walls == nil {
		a.corridor = corridorOf(a.Policy.Doctrine())
		return nil
	}
	if err := a.configure(); err != nil {
		*a.Policy = prev
		return err
	}
	return nil
}

// configure derives the doctrine-dependent state for the registered board.
func (a *Agent) configure() error {
	d := a.Policy.Doctrine()
	home, err := Frontier(a.walls, a.side, 0)
	if err != nil {
		return fmt.Errorf("agent %d: %w", a.Index, err)
	}

	var guard *Guard
	if d.Role == rules.Defense && d.Guard {
		line, err := Frontier(a.walls, a.side, d.PatrolDepth)
		if err != nil {
			return fmt.Errorf("agent %d: %w", a.Index, err)
		}
		guard = NewGuard(line, d.GuardStart, d.GuardRecenter, d.InterceptRadius)
	}

	a.home = home
	a.guard = guard
	a.corridor = corridorOf(d)
	return nil
}

func corridorOf(d rules.Doctrine) Corridor {
	return Corridor{Radius: d.CorridorRadius, Depth: d.LookaheadDepth}
}

// Start is the spawn cell recorded at registration.
func (a *Agent) Start() model.Position { return a.start }

// Home is the home boundary column recorded at registration.
func (a *Agent) Home() []model.Position { return a.home }

// Guard returns the interception planner, or nil for agents that do not guard.
func (a *Agent) Guard() *Guard { return a.guard }

// Choose picks the legal action with the highest score, breaking ties at
// random. When little target food remains it instead heads for the spawn cell.
func (a *Agent) Choose(w model.World) (model.Direction, error) {
	if a.episodes == 0 {
		return model.Stop, ErrNotRegistered
	}
	actions := w.LegalActions(a.Index)
	if len(actions) == 0 {
		return model.Stop, fmt.Errorf("agent %d: %w", a.Index, ErrNoLegalActions)
	}

	a.observe(w)

	d := a.Policy.Doctrine()
	if foodLeft := len(w.Food(a.side.Opponent())); d.EndgameFood >= 0 && foodLeft <= d.EndgameFood {
		action := a.runHome(w, actions)
		slog.Debug("endgame override", "agent", a.Index, "foodLeft", foodLeft, "action", action)
		return action, nil
	}

	best := math.Inf(-1)
	var bestActions []model.Direction
	for _, action := range actions {
		score := a.Evaluate(w, action)
		switch {
		case score > best:
			best = score
			bestActions = append(bestActions[:0], action)
		case score == best:
			bestActions = append(bestActions, action)
		}
	}
	if len(bestActions) == 0 {
		// Every score was -Inf or NaN; any legal action is as good as another.
		bestActions = actions
	}

	choice := bestActions[a.rng.Intn(len(bestActions))]
	slog.Debug("action chosen",
		"agent", a.Index,
		"doctrine", d.Name,
		"action", choice,
		"score", best,
		"ties", len(bestActions),
	)
	return choice, nil
}

// Evaluate scores action in w under the agent's doctrine.
func (a *Agent) Evaluate(w model.World, action model.Direction) float64 {
	v, env := a.Features(w, action)
	return rules.Score(v, a.Policy.Weights(env))
}

// Features extracts the feature vector for action in w together with the
// weight context the doctrine's rules are evaluated against.
func (a *Agent) Features(w model.World, action model.Direction) (rules.Vector, rules.WeightEnv) {
	succ := Project(w, a.Index, action)
	var v rules.Vector
	var obs observation
	if a.Policy.Doctrine().Role == rules.Defense {
		v, obs = a.defenseFeatures(w, succ, action)
	} else {
		v, obs = a.offenseFeatures(w, succ, action)
	}
	env := rules.NewWeightEnv(w.Agent(a.Index).Carrying, obs.threat, w.TimeLeft(), obs.invaders, obs.threatened)
	return v, env
}

// observe updates the guard target from the current sightings.
func (a *Agent) observe(w model.World) {
	if a.guard == nil {
		return
	}
	self, ok := w.Agent(a.Index).Position()
	if !ok {
		return
	}
	a.guard.Update(a.dist, Sighting{Self: self, Invaders: invaderPositions(w, a.Index)})
}

// runHome picks the action whose resulting cell is closest to the spawn
// cell; the first such action in legal order wins ties.
func (a *Agent) runHome(w model.World, actions []model.Direction) model.Direction {
	bestAction, bestDist := actions[0], math.MaxInt
	for _, action := range actions {
		pos, ok := Project(w, a.Index, action).Agent(a.Index).Position()
		if !ok {
			continue
		}
		if d := a.dist.Distance(a.start, pos); d < bestDist {
			bestAction, bestDist = action, d
		}
	}
	return bestAction
}

// newRand returns a seeded generator; seed 0 is mapped to 1.
func newRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = 1
	}
	return rand.New(rand.NewSource(seed))
}
