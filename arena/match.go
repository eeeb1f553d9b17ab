package arena

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/nstehr/vimy/reflex-core/model"
)

// Player is anything that can take turns in a match.
type Player interface {
	RegisterInitialState(w model.World) error
	Choose(w model.World) (model.Direction, error)
}

// Match runs players in index order until the episode ends.
type Match struct {
	State   *State
	Players []Player
}

// Result summarizes a finished match.
type Result struct {
	Score  int // red minus blue
	Moves  int
	Winner string // "red", "blue" or "tie"
}

// NewMatch starts an episode on layout for the given players.
func NewMatch(layout *Layout, timeLeft int, players []Player) (*Match, error) {
	if len(players) != len(layout.Spawns) {
		return nil, fmt.Errorf("match: %d players for %d spawns", len(players), len(layout.Spawns))
	}
	return &Match{State: NewState(layout, timeLeft), Players: players}, nil
}

// Run registers every player and plays until the state reports Over.
// A player error or illegal action aborts the match.
func (m *Match) Run() (Result, error) {
	for i, p := range m.Players {
		if err := p.RegisterInitialState(m.State.Observe(i)); err != nil {
			return Result{}, fmt.Errorf("register agent %d: %w", i, err)
		}
	}
	slog.Info("match started", "agents", len(m.Players), "time", m.State.TimeLeft())

	moves := 0
	for !m.State.Over() {
		i := moves % len(m.Players)
		action, err := m.Players[i].Choose(m.State.Observe(i))
		if err != nil {
			return Result{}, fmt.Errorf("agent %d move %d: %w", i, moves, err)
		}
		if !slices.Contains(m.State.LegalActions(i), action) {
			return Result{}, fmt.Errorf("agent %d move %d: illegal action %s", i, moves, action)
		}
		m.State = m.State.Successor(i, action).(*State)
		moves++
	}

	res := Result{Score: m.State.Score(model.Red), Moves: moves, Winner: "tie"}
	switch {
	case res.Score > 0:
		res.Winner = model.Red.String()
	case res.Score < 0:
		res.Winner = model.Blue.String()
	}
	slog.Info("match finished", "score", res.Score, "moves", res.Moves, "winner", res.Winner)
	return res, nil
}
