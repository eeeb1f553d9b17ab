package agent

import (
	"testing"

	"github.com/nstehr/vimy/reflex-core/model"
)

// manhattan is an open-board distancer.
type manhattan struct{}

func (manhattan) Distance(a, b model.Position) int {
	dx, dy := a.X-b.X, a.Y-b.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

func pos(x, y int) model.Position { return model.Position{X: x, Y: y} }

// newTestGuard patrols x=5, y=0..9, starting at (5,7) and recentering at (5,4).
func newTestGuard() *Guard {
	line := make([]model.Position, 10)
	for i := range line {
		line[i] = pos(5, i)
	}
	return NewGuard(line, 0.75, 0.4, 4)
}

func TestNewGuard(t *testing.T) {
	g := newTestGuard()
	if g.Target != pos(5, 7) {
		t.Errorf("initial Target = %v, want (5,7)", g.Target)
	}
}

func TestGuardNext(t *testing.T) {
	tests := []struct {
		name     string
		target   model.Position
		self     model.Position
		invaders []model.Position
		want     model.Position
	}{
		{"hold until reached", pos(5, 7), pos(0, 0), nil, pos(5, 7)},
		{"reached start, recenter", pos(5, 7), pos(5, 7), nil, pos(5, 4)},
		{"reached recenter, hold", pos(5, 4), pos(5, 4), nil, pos(5, 4)},
		{"pursue close invader", pos(5, 7), pos(5, 7), []model.Position{pos(7, 7)}, pos(7, 7)},
		{"pursue nearest of several", pos(5, 7), pos(5, 7), []model.Position{pos(20, 20), pos(6, 7)}, pos(6, 7)},
		{"far invader, target already best", pos(5, 7), pos(1, 4), []model.Position{pos(8, 7)}, pos(5, 7)},
		{"far invader, move to ambush", pos(5, 2), pos(1, 4), []model.Position{pos(8, 7)}, pos(5, 7)},
		{"target off the line is replaced", pos(7, 7), pos(1, 4), []model.Position{pos(8, 7)}, pos(5, 7)},
		{"no closer line cell, pursue", pos(5, 7), pos(9, 7), []model.Position{pos(14, 7)}, pos(14, 7)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := newTestGuard()
			g.Target = tc.target
			got := g.Next(manhattan{}, Sighting{Self: tc.self, Invaders: tc.invaders})
			if got != tc.want {
				t.Errorf("Next() = %v, want %v", got, tc.want)
			}
			if g.Target != tc.target {
				t.Errorf("Next mutated Target to %v", g.Target)
			}
		})
	}
}

func TestGuardUpdate(t *testing.T) {
	g := newTestGuard()

	if g.Update(manhattan{}, Sighting{Self: pos(0, 0)}) {
		t.Error("Update moved the target with nothing to react to")
	}
	if !g.Update(manhattan{}, Sighting{Self: pos(5, 7)}) {
		t.Fatal("Update did not recenter on arrival")
	}
	if g.Target != pos(5, 4) {
		t.Errorf("Target = %v, want (5,4)", g.Target)
	}
	if g.Update(manhattan{}, Sighting{Self: pos(5, 4)}) {
		t.Errorf("Update left the recenter point for %v", g.Target)
	}
}
