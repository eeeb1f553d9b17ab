package agent

import (
	"math"
	"testing"

	"github.com/nstehr/vimy/reflex-core/model"
)

// tee has a corridor leading from the spawn to a junction at (3,3), with a
// dead-end spur running south from the junction.
const tee = `
%%%%%%%
%1    %
%%% %%%
%%% %%%
%%%%%%%
`

const deadEnd = `
%%%%%%%
%1    %
%%%%%%%
`

func TestCorridorTrapped(t *testing.T) {
	tests := []struct {
		name     string
		layout   string
		before   []model.Direction
		action   model.Direction
		corridor Corridor
		threat   float64
		want     bool
	}{
		{"dead end within depth", deadEnd, nil, model.East, Corridor{Radius: 5, Depth: 4}, 2, true},
		{"dead end beyond depth", deadEnd, nil, model.East, Corridor{Radius: 5, Depth: 2}, 2, false},
		{"corridor opens into junction", tee, nil, model.East, Corridor{Radius: 5, Depth: 4}, 2, false},
		{"spur off the junction", tee, []model.Direction{model.East, model.East}, model.South, Corridor{Radius: 5, Depth: 4}, 2, true},
		{"stopping in a dead end", deadEnd, nil, model.Stop, Corridor{Radius: 5, Depth: 4}, 2, true},
		{"zero depth checks the first cell only", deadEnd, nil, model.East, Corridor{Radius: 5, Depth: 0}, 2, false},
		{"threat at radius", deadEnd, nil, model.East, Corridor{Radius: 5, Depth: 4}, 5, false},
		{"no threat", deadEnd, nil, model.East, Corridor{Radius: 5, Depth: 4}, math.Inf(1), false},
		{"disabled", deadEnd, nil, model.East, Corridor{Radius: 0, Depth: 4}, 1, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := play(t, mustState(t, tc.layout), 0, tc.before...)
			if got := tc.corridor.Trapped(s, 0, tc.action, tc.threat); got != tc.want {
				t.Errorf("Trapped() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestCorridorStep(t *testing.T) {
	tests := []struct {
		name  string
		legal []model.Direction
		last  model.Direction
		want  model.Direction
		ok    bool
	}{
		{"straight on", []model.Direction{model.East, model.West, model.Stop}, model.East, model.East, true},
		{"around a bend", []model.Direction{model.North, model.West, model.Stop}, model.East, model.North, true},
		{"only back", []model.Direction{model.West, model.Stop}, model.East, model.Stop, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := corridorStep(tc.legal, tc.last)
			if got != tc.want || ok != tc.ok {
				t.Errorf("corridorStep() = %s, %v, want %s, %v", got, ok, tc.want, tc.ok)
			}
		})
	}
}
