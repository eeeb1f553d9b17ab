package arena

import (
	"testing"

	"github.com/nstehr/vimy/reflex-core/model"
)

// uMaze is a U-shaped corridor: the spawns are two cells apart on the board
// but six steps apart through the maze.
const uMaze = `
%%%%%
%...%
%.%.%
%1%2%
%%%%%
`

func TestDistances(t *testing.T) {
	layout, err := ParseLayout(uMaze)
	if err != nil {
		t.Fatal(err)
	}
	dist := NewDistances(layout.Walls)

	tests := []struct {
		name string
		a, b model.Position
		want int
	}{
		{"same cell", model.Position{X: 1, Y: 1}, model.Position{X: 1, Y: 1}, 0},
		{"neighbor", model.Position{X: 1, Y: 1}, model.Position{X: 1, Y: 2}, 1},
		{"around the wall", model.Position{X: 1, Y: 1}, model.Position{X: 3, Y: 1}, 6},
		{"reverse direction", model.Position{X: 3, Y: 1}, model.Position{X: 1, Y: 1}, 6},
		{"wall falls back to manhattan", model.Position{X: 2, Y: 1}, model.Position{X: 1, Y: 1}, 1},
		{"off board falls back to manhattan", model.Position{X: -1, Y: 1}, model.Position{X: 1, Y: 1}, 2},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := dist.Distance(tc.a, tc.b); got != tc.want {
				t.Errorf("Distance(%v, %v) = %d, want %d", tc.a, tc.b, got, tc.want)
			}
		})
	}
}

func TestDistancesDisconnected(t *testing.T) {
	layout, err := ParseLayout("%%%%%\n%1%2%\n%%%%%")
	if err != nil {
		t.Fatal(err)
	}
	dist := NewDistances(layout.Walls)
	if got := dist.Distance(layout.Spawns[0], layout.Spawns[1]); got != Unreachable {
		t.Errorf("Distance across a wall = %d, want Unreachable", got)
	}
}
